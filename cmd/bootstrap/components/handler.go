package components

import (
	"fiksit-api/internal/handler"
	"fiksit-api/internal/handler/api"
	"fiksit-api/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewQuoteHandler,
		api.NewAvailabilityHandler,
		api.NewProviderHandler,
		api.NewChangeRequestHandler,
		api.NewReviewHandler,
		middleware.NewAuthMiddleware,
		middleware.NewMetrics,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	booking *api.BookingHandler,
	quote *api.QuoteHandler,
	availability *api.AvailabilityHandler,
	provider *api.ProviderHandler,
	changeRequest *api.ChangeRequestHandler,
	review *api.ReviewHandler,
) handler.Handlers {
	return handler.Handlers{
		Booking:       booking,
		Quote:         quote,
		Availability:  availability,
		Provider:      provider,
		ChangeRequest: changeRequest,
		Review:        review,
	}
}
