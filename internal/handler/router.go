package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"fiksit-api/internal/domain/user"
	"fiksit-api/internal/handler/api"
	"fiksit-api/internal/handler/middleware"
	"fiksit-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Booking       *api.BookingHandler
	Quote         *api.QuoteHandler
	Availability  *api.AvailabilityHandler
	Provider      *api.ProviderHandler
	ChangeRequest *api.ChangeRequestHandler
	Review        *api.ReviewHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, metrics *middleware.Metrics) {
	setupMiddleware(engine, cfg, metrics)
	setupRoutes(engine, cfg, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, metrics *middleware.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	if cfg.Metrics.Enabled {
		engine.Use(metrics.Middleware())
	}
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if cfg.Metrics.Enabled {
		engine.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Booking.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Booking.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: h.Booking.Confirm},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Booking.Complete},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Booking.Cancel},
				{Method: http.MethodGet, Path: "/:id/cancellation-fee", Handler: h.Booking.PreviewCancellationFee},
				{Method: http.MethodPost, Path: "/:id/refund-fee", Handler: h.Booking.RefundFee},
			})
		}

		quoteRequests := apiGroup.Group("/quote-requests")
		quoteRequests.Use(authMiddleware.RequireAuth())
		{
			// "/open" is registered before "/:id" so the literal segment wins.
			addRoutes(quoteRequests, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Quote.CreateRequest},
				{Method: http.MethodGet, Path: "", Handler: h.Quote.ListRequests},
				{Method: http.MethodGet, Path: "/open", Handler: h.Quote.ListOpenRequests},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Quote.GetRequest},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Quote.CancelRequest},
				{Method: http.MethodPost, Path: "/:id/responses", Handler: h.Quote.CreateResponse},
				{Method: http.MethodGet, Path: "/:id/responses", Handler: h.Quote.ListResponses},
			})
		}

		quoteResponses := apiGroup.Group("/quote-responses")
		quoteResponses.Use(authMiddleware.RequireAuth())
		{
			addRoutes(quoteResponses, []route{
				{Method: http.MethodPost, Path: "/:id/accept", Handler: h.Quote.AcceptResponse},
			})
		}

		providers := apiGroup.Group("/providers")
		{
			// Public browse surface: profile, reviews, availability lookups.
			addRoutes(providers, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: h.Provider.GetProfile},
				{Method: http.MethodGet, Path: "/:id/reviews", Handler: h.Provider.ListReviews},
				{Method: http.MethodGet, Path: "/:id/available-dates", Handler: h.Availability.AvailableDates},
				{Method: http.MethodGet, Path: "/:id/time-slots", Handler: h.Availability.TimeSlots},
			})

			authed := providers.Group("")
			authed.Use(authMiddleware.RequireAuth())
			addRoutes(authed, []route{
				{Method: http.MethodGet, Path: "/:id/schedule", Handler: h.Availability.GetSchedule},
				{Method: http.MethodPut, Path: "/:id/schedule", Handler: h.Availability.ReplaceSchedule},
				{Method: http.MethodGet, Path: "/:id/blocked-dates", Handler: h.Availability.ListBlockedDates},
				{Method: http.MethodPost, Path: "/:id/blocked-dates", Handler: h.Availability.BlockDate},
				{Method: http.MethodDelete, Path: "/:id/blocked-dates/:date", Handler: h.Availability.UnblockDate},
				{Method: http.MethodGet, Path: "/:id/change-requests", Handler: h.ChangeRequest.ListByProvider},
			})
		}

		changeRequests := apiGroup.Group("/change-requests")
		changeRequests.Use(authMiddleware.RequireAuth())
		{
			addRoutes(changeRequests, []route{
				{Method: http.MethodPost, Path: "", Handler: h.ChangeRequest.Submit},
				{Method: http.MethodGet, Path: "/pending", Handler: h.ChangeRequest.ListPending,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleAdmin)}},
				{Method: http.MethodPost, Path: "/:id/approve", Handler: h.ChangeRequest.Approve,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleAdmin)}},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: h.ChangeRequest.Reject,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleAdmin)}},
			})
		}

		reviews := apiGroup.Group("/reviews")
		reviews.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reviews, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Review.Submit},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
