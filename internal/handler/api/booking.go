package api

import (
	"context"
	"net/http"

	"fiksit-api/internal/domain/booking"
	"fiksit-api/internal/domain/user"
	reqdto "fiksit-api/internal/handler/dto/request"
	resdto "fiksit-api/internal/handler/dto/response"
	"fiksit-api/internal/handler/middleware"
	"fiksit-api/internal/usecase/commands"
	"fiksit-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type bookingTransition func(ctx context.Context, actor user.Actor, id uuid.UUID) (*booking.Booking, error)

type BookingHandler struct {
	commands commands.BookingCommands
	queries  queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, qs queries.BookingQueries) *BookingHandler {
	return &BookingHandler{commands: cmds, queries: qs}
}

// @Summary Create booking
// @Description Create a booking with fixed-price line items
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateBookingRequest true "Booking request"
// @Success 201 {object} response.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errActorMissing)
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	items := make([]commands.LineItemInput, 0, len(req.LineItems))
	for _, li := range req.LineItems {
		items = append(items, commands.LineItemInput{
			Name:            li.Name,
			PriceKroner:     li.PriceKroner,
			DurationMinutes: li.DurationMinutes,
		})
	}

	b, err := h.commands.CreateBooking(c.Request.Context(), actor, commands.CreateBookingInput{
		ProviderID:    req.ProviderID,
		AddressID:     req.AddressID,
		LineItems:     items,
		ScheduledAt:   req.ScheduledAt,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBooking(b))
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.BookingView
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errActorMissing)
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List own bookings
// @Description List bookings for the caller's side of the marketplace
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param after query string false "Pagination cursor"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]any
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errActorMissing)
		return
	}
	cursor, limit := pageParams(c)

	var (
		items []*queries.BookingListItem
		next  *queries.Cursor
		err   error
	)
	if actor.IsProvider() {
		items, next, err = h.queries.ListByProvider(c.Request.Context(), actor, actor.ID, cursor, limit)
	} else {
		items, next, err = h.queries.ListByCustomer(c.Request.Context(), actor, actor.ID, cursor, limit)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewPage(items, nextCursorString(next)))
}

// @Summary Confirm booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} response.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, h.commands.ConfirmBooking)
}

// @Summary Complete booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} response.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/complete [post]
func (h *BookingHandler) Complete(c *gin.Context) {
	h.transition(c, h.commands.CompleteBooking)
}

// @Summary Cancel booking
// @Description Cancel a booking; a late cancellation carries a fee
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body request.CancelBookingRequest false "Cancellation reason"
// @Success 200 {object} response.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errActorMissing)
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	b, err := h.commands.CancelBooking(c.Request.Context(), actor, id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Refund cancellation fee
// @Description Goodwill refund of an already charged cancellation fee
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} response.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/refund-fee [post]
func (h *BookingHandler) RefundFee(c *gin.Context) {
	h.transition(c, h.commands.RefundCancellationFee)
}

// @Summary Preview cancellation fee
// @Description Fee the caller would pay if cancelling now
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} response.FeePreviewResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/cancellation-fee [get]
func (h *BookingHandler) PreviewCancellationFee(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errActorMissing)
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fee, err := h.commands.PreviewCancellationFee(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FeePreviewResponse{FeeKroner: fee.Kroner()})
}

func (h *BookingHandler) transition(c *gin.Context, op bookingTransition) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errActorMissing)
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	b, err := op(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}
