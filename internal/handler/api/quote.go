package api

import (
	"net/http"

	"fiksit-api/internal/domain/quote"
	reqdto "fiksit-api/internal/handler/dto/request"
	resdto "fiksit-api/internal/handler/dto/response"
	"fiksit-api/internal/handler/httperr"
	"fiksit-api/internal/handler/middleware"
	"fiksit-api/internal/usecase/commands"
	"fiksit-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QuoteHandler struct {
	commands commands.QuoteCommands
	queries  queries.QuoteQueries
}

func NewQuoteHandler(cmds commands.QuoteCommands, qs queries.QuoteQueries) *QuoteHandler {
	return &QuoteHandler{commands: cmds, queries: qs}
}

// @Summary Create quote request
// @Description Open a request for bids on non-standard work
// @Tags quotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateQuoteRequestRequest true "Quote request"
// @Success 201 {object} response.QuoteRequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /quote-requests [post]
func (h *QuoteHandler) CreateRequest(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errActorMissing)
		return
	}

	var req reqdto.CreateQuoteRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	answers := make([]quote.Answer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, quote.Answer{Question: a.Question, Answer: a.Answer})
	}

	created, err := h.commands.CreateQuoteRequest(c.Request.Context(), actor, commands.CreateQuoteRequestInput{
		CategoryID:    req.CategoryID,
		AddressID:     req.AddressID,
		Title:         req.Title,
		Description:   req.Description,
		Answers:       answers,
		PhotoURLs:     req.PhotoURLs,
		ExpiresInDays: req.ExpiresInDays,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromQuoteRequest(created))
}

// @Summary Get quote request
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} queries.QuoteRequestView
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /quote-requests/{id} [get]
func (h *QuoteHandler) GetRequest(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errActorMissing)
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.queries.RequestByID(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List own quote requests
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Param after query string false "Pagination cursor"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]any
// @Router /quote-requests [get]
func (h *QuoteHandler) ListRequests(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errActorMissing)
		return
	}
	cursor, limit := pageParams(c)

	views, next, err := h.queries.ListRequestsByCustomer(c.Request.Context(), actor, actor.ID, cursor, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewPage(views, nextCursorString(next)))
}

// @Summary Browse open quote requests
// @Description Provider-facing feed of requests still taking bids
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Param category query string false "Category ID filter"
// @Param after query string false "Pagination cursor"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]any
// @Failure 403 {object} httperr.Response
// @Router /quote-requests/open [get]
func (h *QuoteHandler) ListOpenRequests(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errActorMissing)
		return
	}
	cursor, limit := pageParams(c)

	var categoryID *uuid.UUID
	if raw := c.Query("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid category ID", nil)
			return
		}
		categoryID = &id
	}

	views, next, err := h.queries.ListOpenRequests(c.Request.Context(), actor, categoryID, cursor, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewPage(views, nextCursorString(next)))
}

// @Summary Cancel quote request
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} response.QuoteRequestResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /quote-requests/{id}/cancel [post]
func (h *QuoteHandler) CancelRequest(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errActorMissing)
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	cancelled, err := h.commands.CancelQuoteRequest(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromQuoteRequest(cancelled))
}

// @Summary Submit quote response
// @Description Provider bid on an open quote request
// @Tags quotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body request.CreateQuoteResponseRequest true "Bid"
// @Success 201 {object} response.QuoteResponseResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Router /quote-requests/{id}/responses [post]
func (h *QuoteHandler) CreateResponse(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errActorMissing)
		return
	}
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.CreateQuoteResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	created, err := h.commands.CreateQuoteResponse(c.Request.Context(), actor, commands.CreateQuoteResponseInput{
		RequestID:                requestID,
		PriceKroner:              req.PriceKroner,
		EstimatedDurationMinutes: req.EstimatedDurationMinutes,
		MaterialsIncluded:        req.MaterialsIncluded,
		Message:                  req.Message,
		ValidForDays:             req.ValidForDays,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromQuoteResponse(created))
}

// @Summary List responses for a request
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {array} queries.QuoteResponseView
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /quote-requests/{id}/responses [get]
func (h *QuoteHandler) ListResponses(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errActorMissing)
		return
	}
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	views, err := h.queries.ListResponsesForRequest(c.Request.Context(), actor, requestID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Accept quote response
// @Description Accept one bid; pending siblings are rejected atomically
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Response ID"
// @Success 200 {object} response.QuoteResponseResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Router /quote-responses/{id}/accept [post]
func (h *QuoteHandler) AcceptResponse(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errActorMissing)
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	accepted, err := h.commands.AcceptQuoteResponse(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromQuoteResponse(accepted))
}
