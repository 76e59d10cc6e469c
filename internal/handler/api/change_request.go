package api

import (
	"net/http"

	reqdto "fiksit-api/internal/handler/dto/request"
	resdto "fiksit-api/internal/handler/dto/response"
	"fiksit-api/internal/handler/middleware"
	"fiksit-api/internal/usecase/commands"
	"fiksit-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ChangeRequestHandler struct {
	commands commands.ChangeRequestCommands
	queries  queries.ChangeRequestQueries
}

func NewChangeRequestHandler(cmds commands.ChangeRequestCommands, qs queries.ChangeRequestQueries) *ChangeRequestHandler {
	return &ChangeRequestHandler{commands: cmds, queries: qs}
}

// @Summary Submit change request
// @Description Stage a provider profile edit for admin review
// @Tags change-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.SubmitChangeRequestRequest true "Change request"
// @Success 201 {object} response.ChangeRequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /change-requests [post]
func (h *ChangeRequestHandler) Submit(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errActorMissing)
		return
	}

	var req reqdto.SubmitChangeRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cr, err := h.commands.SubmitChangeRequest(c.Request.Context(), actor, commands.SubmitChangeRequestInput{
		Kind:    req.Kind,
		Value:   req.Value,
		Message: req.Message,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromChangeRequest(cr))
}

// @Summary List pending change requests
// @Description Admin moderation queue, oldest first
// @Tags change-requests
// @Produce json
// @Security BearerAuth
// @Param after query string false "Pagination cursor"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]any
// @Failure 403 {object} httperr.Response
// @Router /change-requests/pending [get]
func (h *ChangeRequestHandler) ListPending(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errActorMissing)
		return
	}
	cursor, limit := pageParams(c)

	views, next, err := h.queries.ListPending(c.Request.Context(), actor, cursor, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewPage(views, nextCursorString(next)))
}

// @Summary List a provider's change requests
// @Tags change-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Provider ID"
// @Param after query string false "Pagination cursor"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]any
// @Failure 403 {object} httperr.Response
// @Router /providers/{id}/change-requests [get]
func (h *ChangeRequestHandler) ListByProvider(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errActorMissing)
		return
	}
	providerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	cursor, limit := pageParams(c)

	views, next, err := h.queries.ListByProvider(c.Request.Context(), actor, providerID, cursor, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewPage(views, nextCursorString(next)))
}

// @Summary Approve change request
// @Description Apply the staged edit to the live profile
// @Tags change-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Change request ID"
// @Success 200 {object} response.ChangeRequestResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /change-requests/{id}/approve [post]
func (h *ChangeRequestHandler) Approve(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errActorMissing)
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	cr, err := h.commands.ApproveChangeRequest(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromChangeRequest(cr))
}

// @Summary Reject change request
// @Tags change-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Change request ID"
// @Param request body request.RejectChangeRequestRequest false "Rejection note"
// @Success 200 {object} response.ChangeRequestResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /change-requests/{id}/reject [post]
func (h *ChangeRequestHandler) Reject(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errActorMissing)
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.RejectChangeRequestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	cr, err := h.commands.RejectChangeRequest(c.Request.Context(), actor, id, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromChangeRequest(cr))
}
