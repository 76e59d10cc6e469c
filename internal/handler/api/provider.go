package api

import (
	"net/http"

	resdto "fiksit-api/internal/handler/dto/response"
	"fiksit-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ProviderHandler struct {
	queries queries.ProviderQueries
}

func NewProviderHandler(qs queries.ProviderQueries) *ProviderHandler {
	return &ProviderHandler{queries: qs}
}

// @Summary Get provider profile
// @Description Public profile with the review aggregate
// @Tags providers
// @Produce json
// @Param id path string true "Provider ID"
// @Success 200 {object} queries.ProviderProfileView
// @Failure 404 {object} httperr.Response
// @Router /providers/{id} [get]
func (h *ProviderHandler) GetProfile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.queries.ProfileByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List provider reviews
// @Tags providers
// @Produce json
// @Param id path string true "Provider ID"
// @Param after query string false "Pagination cursor"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]any
// @Router /providers/{id}/reviews [get]
func (h *ProviderHandler) ListReviews(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	cursor, limit := pageParams(c)

	views, next, err := h.queries.ListReviews(c.Request.Context(), id, cursor, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewPage(views, nextCursorString(next)))
}
