package api

import (
	"errors"
	"net/http"
	"strconv"

	"fiksit-api/internal/handler/httperr"
	"fiksit-api/internal/pkg/errs"
	"fiksit-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Set by RequireAuth; absence is a routing bug, not a client error.
var errActorMissing = errs.New("authenticated actor missing from context")

// respondError maps the error taxonomy onto HTTP statuses in one place so
// every handler reports the same way.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", nil)
	case errors.Is(err, errs.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
	case errors.Is(err, errs.ErrNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	case errors.Is(err, errs.ErrDuplicateResponse):
		httperr.AbortWithError(c, http.StatusConflict, err, "Provider already responded to this request", nil)
	case errors.Is(err, errs.ErrConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Conflicting state", nil)
	case errors.Is(err, errs.ErrInvalidState):
		httperr.AbortWithError(c, http.StatusConflict, err, "Operation not allowed in the current state", nil)
	case errors.Is(err, errs.ErrExpired):
		httperr.AbortWithError(c, http.StatusGone, err, "Expired", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func bindError(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name+" format", nil)
		return uuid.Nil, false
	}
	return id, true
}

func pageParams(c *gin.Context) (*queries.Cursor, int) {
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	return cursor, limit
}

func intQuery(c *gin.Context, name string) int {
	v, _ := strconv.Atoi(c.Query(name))
	return v
}

func nextCursorString(next *queries.Cursor) *string {
	if next == nil {
		return nil
	}
	return &next.After
}
