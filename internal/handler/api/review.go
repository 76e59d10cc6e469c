package api

import (
	"net/http"

	reqdto "fiksit-api/internal/handler/dto/request"
	resdto "fiksit-api/internal/handler/dto/response"
	"fiksit-api/internal/handler/middleware"
	"fiksit-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	commands commands.ReviewCommands
}

func NewReviewHandler(cmds commands.ReviewCommands) *ReviewHandler {
	return &ReviewHandler{commands: cmds}
}

// @Summary Submit review
// @Description One review per completed booking, by its customer
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.SubmitReviewRequest true "Review"
// @Success 201 {object} response.ReviewResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reviews [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errActorMissing)
		return
	}

	var req reqdto.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	rev, err := h.commands.SubmitReview(c.Request.Context(), actor, commands.SubmitReviewInput{
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReview(rev))
}
