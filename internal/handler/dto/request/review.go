package request

import "github.com/google/uuid"

type SubmitReviewRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required,min=1,max=5"`
	Comment   string    `json:"comment" binding:"required"`
}
