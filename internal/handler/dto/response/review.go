package response

import (
	"time"

	"fiksit-api/internal/domain/review"

	"github.com/google/uuid"
)

type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	ProviderID uuid.UUID `json:"provider_id"`
	BookingID  uuid.UUID `json:"booking_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromReview(r *review.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:         r.ID(),
		CustomerID: r.CustomerID(),
		ProviderID: r.ProviderID(),
		BookingID:  r.BookingID(),
		Rating:     r.Rating().Value(),
		Comment:    r.Comment().String(),
		CreatedAt:  r.CreatedAt(),
	}
}
