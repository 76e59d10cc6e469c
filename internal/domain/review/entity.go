package review

import (
	"time"

	"fiksit-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotEligible = errs.New("booking is not eligible for review")
	ErrReviewExists       = errs.New("review already exists for this booking")
)

// Review is the customer's verdict on one completed booking, attached to the
// provider's public profile.
type Review struct {
	id         uuid.UUID
	customerID uuid.UUID
	providerID uuid.UUID
	bookingID  uuid.UUID
	rating     Rating
	comment    Comment
	createdAt  time.Time
	updatedAt  time.Time
}

func NewReview(id, customerID, providerID, bookingID uuid.UUID, ratingValue int, commentText string, now time.Time) (*Review, error) {
	rating, err := NewRating(ratingValue)
	if err != nil {
		return nil, err
	}

	comment, err := NewComment(commentText)
	if err != nil {
		return nil, err
	}

	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Review{
		id:         id,
		customerID: customerID,
		providerID: providerID,
		bookingID:  bookingID,
		rating:     rating,
		comment:    comment,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func (r *Review) ID() uuid.UUID         { return r.id }
func (r *Review) CustomerID() uuid.UUID { return r.customerID }
func (r *Review) ProviderID() uuid.UUID { return r.providerID }
func (r *Review) BookingID() uuid.UUID  { return r.bookingID }
func (r *Review) Rating() Rating        { return r.rating }
func (r *Review) Comment() Comment      { return r.comment }
func (r *Review) CreatedAt() time.Time  { return r.createdAt }
func (r *Review) UpdatedAt() time.Time  { return r.updatedAt }
