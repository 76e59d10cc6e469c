package quote

import (
	"strings"
	"time"

	"fiksit-api/internal/domain/booking"
	"fiksit-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidValidity     = errs.New("validity must be at least one day")
	ErrInvalidBidDuration  = errs.New("estimated duration must be positive")
	ErrResponseNotPending  = errs.New("quote response is not pending")
	ErrResponseLapsed      = errs.New("quote response validity has lapsed")
)

type Response struct {
	id                uuid.UUID
	requestID         uuid.UUID
	providerID        uuid.UUID
	price             booking.Money
	estimatedDuration int
	materialsIncluded bool
	message           string
	status            ResponseStatus
	validUntil        time.Time
	createdAt         time.Time
	updatedAt         time.Time
}

func NewResponse(
	requestID, providerID uuid.UUID,
	price booking.Money,
	estimatedDurationMinutes int,
	materialsIncluded bool,
	message string,
	validForDays int,
	now time.Time,
) (*Response, error) {
	if estimatedDurationMinutes <= 0 {
		return nil, ErrInvalidBidDuration
	}
	if validForDays == 0 {
		validForDays = DefaultResponseValidityDays
	}
	if validForDays < 1 {
		return nil, ErrInvalidValidity
	}

	return &Response{
		id:                uuid.New(),
		requestID:         requestID,
		providerID:        providerID,
		price:             price,
		estimatedDuration: estimatedDurationMinutes,
		materialsIncluded: materialsIncluded,
		message:           strings.TrimSpace(message),
		status:            ResponsePending,
		validUntil:        now.AddDate(0, 0, validForDays),
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

func ReconstructResponse(
	id, requestID, providerID uuid.UUID,
	price booking.Money,
	estimatedDurationMinutes int,
	materialsIncluded bool,
	message string,
	status ResponseStatus,
	validUntil, createdAt, updatedAt time.Time,
) *Response {
	return &Response{
		id:                id,
		requestID:         requestID,
		providerID:        providerID,
		price:             price,
		estimatedDuration: estimatedDurationMinutes,
		materialsIncluded: materialsIncluded,
		message:           message,
		status:            status,
		validUntil:        validUntil,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// EffectiveStatus applies the same lazy-expiry rule as the parent request:
// a PENDING bid past its validity deadline reads as EXPIRED.
func (r *Response) EffectiveStatus(now time.Time) ResponseStatus {
	if r.status == ResponsePending && now.After(r.validUntil) {
		return ResponseExpired
	}
	return r.status
}

func (r *Response) Accept(now time.Time) error {
	switch r.EffectiveStatus(now) {
	case ResponsePending:
		r.status = ResponseAccepted
		r.updatedAt = now
		return nil
	case ResponseExpired:
		return ErrResponseLapsed
	default:
		return ErrResponseNotPending
	}
}

func (r *Response) Reject(now time.Time) error {
	if r.status != ResponsePending {
		return ErrResponseNotPending
	}
	r.status = ResponseRejected
	r.updatedAt = now
	return nil
}

func (r *Response) ID() uuid.UUID          { return r.id }
func (r *Response) RequestID() uuid.UUID   { return r.requestID }
func (r *Response) ProviderID() uuid.UUID  { return r.providerID }
func (r *Response) Price() booking.Money   { return r.price }
func (r *Response) EstimatedDuration() int { return r.estimatedDuration }
func (r *Response) MaterialsIncluded() bool {
	return r.materialsIncluded
}
func (r *Response) Message() string         { return r.message }
func (r *Response) Status() ResponseStatus  { return r.status }
func (r *Response) ValidUntil() time.Time   { return r.validUntil }
func (r *Response) CreatedAt() time.Time    { return r.createdAt }
func (r *Response) UpdatedAt() time.Time    { return r.updatedAt }
