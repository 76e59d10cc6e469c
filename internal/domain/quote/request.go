package quote

import (
	"strings"
	"time"

	"fiksit-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle          = errs.New("quote request title cannot be empty")
	ErrInvalidExpiry       = errs.New("expiry must be at least one day")
	ErrRequestTerminal     = errs.New("quote request is in a terminal state")
	ErrRequestExpired      = errs.New("quote request has expired")
	ErrRequestNotOpen      = errs.New("quote request is not open for bids")
	ErrRequestNotQuotable  = errs.New("quote request has no pending bids")
)

// Answer is a free-form reply to one category-specific question.
type Answer struct {
	Question string
	Answer   string
}

type Request struct {
	id          uuid.UUID
	customerID  uuid.UUID
	categoryID  uuid.UUID
	addressID   uuid.UUID
	title       string
	description string
	answers     []Answer
	photoURLs   []string
	status      RequestStatus
	expiresAt   time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func NewRequest(
	customerID, categoryID, addressID uuid.UUID,
	title, description string,
	answers []Answer,
	photoURLs []string,
	expiresInDays int,
	now time.Time,
) (*Request, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if expiresInDays == 0 {
		expiresInDays = DefaultRequestExpiryDays
	}
	if expiresInDays < 1 {
		return nil, ErrInvalidExpiry
	}

	return &Request{
		id:          uuid.New(),
		customerID:  customerID,
		categoryID:  categoryID,
		addressID:   addressID,
		title:       title,
		description: strings.TrimSpace(description),
		answers:     answers,
		photoURLs:   photoURLs,
		status:      RequestOpen,
		expiresAt:   now.AddDate(0, 0, expiresInDays),
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructRequest(
	id, customerID, categoryID, addressID uuid.UUID,
	title, description string,
	answers []Answer,
	photoURLs []string,
	status RequestStatus,
	expiresAt, createdAt, updatedAt time.Time,
) *Request {
	return &Request{
		id:          id,
		customerID:  customerID,
		categoryID:  categoryID,
		addressID:   addressID,
		title:       title,
		description: description,
		answers:     answers,
		photoURLs:   photoURLs,
		status:      status,
		expiresAt:   expiresAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// EffectiveStatus evaluates expiry lazily: a persisted OPEN or QUOTED status
// past expiresAt reads as EXPIRED even before any row is rewritten. The
// persisted enum is never trusted alone for time-based transitions.
func (r *Request) EffectiveStatus(now time.Time) RequestStatus {
	if (r.status == RequestOpen || r.status == RequestQuoted) && now.After(r.expiresAt) {
		return RequestExpired
	}
	return r.status
}

func (r *Request) AcceptsBids(now time.Time) error {
	switch r.EffectiveStatus(now) {
	case RequestOpen, RequestQuoted:
		return nil
	case RequestExpired:
		return ErrRequestExpired
	default:
		return ErrRequestTerminal
	}
}

// MarkQuoted records the first-response-wins OPEN -> QUOTED transition.
// Subsequent responses leave the status untouched.
func (r *Request) MarkQuoted(now time.Time) {
	if r.status == RequestOpen {
		r.status = RequestQuoted
		r.updatedAt = now
	}
}

func (r *Request) Accept(now time.Time) error {
	switch r.EffectiveStatus(now) {
	case RequestOpen, RequestQuoted:
		r.status = RequestAccepted
		r.updatedAt = now
		return nil
	case RequestExpired:
		return ErrRequestExpired
	default:
		return ErrRequestTerminal
	}
}

func (r *Request) Cancel(now time.Time) error {
	if r.EffectiveStatus(now).IsTerminal() {
		return ErrRequestTerminal
	}
	r.status = RequestCancelled
	r.updatedAt = now
	return nil
}

func (r *Request) ID() uuid.UUID         { return r.id }
func (r *Request) CustomerID() uuid.UUID { return r.customerID }
func (r *Request) CategoryID() uuid.UUID { return r.categoryID }
func (r *Request) AddressID() uuid.UUID  { return r.addressID }
func (r *Request) Title() string         { return r.title }
func (r *Request) Description() string   { return r.description }
func (r *Request) Answers() []Answer     { return r.answers }
func (r *Request) PhotoURLs() []string   { return r.photoURLs }
func (r *Request) Status() RequestStatus { return r.status }
func (r *Request) ExpiresAt() time.Time  { return r.expiresAt }
func (r *Request) CreatedAt() time.Time  { return r.createdAt }
func (r *Request) UpdatedAt() time.Time  { return r.updatedAt }
