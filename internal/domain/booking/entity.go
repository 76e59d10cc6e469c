package booking

import (
	"time"

	"fiksit-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNoLineItems        = errs.New("booking requires at least one line item")
	ErrScheduledInPast    = errs.New("scheduled time cannot be in the past")
	ErrInvalidPayMethod   = errs.New("invalid payment method")
	ErrNotPending         = errs.New("booking is not pending")
	ErrNotConfirmed       = errs.New("booking is not confirmed")
	ErrTerminalState      = errs.New("booking is in a terminal state")
	ErrNoCancellation     = errs.New("booking has no cancellation record")
	ErrFeeAlreadyRefunded = errs.New("cancellation fee already refunded")
	ErrNoFeeToRefund      = errs.New("cancellation carries no fee")
)

// Cancellation is created exactly once, at cancellation time. FeeRefunded is
// the only field mutable afterwards.
type Cancellation struct {
	cancelledBy     CancelParty
	reason          string
	withinDayWindow bool
	fee             Money
	feeRefunded     bool
	cancelledAt     time.Time
}

func (c *Cancellation) CancelledBy() CancelParty { return c.cancelledBy }
func (c *Cancellation) Reason() string           { return c.reason }
func (c *Cancellation) WithinDayWindow() bool    { return c.withinDayWindow }
func (c *Cancellation) Fee() Money               { return c.fee }
func (c *Cancellation) FeeRefunded() bool        { return c.feeRefunded }
func (c *Cancellation) CancelledAt() time.Time   { return c.cancelledAt }

func ReconstructCancellation(
	cancelledBy CancelParty,
	reason string,
	withinDayWindow bool,
	fee Money,
	feeRefunded bool,
	cancelledAt time.Time,
) *Cancellation {
	return &Cancellation{
		cancelledBy:     cancelledBy,
		reason:          reason,
		withinDayWindow: withinDayWindow,
		fee:             fee,
		feeRefunded:     feeRefunded,
		cancelledAt:     cancelledAt,
	}
}

type Booking struct {
	id            uuid.UUID
	customerID    uuid.UUID
	providerID    uuid.UUID
	addressID     uuid.UUID
	lineItems     LineItems
	scheduledAt   time.Time
	status        Status
	totals        Totals
	paymentMethod PaymentMethod
	paymentStatus PaymentStatus
	cancellation  *Cancellation
	completedAt   *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

// NewBooking creates a PENDING booking with its money fields derived from the
// line items. now is the injected clock reading, not the ambient wall clock.
func NewBooking(
	customerID, providerID, addressID uuid.UUID,
	lineItems LineItems,
	scheduledAt time.Time,
	paymentMethod PaymentMethod,
	now time.Time,
) (*Booking, error) {
	if len(lineItems) == 0 {
		return nil, ErrNoLineItems
	}
	if !scheduledAt.After(now) {
		return nil, ErrScheduledInPast
	}
	if !paymentMethod.IsValid() {
		return nil, ErrInvalidPayMethod
	}

	return &Booking{
		id:            uuid.New(),
		customerID:    customerID,
		providerID:    providerID,
		addressID:     addressID,
		lineItems:     lineItems,
		scheduledAt:   scheduledAt,
		status:        StatusPending,
		totals:        ComputeTotals(lineItems),
		paymentMethod: paymentMethod,
		paymentStatus: PaymentPending,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructBooking(
	id, customerID, providerID, addressID uuid.UUID,
	lineItems LineItems,
	scheduledAt time.Time,
	status Status,
	totals Totals,
	paymentMethod PaymentMethod,
	paymentStatus PaymentStatus,
	cancellation *Cancellation,
	completedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		customerID:    customerID,
		providerID:    providerID,
		addressID:     addressID,
		lineItems:     lineItems,
		scheduledAt:   scheduledAt,
		status:        status,
		totals:        totals,
		paymentMethod: paymentMethod,
		paymentStatus: paymentStatus,
		cancellation:  cancellation,
		completedAt:   completedAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Confirm moves PENDING -> CONFIRMED and marks the payment captured.
func (b *Booking) Confirm(now time.Time) error {
	if b.status != StatusPending {
		return ErrNotPending
	}
	b.status = StatusConfirmed
	b.paymentStatus = PaymentPaid
	b.updatedAt = now
	return nil
}

// Complete moves CONFIRMED -> COMPLETED and stamps the completion time.
func (b *Booking) Complete(now time.Time) error {
	if b.status != StatusConfirmed {
		return ErrNotConfirmed
	}
	b.status = StatusCompleted
	completed := now
	b.completedAt = &completed
	b.updatedAt = now
	return nil
}

// Cancel moves any non-terminal state -> CANCELLED, computes the fee and
// creates the cancellation record. A second Cancel fails: the fee must not
// be charged twice.
func (b *Booking) Cancel(by CancelParty, reason string, now time.Time) error {
	if b.status.IsTerminal() {
		return ErrTerminalState
	}
	if !by.IsValid() {
		return errs.Newf("invalid cancelling party %q", by)
	}

	fee := CancellationFee(b.scheduledAt, b.totals.TotalPrice, now)
	b.status = StatusCancelled
	b.cancellation = &Cancellation{
		cancelledBy:     by,
		reason:          reason,
		withinDayWindow: WithinCancellationWindow(b.scheduledAt, now),
		fee:             fee,
		cancelledAt:     now,
	}
	if fee.IsZero() {
		b.paymentStatus = PaymentRefunded
	} else {
		b.paymentStatus = PaymentPartiallyRefunded
	}
	b.updatedAt = now
	return nil
}

// RefundCancellationFee flips the goodwill-refund flag on the cancellation
// record, the only mutation allowed after the terminal state.
func (b *Booking) RefundCancellationFee(now time.Time) error {
	if b.cancellation == nil {
		return ErrNoCancellation
	}
	if b.cancellation.fee.IsZero() {
		return ErrNoFeeToRefund
	}
	if b.cancellation.feeRefunded {
		return ErrFeeAlreadyRefunded
	}
	b.cancellation.feeRefunded = true
	b.paymentStatus = PaymentRefunded
	b.updatedAt = now
	return nil
}

func (b *Booking) IsActive() bool {
	return !b.status.IsTerminal()
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) CustomerID() uuid.UUID        { return b.customerID }
func (b *Booking) ProviderID() uuid.UUID        { return b.providerID }
func (b *Booking) AddressID() uuid.UUID         { return b.addressID }
func (b *Booking) LineItems() LineItems         { return b.lineItems }
func (b *Booking) ScheduledAt() time.Time       { return b.scheduledAt }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) Totals() Totals               { return b.totals }
func (b *Booking) PaymentMethod() PaymentMethod { return b.paymentMethod }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) Cancellation() *Cancellation  { return b.cancellation }
func (b *Booking) CompletedAt() *time.Time      { return b.completedAt }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }
