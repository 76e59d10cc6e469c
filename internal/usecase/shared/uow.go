package shared

import (
	"context"
	"time"

	"fiksit-api/internal/domain/availability"
	"fiksit-api/internal/domain/booking"
	"fiksit-api/internal/domain/provider"
	"fiksit-api/internal/domain/quote"
	"fiksit-api/internal/domain/review"

	"github.com/google/uuid"
)

// UnitOfWork runs every mutating operation as one atomic unit against the
// store, per the marketplace consistency rules: no multi-step mutation is
// ever independently visible.
type UnitOfWork interface {
	// Within: read-committed transaction with retry on serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: pool-backed reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Quotes() QuoteRepository
	Schedules() ScheduleRepository
	BlockedDates() BlockedDateRepository
	Providers() ProviderRepository
	ChangeRequests() ChangeRequestRepository
	Reviews() ReviewRepository
	Reads() CommandReads
}

// CommandReads loads domain entities for command-side validation. Inside a
// transaction the *ForUpdate variants take row locks.
type CommandReads interface {
	BookingForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	QuoteRequestForUpdate(ctx context.Context, id uuid.UUID) (*quote.Request, error)
	QuoteResponseForUpdate(ctx context.Context, id uuid.UUID) (*quote.Response, error)
	ProviderProfileForUpdate(ctx context.Context, id uuid.UUID) (*provider.Profile, error)
	ChangeRequestForUpdate(ctx context.Context, id uuid.UUID) (*provider.ChangeRequest, error)

	HasProviderResponded(ctx context.Context, requestID, providerID uuid.UUID) (bool, error)
	CountActiveBookingsOnDate(ctx context.Context, providerID uuid.UUID, date time.Time) (int, error)
	IsDateBlocked(ctx context.Context, providerID uuid.UUID, date time.Time) (bool, error)
	HasReviewForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// Transition persists the booking's mutated state guarded by the expected
	// prior statuses; zero rows affected surfaces as a conflict so concurrent
	// transitions cannot both win.
	Transition(ctx context.Context, b *booking.Booking, from ...booking.Status) error
	InsertCancellation(ctx context.Context, bookingID uuid.UUID, c *booking.Cancellation) error
	MarkFeeRefunded(ctx context.Context, bookingID uuid.UUID, now time.Time) error
}

type QuoteRepository interface {
	CreateRequest(ctx context.Context, r *quote.Request) error
	CreateResponse(ctx context.Context, r *quote.Response) error
	// MarkRequestQuoted flips OPEN -> QUOTED; later responses are a no-op.
	MarkRequestQuoted(ctx context.Context, requestID uuid.UUID, now time.Time) error
	// AcceptResponse is the compare-and-swap: PENDING -> ACCEPTED, reporting
	// whether this caller won the row.
	AcceptResponse(ctx context.Context, responseID uuid.UUID, now time.Time) (won bool, err error)
	RejectPendingSiblings(ctx context.Context, requestID, acceptedID uuid.UUID, now time.Time) error
	// AcceptRequest guards the parent transition on OPEN|QUOTED.
	AcceptRequest(ctx context.Context, requestID uuid.UUID, now time.Time) (won bool, err error)
	CancelRequest(ctx context.Context, requestID uuid.UUID, now time.Time) (won bool, err error)
	ExpirePendingResponses(ctx context.Context, requestID uuid.UUID, now time.Time) error
}

type ScheduleRepository interface {
	ReplaceForProvider(ctx context.Context, providerID uuid.UUID, slots availability.WeeklySchedule) error
}

type BlockedDateRepository interface {
	Insert(ctx context.Context, bd availability.BlockedDate) error
	Delete(ctx context.Context, providerID uuid.UUID, date time.Time) error
}

type ProviderRepository interface {
	UpdateProfile(ctx context.Context, p *provider.Profile) error
}

type ChangeRequestRepository interface {
	Create(ctx context.Context, cr *provider.ChangeRequest) error
	UpdateResolution(ctx context.Context, cr *provider.ChangeRequest) error
}

type ReviewRepository interface {
	Create(ctx context.Context, r *review.Review) error
}
