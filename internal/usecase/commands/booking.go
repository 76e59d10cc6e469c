package commands

import (
	"context"
	"time"

	"fiksit-api/internal/domain/availability"
	"fiksit-api/internal/domain/booking"
	"fiksit-api/internal/domain/user"
	"fiksit-api/internal/infra"
	"fiksit-api/internal/pkg/clock"
	"fiksit-api/internal/pkg/errs"
	"fiksit-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type LineItemInput struct {
	Name            string
	PriceKroner     int64
	DurationMinutes int
}

type CreateBookingInput struct {
	ProviderID    uuid.UUID
	AddressID     uuid.UUID
	LineItems     []LineItemInput
	ScheduledAt   time.Time
	PaymentMethod string
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, actor user.Actor, in CreateBookingInput) (*booking.Booking, error)
	ConfirmBooking(ctx context.Context, actor user.Actor, id uuid.UUID) (*booking.Booking, error)
	CompleteBooking(ctx context.Context, actor user.Actor, id uuid.UUID) (*booking.Booking, error)
	CancelBooking(ctx context.Context, actor user.Actor, id uuid.UUID, reason string) (*booking.Booking, error)
	RefundCancellationFee(ctx context.Context, actor user.Actor, id uuid.UUID) (*booking.Booking, error)
	// PreviewCancellationFee backs the pre-cancellation screen with the same
	// fee function the actual cancellation uses, so the two cannot drift.
	PreviewCancellationFee(ctx context.Context, actor user.Actor, id uuid.UUID) (booking.Money, error)
}

type AvailabilityInvalidator interface {
	InvalidateProvider(ctx context.Context, providerID uuid.UUID)
}

type bookingCommandsImpl struct {
	uow   shared.UnitOfWork
	cache AvailabilityInvalidator
	clock clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, cache AvailabilityInvalidator, clk clock.Clock) BookingCommands {
	return &bookingCommandsImpl{uow: uow, cache: cache, clock: clk}
}

func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, actor user.Actor, in CreateBookingInput) (*booking.Booking, error) {
	if !actor.IsCustomer() {
		return nil, errs.Mark(errs.New("only customers create bookings"), errs.ErrForbidden)
	}

	items := make(booking.LineItems, 0, len(in.LineItems))
	for _, li := range in.LineItems {
		price, err := booking.NewMoney(li.PriceKroner)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrValidation)
		}
		item, err := booking.NewLineItem(li.Name, price, li.DurationMinutes)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrValidation)
		}
		items = append(items, item)
	}

	b, err := booking.NewBooking(
		actor.ID,
		in.ProviderID,
		in.AddressID,
		items,
		in.ScheduledAt,
		booking.PaymentMethod(in.PaymentMethod),
		c.clock.Now(),
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		blocked, err := tx.Reads().IsDateBlocked(ctx, in.ProviderID, availability.NormalizeDate(in.ScheduledAt))
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if blocked {
			return errs.Mark(errs.New("provider has blocked this date"), errs.ErrConflict)
		}
		if err := tx.Bookings().Create(ctx, b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.cache.InvalidateProvider(ctx, in.ProviderID)
	return b, nil
}

func (c *bookingCommandsImpl) ConfirmBooking(ctx context.Context, actor user.Actor, id uuid.UUID) (*booking.Booking, error) {
	var result *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := loadBooking(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := requireBookingParty(actor, b, user.RoleProvider); err != nil {
			return err
		}
		if err := b.Confirm(c.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrInvalidState)
		}
		if err := tx.Bookings().Transition(ctx, b, booking.StatusPending); err != nil {
			return transitionErr(err)
		}
		result = b
		return nil
	})
	return result, err
}

func (c *bookingCommandsImpl) CompleteBooking(ctx context.Context, actor user.Actor, id uuid.UUID) (*booking.Booking, error) {
	var result *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := loadBooking(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := requireBookingParty(actor, b, user.RoleProvider); err != nil {
			return err
		}
		if err := b.Complete(c.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrInvalidState)
		}
		if err := tx.Bookings().Transition(ctx, b, booking.StatusConfirmed); err != nil {
			return transitionErr(err)
		}
		result = b
		return nil
	})
	return result, err
}

// CancelBooking transitions to CANCELLED and creates the cancellation record
// in the same transaction: a crash between the two must never leave one
// without the other.
func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, actor user.Actor, id uuid.UUID, reason string) (*booking.Booking, error) {
	var result *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := loadBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		party, err := cancellingParty(actor, b)
		if err != nil {
			return err
		}

		if err := b.Cancel(party, reason, c.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrInvalidState)
		}
		if err := tx.Bookings().Transition(ctx, b, booking.StatusPending, booking.StatusConfirmed); err != nil {
			return transitionErr(err)
		}
		if err := tx.Bookings().InsertCancellation(ctx, b.ID(), b.Cancellation()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.cache.InvalidateProvider(ctx, result.ProviderID())
	return result, nil
}

func (c *bookingCommandsImpl) RefundCancellationFee(ctx context.Context, actor user.Actor, id uuid.UUID) (*booking.Booking, error) {
	var result *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := loadBooking(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := requireBookingParty(actor, b, user.RoleProvider); err != nil {
			return err
		}
		if err := b.RefundCancellationFee(c.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrInvalidState)
		}
		if err := tx.Bookings().MarkFeeRefunded(ctx, b.ID(), c.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		result = b
		return nil
	})
	return result, err
}

func (c *bookingCommandsImpl) PreviewCancellationFee(ctx context.Context, actor user.Actor, id uuid.UUID) (booking.Money, error) {
	b, err := c.uow.CommandReads().BookingForUpdate(ctx, id)
	if err != nil {
		return booking.Money{}, notFoundOrDB(err)
	}
	if _, err := cancellingParty(actor, b); err != nil {
		return booking.Money{}, err
	}
	return booking.CancellationFee(b.ScheduledAt(), b.Totals().TotalPrice, c.clock.Now()), nil
}

func loadBooking(ctx context.Context, tx shared.Tx, id uuid.UUID) (*booking.Booking, error) {
	b, err := tx.Reads().BookingForUpdate(ctx, id)
	if err != nil {
		return nil, notFoundOrDB(err)
	}
	return b, nil
}

// cancellingParty resolves which side of the marketplace the actor is on,
// and that the actor belongs to this booking at all.
func cancellingParty(actor user.Actor, b *booking.Booking) (booking.CancelParty, error) {
	switch {
	case actor.IsAdmin():
		return booking.CancelledByProvider, nil
	case actor.IsCustomer() && actor.ID == b.CustomerID():
		return booking.CancelledByCustomer, nil
	case actor.IsProvider() && actor.ID == b.ProviderID():
		return booking.CancelledByProvider, nil
	default:
		return "", errs.Mark(errs.New("actor is not a party to this booking"), errs.ErrForbidden)
	}
}

func requireBookingParty(actor user.Actor, b *booking.Booking, role user.Role) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.Role == role && (actor.ID == b.ProviderID() || actor.ID == b.CustomerID()) {
		return nil
	}
	return errs.Mark(errs.New("actor is not permitted to act on this booking"), errs.ErrForbidden)
}

func transitionErr(err error) error {
	if infra.IsKind(err, infra.KindConflict) {
		return errs.Mark(err, errs.ErrInvalidState)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}

func notFoundOrDB(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrNotFound)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
