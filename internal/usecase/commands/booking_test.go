//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"fiksit-api/internal/domain/availability"
	"fiksit-api/internal/domain/booking"
	"fiksit-api/internal/domain/user"
	"fiksit-api/internal/pkg/clock"
	"fiksit-api/internal/pkg/errs"
	"fiksit-api/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func customerActor() user.Actor { return user.Actor{ID: uuid.New(), Role: user.RoleCustomer} }
func providerActor() user.Actor { return user.Actor{ID: uuid.New(), Role: user.RoleProvider} }
func adminActor() user.Actor    { return user.Actor{ID: uuid.New(), Role: user.RoleAdmin} }

type bookingFixture struct {
	uow      *fakeUoW
	cache    *fakeInvalidator
	clock    *clock.MockClock
	commands commands.BookingCommands
}

func newBookingFixture() *bookingFixture {
	uow := newFakeUoW()
	cache := &fakeInvalidator{}
	clk := clock.NewMockClock(testNow)
	return &bookingFixture{
		uow:      uow,
		cache:    cache,
		clock:    clk,
		commands: commands.NewBookingCommands(uow, cache, clk),
	}
}

func createInput(providerID uuid.UUID, leadTime time.Duration) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		ProviderID: providerID,
		AddressID:  uuid.New(),
		LineItems: []commands.LineItemInput{
			{Name: "deep clean", PriceKroner: 1000, DurationMinutes: 120},
		},
		ScheduledAt:   testNow.Add(leadTime),
		PaymentMethod: "vipps",
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newBookingFixture()
		customer := customerActor()
		providerID := uuid.New()

		b, err := f.commands.CreateBooking(ctx, customer, createInput(providerID, 48*time.Hour))
		require.NoError(t, err)

		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, customer.ID, b.CustomerID())
		assert.Equal(t, int64(1000), b.Totals().TotalPrice.Kroner())
		assert.Equal(t, 1, f.cache.calls, "availability cache must be invalidated")

		stored, err := f.uow.CommandReads().BookingForUpdate(ctx, b.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending, stored.Status())
	})

	t.Run("providers cannot book", func(t *testing.T) {
		f := newBookingFixture()
		_, err := f.commands.CreateBooking(ctx, providerActor(), createInput(uuid.New(), 48*time.Hour))
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("blocked date conflicts", func(t *testing.T) {
		f := newBookingFixture()
		providerID := uuid.New()
		day := availability.NormalizeDate(testNow.Add(48 * time.Hour))
		bd := availability.NewBlockedDate(providerID, day, "", testNow)
		require.NoError(t, (&fakeBlockedDateRepo{f.uow.store}).Insert(ctx, bd))

		_, err := f.commands.CreateBooking(ctx, customerActor(), createInput(providerID, 48*time.Hour))
		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("invalid line item is a validation error", func(t *testing.T) {
		f := newBookingFixture()
		in := createInput(uuid.New(), 48*time.Hour)
		in.LineItems[0].PriceKroner = -5

		_, err := f.commands.CreateBooking(ctx, customerActor(), in)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("past schedule is a validation error", func(t *testing.T) {
		f := newBookingFixture()
		_, err := f.commands.CreateBooking(ctx, customerActor(), createInput(uuid.New(), -time.Hour))
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func seedBooking(t *testing.T, f *bookingFixture, customer, provider user.Actor, leadTime time.Duration) *booking.Booking {
	t.Helper()
	in := createInput(provider.ID, leadTime)
	b, err := f.commands.CreateBooking(context.Background(), customer, in)
	require.NoError(t, err)
	return b
}

func TestConfirmAndCompleteBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("provider confirms then completes", func(t *testing.T) {
		f := newBookingFixture()
		customer, prov := customerActor(), providerActor()
		b := seedBooking(t, f, customer, prov, 48*time.Hour)

		confirmed, err := f.commands.ConfirmBooking(ctx, prov, b.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, confirmed.Status())

		completed, err := f.commands.CompleteBooking(ctx, prov, b.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCompleted, completed.Status())
	})

	t.Run("customer cannot confirm", func(t *testing.T) {
		f := newBookingFixture()
		customer, prov := customerActor(), providerActor()
		b := seedBooking(t, f, customer, prov, 48*time.Hour)

		_, err := f.commands.ConfirmBooking(ctx, customer, b.ID())
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("confirming twice is an invalid state", func(t *testing.T) {
		f := newBookingFixture()
		customer, prov := customerActor(), providerActor()
		b := seedBooking(t, f, customer, prov, 48*time.Hour)

		_, err := f.commands.ConfirmBooking(ctx, prov, b.ID())
		require.NoError(t, err)

		_, err = f.commands.ConfirmBooking(ctx, prov, b.ID())
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		f := newBookingFixture()
		_, err := f.commands.ConfirmBooking(ctx, providerActor(), uuid.New())
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("late customer cancel carries the fee", func(t *testing.T) {
		f := newBookingFixture()
		customer, prov := customerActor(), providerActor()
		b := seedBooking(t, f, customer, prov, 10*time.Hour)

		cancelled, err := f.commands.CancelBooking(ctx, customer, b.ID(), "sick")
		require.NoError(t, err)

		assert.Equal(t, booking.StatusCancelled, cancelled.Status())
		assert.Equal(t, booking.PaymentPartiallyRefunded, cancelled.PaymentStatus())
		require.NotNil(t, cancelled.Cancellation())
		assert.Equal(t, int64(500), cancelled.Cancellation().Fee().Kroner())
		assert.Equal(t, booking.CancelledByCustomer, cancelled.Cancellation().CancelledBy())
	})

	t.Run("early cancel is free", func(t *testing.T) {
		f := newBookingFixture()
		customer, prov := customerActor(), providerActor()
		b := seedBooking(t, f, customer, prov, 48*time.Hour)

		cancelled, err := f.commands.CancelBooking(ctx, customer, b.ID(), "")
		require.NoError(t, err)
		assert.True(t, cancelled.Cancellation().Fee().IsZero())
		assert.Equal(t, booking.PaymentRefunded, cancelled.PaymentStatus())
	})

	t.Run("cancel twice is an invalid state", func(t *testing.T) {
		f := newBookingFixture()
		customer, prov := customerActor(), providerActor()
		b := seedBooking(t, f, customer, prov, 10*time.Hour)

		_, err := f.commands.CancelBooking(ctx, customer, b.ID(), "")
		require.NoError(t, err)

		_, err = f.commands.CancelBooking(ctx, customer, b.ID(), "")
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("strangers are forbidden", func(t *testing.T) {
		f := newBookingFixture()
		b := seedBooking(t, f, customerActor(), providerActor(), 10*time.Hour)

		_, err := f.commands.CancelBooking(ctx, customerActor(), b.ID(), "")
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestRefundCancellationFee(t *testing.T) {
	ctx := context.Background()

	t.Run("admin refunds a charged fee once", func(t *testing.T) {
		f := newBookingFixture()
		customer, prov := customerActor(), providerActor()
		b := seedBooking(t, f, customer, prov, 10*time.Hour)

		_, err := f.commands.CancelBooking(ctx, customer, b.ID(), "")
		require.NoError(t, err)

		refunded, err := f.commands.RefundCancellationFee(ctx, adminActor(), b.ID())
		require.NoError(t, err)
		assert.True(t, refunded.Cancellation().FeeRefunded())
		assert.Equal(t, booking.PaymentRefunded, refunded.PaymentStatus())

		_, err = f.commands.RefundCancellationFee(ctx, adminActor(), b.ID())
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("free cancellation has nothing to refund", func(t *testing.T) {
		f := newBookingFixture()
		customer, prov := customerActor(), providerActor()
		b := seedBooking(t, f, customer, prov, 48*time.Hour)

		_, err := f.commands.CancelBooking(ctx, customer, b.ID(), "")
		require.NoError(t, err)

		_, err = f.commands.RefundCancellationFee(ctx, adminActor(), b.ID())
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestPreviewCancellationFee(t *testing.T) {
	ctx := context.Background()

	t.Run("fee tracks the cancellation window", func(t *testing.T) {
		f := newBookingFixture()
		customer, prov := customerActor(), providerActor()
		b := seedBooking(t, f, customer, prov, 30*time.Hour)

		fee, err := f.commands.PreviewCancellationFee(ctx, customer, b.ID())
		require.NoError(t, err)
		assert.Equal(t, int64(0), fee.Kroner())

		f.clock.Add(10 * time.Hour) // now 20h before the appointment
		fee, err = f.commands.PreviewCancellationFee(ctx, customer, b.ID())
		require.NoError(t, err)
		assert.Equal(t, int64(500), fee.Kroner())
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		f := newBookingFixture()
		_, err := f.commands.PreviewCancellationFee(ctx, customerActor(), uuid.New())
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}
