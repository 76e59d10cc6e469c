//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"fiksit-api/internal/domain/booking"
	"fiksit-api/internal/domain/user"
	"fiksit-api/internal/pkg/clock"
	"fiksit-api/internal/pkg/errs"
	"fiksit-api/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewFixture struct {
	uow      *fakeUoW
	clock    *clock.MockClock
	commands commands.ReviewCommands
}

func newReviewFixture() *reviewFixture {
	uow := newFakeUoW()
	clk := clock.NewMockClock(testNow)
	return &reviewFixture{
		uow:      uow,
		clock:    clk,
		commands: commands.NewReviewCommands(uow, clk),
	}
}

func seedBookingWithStatus(t *testing.T, f *reviewFixture, customer user.Actor, status booking.Status) *booking.Booking {
	t.Helper()
	item, err := booking.NewLineItem("deep clean", mustMoney(t, 1000), 120)
	require.NoError(t, err)
	b, err := booking.NewBooking(
		customer.ID, uuid.New(), uuid.New(),
		booking.LineItems{item}, testNow.Add(48*time.Hour),
		booking.PaymentMethodVipps, testNow,
	)
	require.NoError(t, err)

	switch status {
	case booking.StatusConfirmed:
		require.NoError(t, b.Confirm(testNow))
	case booking.StatusCompleted:
		require.NoError(t, b.Confirm(testNow))
		require.NoError(t, b.Complete(testNow.Add(50*time.Hour)))
	}

	require.NoError(t, (&fakeBookingRepo{f.uow.store}).Create(context.Background(), b))
	return b
}

func reviewInput(bookingID uuid.UUID) commands.SubmitReviewInput {
	return commands.SubmitReviewInput{
		BookingID: bookingID,
		Rating:    5,
		Comment:   "spotless, on time",
	}
}

func TestSubmitReview(t *testing.T) {
	ctx := context.Background()

	t.Run("customer reviews a completed booking", func(t *testing.T) {
		f := newReviewFixture()
		customer := customerActor()
		b := seedBookingWithStatus(t, f, customer, booking.StatusCompleted)

		rev, err := f.commands.SubmitReview(ctx, customer, reviewInput(b.ID()))
		require.NoError(t, err)

		assert.Equal(t, b.ID(), rev.BookingID())
		assert.Equal(t, 5, rev.Rating().Value())
		assert.Equal(t, b.ProviderID(), rev.ProviderID())
	})

	t.Run("booking must be completed", func(t *testing.T) {
		f := newReviewFixture()
		customer := customerActor()
		b := seedBookingWithStatus(t, f, customer, booking.StatusConfirmed)

		_, err := f.commands.SubmitReview(ctx, customer, reviewInput(b.ID()))
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("one review per booking", func(t *testing.T) {
		f := newReviewFixture()
		customer := customerActor()
		b := seedBookingWithStatus(t, f, customer, booking.StatusCompleted)

		_, err := f.commands.SubmitReview(ctx, customer, reviewInput(b.ID()))
		require.NoError(t, err)

		_, err = f.commands.SubmitReview(ctx, customer, reviewInput(b.ID()))
		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("only the booking's customer reviews", func(t *testing.T) {
		f := newReviewFixture()
		b := seedBookingWithStatus(t, f, customerActor(), booking.StatusCompleted)

		_, err := f.commands.SubmitReview(ctx, customerActor(), reviewInput(b.ID()))
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("providers cannot review", func(t *testing.T) {
		f := newReviewFixture()
		_, err := f.commands.SubmitReview(ctx, providerActor(), reviewInput(uuid.New()))
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("invalid rating is a validation error", func(t *testing.T) {
		f := newReviewFixture()
		customer := customerActor()
		b := seedBookingWithStatus(t, f, customer, booking.StatusCompleted)

		in := reviewInput(b.ID())
		in.Rating = 7
		_, err := f.commands.SubmitReview(ctx, customer, in)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		f := newReviewFixture()
		_, err := f.commands.SubmitReview(ctx, customerActor(), reviewInput(uuid.New()))
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}
