package commands

import (
	"context"

	"fiksit-api/internal/domain/booking"
	"fiksit-api/internal/domain/review"
	"fiksit-api/internal/domain/user"
	"fiksit-api/internal/infra"
	"fiksit-api/internal/pkg/clock"
	"fiksit-api/internal/pkg/errs"
	"fiksit-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type SubmitReviewInput struct {
	BookingID uuid.UUID
	Rating    int
	Comment   string
}

type ReviewCommands interface {
	SubmitReview(ctx context.Context, actor user.Actor, in SubmitReviewInput) (*review.Review, error)
}

type reviewCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReviewCommands(uow shared.UnitOfWork, clk clock.Clock) ReviewCommands {
	return &reviewCommandsImpl{uow: uow, clock: clk}
}

// SubmitReview attaches the one allowed review to a completed booking. The
// unique booking_id constraint backs the duplicate check.
func (c *reviewCommandsImpl) SubmitReview(ctx context.Context, actor user.Actor, in SubmitReviewInput) (*review.Review, error) {
	if !actor.IsCustomer() {
		return nil, errs.Mark(errs.New("only customers review bookings"), errs.ErrForbidden)
	}

	now := c.clock.Now()
	var result *review.Review

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := loadBooking(ctx, tx, in.BookingID)
		if err != nil {
			return err
		}

		if b.CustomerID() != actor.ID {
			return errs.Mark(errs.New("actor is not the booking's customer"), errs.ErrForbidden)
		}
		if b.Status() != booking.StatusCompleted {
			return errs.Mark(review.ErrBookingNotEligible, errs.ErrInvalidState)
		}

		exists, err := tx.Reads().HasReviewForBooking(ctx, in.BookingID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if exists {
			return errs.Mark(review.ErrReviewExists, errs.ErrConflict)
		}

		rev, err := review.NewReview(uuid.Nil, actor.ID, b.ProviderID(), in.BookingID, in.Rating, in.Comment, now)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}

		if err := tx.Reviews().Create(ctx, rev); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrConflict)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		result = rev
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
