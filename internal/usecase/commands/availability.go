package commands

import (
	"context"
	"time"

	"fiksit-api/internal/domain/availability"
	"fiksit-api/internal/domain/user"
	"fiksit-api/internal/infra"
	"fiksit-api/internal/pkg/clock"
	"fiksit-api/internal/pkg/errs"
	"fiksit-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type ScheduleSlotInput struct {
	Weekday time.Weekday
	Start   string
	End     string
	Active  bool
}

type AvailabilityCommands interface {
	ReplaceSchedule(ctx context.Context, actor user.Actor, providerID uuid.UUID, slots []ScheduleSlotInput) (availability.WeeklySchedule, error)
	BlockDate(ctx context.Context, actor user.Actor, providerID uuid.UUID, date time.Time, reason string) error
	UnblockDate(ctx context.Context, actor user.Actor, providerID uuid.UUID, date time.Time) error
}

type availabilityCommandsImpl struct {
	uow   shared.UnitOfWork
	cache AvailabilityInvalidator
	clock clock.Clock
}

func NewAvailabilityCommands(uow shared.UnitOfWork, cache AvailabilityInvalidator, clk clock.Clock) AvailabilityCommands {
	return &availabilityCommandsImpl{uow: uow, cache: cache, clock: clk}
}

func (c *availabilityCommandsImpl) ReplaceSchedule(ctx context.Context, actor user.Actor, providerID uuid.UUID, slots []ScheduleSlotInput) (availability.WeeklySchedule, error) {
	if err := requireProviderSelf(actor, providerID); err != nil {
		return nil, err
	}

	schedule := make(availability.WeeklySchedule, 0, len(slots))
	for _, in := range slots {
		start, err := availability.ParseTimeOfDay(in.Start)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrValidation)
		}
		end, err := availability.ParseTimeOfDay(in.End)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrValidation)
		}
		slot, err := availability.NewScheduleSlot(in.Weekday, start, end, in.Active)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrValidation)
		}
		schedule = append(schedule, slot)
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Schedules().ReplaceForProvider(ctx, providerID, schedule); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.cache.InvalidateProvider(ctx, providerID)
	return schedule, nil
}

// BlockDate runs the existence check and the block-write in one transaction;
// the unique (provider_id, blocked_on) constraint backs the race against a
// concurrent booking for the same date.
func (c *availabilityCommandsImpl) BlockDate(ctx context.Context, actor user.Actor, providerID uuid.UUID, date time.Time, reason string) error {
	if err := requireProviderSelf(actor, providerID); err != nil {
		return err
	}

	day := availability.NormalizeDate(date)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		active, err := tx.Reads().CountActiveBookingsOnDate(ctx, providerID, day)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if active > 0 {
			return errs.Mark(errs.New("date has active bookings"), errs.ErrConflict)
		}

		bd := availability.NewBlockedDate(providerID, day, reason, c.clock.Now())
		if err := tx.BlockedDates().Insert(ctx, bd); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrConflict)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.cache.InvalidateProvider(ctx, providerID)
	return nil
}

func (c *availabilityCommandsImpl) UnblockDate(ctx context.Context, actor user.Actor, providerID uuid.UUID, date time.Time) error {
	if err := requireProviderSelf(actor, providerID); err != nil {
		return err
	}

	day := availability.NormalizeDate(date)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.BlockedDates().Delete(ctx, providerID, day); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.cache.InvalidateProvider(ctx, providerID)
	return nil
}

func requireProviderSelf(actor user.Actor, providerID uuid.UUID) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.IsProvider() && actor.ID == providerID {
		return nil
	}
	return errs.Mark(errs.New("actor may not manage this provider's availability"), errs.ErrForbidden)
}
