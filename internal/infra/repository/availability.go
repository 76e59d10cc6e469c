package repository

import (
	"context"
	"time"

	"fiksit-api/internal/domain/availability"
	"fiksit-api/internal/infra"
	"fiksit-api/internal/infra/db"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type ScheduleRepository struct {
	db db.DBTX
}

func NewScheduleRepository(dbtx db.DBTX) *ScheduleRepository {
	return &ScheduleRepository{db: dbtx}
}

// ReplaceForProvider swaps the full weekly schedule in one shot. The caller's
// transaction makes the delete-then-insert atomic.
func (r *ScheduleRepository) ReplaceForProvider(ctx context.Context, providerID uuid.UUID, slots availability.WeeklySchedule) error {
	query, args, err := psql.Delete("schedule_slots").
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("build schedule delete", err, infra.KindDBFailure)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("delete schedule slots", err)
	}

	if len(slots) == 0 {
		return nil
	}

	insert := psql.Insert("schedule_slots").
		Columns("provider_id", "weekday", "start_minute", "end_minute", "active")
	for _, s := range slots {
		insert = insert.Values(providerID, int(s.Weekday()), s.Start().Minutes(), s.End().Minutes(), s.Active())
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return infra.WrapRepoErr("build schedule insert", err, infra.KindDBFailure)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("insert schedule slots", err)
	}
	return nil
}

type BlockedDateRepository struct {
	db db.DBTX
}

func NewBlockedDateRepository(dbtx db.DBTX) *BlockedDateRepository {
	return &BlockedDateRepository{db: dbtx}
}

func (r *BlockedDateRepository) Insert(ctx context.Context, bd availability.BlockedDate) error {
	query, args, err := psql.Insert("blocked_dates").
		Columns("provider_id", "blocked_on", "reason", "created_at").
		Values(bd.ProviderID(), bd.Date(), bd.Reason(), bd.CreatedAt()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("build blocked date insert", err, infra.KindDBFailure)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("insert blocked date", err)
	}
	return nil
}

func (r *BlockedDateRepository) Delete(ctx context.Context, providerID uuid.UUID, date time.Time) error {
	query, args, err := psql.Delete("blocked_dates").
		Where(squirrel.Eq{"provider_id": providerID, "blocked_on": availability.NormalizeDate(date)}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("build blocked date delete", err, infra.KindDBFailure)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("delete blocked date", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("date is not blocked", nil, infra.KindNotFound)
	}
	return nil
}
