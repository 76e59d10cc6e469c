package readstore

import (
	"context"
	"time"

	"fiksit-api/internal/domain/availability"
	"fiksit-api/internal/infra"
	"fiksit-api/internal/infra/db"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type AvailabilityReadStore struct {
	db db.DBTX
}

func NewAvailabilityReadStore(dbtx db.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{db: dbtx}
}

// ScheduleForProvider returns the full weekly schedule as domain slots so the
// resolver can run on them directly.
func (s *AvailabilityReadStore) ScheduleForProvider(ctx context.Context, providerID uuid.UUID) (availability.WeeklySchedule, error) {
	query, args, err := psql.Select("weekday", "start_minute", "end_minute", "active").
		From("schedule_slots").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("weekday ASC", "start_minute ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build schedule select", err, infra.KindDBFailure)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("select schedule slots", err)
	}
	defer rows.Close()

	schedule := make(availability.WeeklySchedule, 0)
	for rows.Next() {
		var (
			weekday, startMinute, endMinute int
			active                          bool
		)
		if err := rows.Scan(&weekday, &startMinute, &endMinute, &active); err != nil {
			return nil, infra.WrapRepoErr("scan schedule slot", err, infra.KindDBFailure)
		}
		schedule = append(schedule, availability.ReconstructScheduleSlot(
			time.Weekday(weekday),
			availability.TimeOfDayFromMinutes(startMinute),
			availability.TimeOfDayFromMinutes(endMinute),
			active,
		))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("iterate schedule slots", err, infra.KindDBFailure)
	}
	return schedule, nil
}

func (s *AvailabilityReadStore) BlockedDatesForProvider(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]availability.BlockedDate, error) {
	query, args, err := psql.Select("provider_id", "blocked_on", "reason", "created_at").
		From("blocked_dates").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.GtOrEq{"blocked_on": from}).
		Where(squirrel.Lt{"blocked_on": to}).
		OrderBy("blocked_on ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build blocked dates select", err, infra.KindDBFailure)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("select blocked dates", err)
	}
	defer rows.Close()

	blocked := make([]availability.BlockedDate, 0)
	for rows.Next() {
		var (
			pID       uuid.UUID
			blockedOn time.Time
			reason    string
			createdAt time.Time
		)
		if err := rows.Scan(&pID, &blockedOn, &reason, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("scan blocked date", err, infra.KindDBFailure)
		}
		blocked = append(blocked, availability.NewBlockedDate(pID, blockedOn, reason, createdAt))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("iterate blocked dates", err, infra.KindDBFailure)
	}
	return blocked, nil
}
