package queries

import (
	"context"
	"time"

	"fiksit-api/internal/domain/availability"
	"fiksit-api/internal/pkg/clock"

	"github.com/google/uuid"
)

const (
	DefaultHorizonDays = 30
	MaxHorizonDays     = 90
	dateLayout         = "2006-01-02"
)

type AvailabilityQueries interface {
	// AvailableDates lists the bookable dates within the horizon, served from
	// the cache when warm.
	AvailableDates(ctx context.Context, providerID uuid.UUID, from time.Time, horizonDays int) ([]string, error)
	TimeSlots(ctx context.Context, providerID uuid.UUID, date time.Time) ([]string, error)
	Schedule(ctx context.Context, providerID uuid.UUID) ([]*ScheduleSlotView, error)
	BlockedDates(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*BlockedDateView, error)
}

type AvailabilityViewRepo interface {
	ScheduleForProvider(ctx context.Context, providerID uuid.UUID) (availability.WeeklySchedule, error)
	BlockedDatesForProvider(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]availability.BlockedDate, error)
}

// AvailabilityCache is the read-through layer over the resolved dates. A miss
// or a cache failure falls back to the store silently.
type AvailabilityCache interface {
	GetDates(ctx context.Context, providerID uuid.UUID, from time.Time, horizonDays int) ([]string, bool)
	SetDates(ctx context.Context, providerID uuid.UUID, from time.Time, horizonDays int, dates []string)
	InvalidateProvider(ctx context.Context, providerID uuid.UUID)
}

type availabilityQueriesImpl struct {
	repo  AvailabilityViewRepo
	cache AvailabilityCache
	clock clock.Clock
}

func NewAvailabilityQueries(repo AvailabilityViewRepo, cache AvailabilityCache, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{repo: repo, cache: cache, clock: clk}
}

func (q *availabilityQueriesImpl) AvailableDates(ctx context.Context, providerID uuid.UUID, from time.Time, horizonDays int) ([]string, error) {
	if from.IsZero() {
		from = q.clock.Now()
	}
	from = availability.NormalizeDate(from)
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	if horizonDays > MaxHorizonDays {
		horizonDays = MaxHorizonDays
	}

	if dates, ok := q.cache.GetDates(ctx, providerID, from, horizonDays); ok {
		return dates, nil
	}

	schedule, err := q.repo.ScheduleForProvider(ctx, providerID)
	if err != nil {
		return nil, readErr(err)
	}
	blocked, err := q.repo.BlockedDatesForProvider(ctx, providerID, from, from.AddDate(0, 0, horizonDays))
	if err != nil {
		return nil, readErr(err)
	}

	resolved := availability.AvailableDates(schedule, blocked, from, horizonDays)
	dates := make([]string, len(resolved))
	for i, d := range resolved {
		dates[i] = d.Format(dateLayout)
	}

	q.cache.SetDates(ctx, providerID, from, horizonDays, dates)
	return dates, nil
}

func (q *availabilityQueriesImpl) TimeSlots(ctx context.Context, providerID uuid.UUID, date time.Time) ([]string, error) {
	schedule, err := q.repo.ScheduleForProvider(ctx, providerID)
	if err != nil {
		return nil, readErr(err)
	}

	day := availability.NormalizeDate(date)
	blocked, err := q.repo.BlockedDatesForProvider(ctx, providerID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, readErr(err)
	}
	if len(blocked) > 0 {
		return []string{}, nil
	}

	return availability.TimeSlots(schedule, day), nil
}

func (q *availabilityQueriesImpl) Schedule(ctx context.Context, providerID uuid.UUID) ([]*ScheduleSlotView, error) {
	schedule, err := q.repo.ScheduleForProvider(ctx, providerID)
	if err != nil {
		return nil, readErr(err)
	}

	views := make([]*ScheduleSlotView, 0, len(schedule))
	for _, s := range schedule {
		views = append(views, &ScheduleSlotView{
			Weekday: int(s.Weekday()),
			Start:   s.Start().String(),
			End:     s.End().String(),
			Active:  s.Active(),
		})
	}
	return views, nil
}

func (q *availabilityQueriesImpl) BlockedDates(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*BlockedDateView, error) {
	if from.IsZero() {
		from = availability.NormalizeDate(q.clock.Now())
	}
	if to.IsZero() {
		to = from.AddDate(0, 0, DefaultHorizonDays)
	}

	blocked, err := q.repo.BlockedDatesForProvider(ctx, providerID, availability.NormalizeDate(from), availability.NormalizeDate(to))
	if err != nil {
		return nil, readErr(err)
	}

	views := make([]*BlockedDateView, 0, len(blocked))
	for _, b := range blocked {
		views = append(views, &BlockedDateView{
			Date:   b.Date().Format(dateLayout),
			Reason: b.Reason(),
		})
	}
	return views, nil
}
