package availability

import (
	"fmt"
	"time"

	"fiksit-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeOfDay = errs.New("time of day must be HH:MM within 00:00-23:59")
	ErrEndNotAfterStart = errs.New("slot end must be after start")
)

// TimeOfDay is a wall-clock time within a day, minute precision.
type TimeOfDay struct {
	minutes int
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return TimeOfDay{}, errs.Mark(err, ErrInvalidTimeOfDay)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{minutes: h*60 + m}, nil
}

func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// TimeOfDayFromMinutes rebuilds a stored minute offset; out-of-range values
// are the store's problem, not validated here.
func TimeOfDayFromMinutes(minutes int) TimeOfDay {
	return TimeOfDay{minutes: minutes}
}

func (t TimeOfDay) Minutes() int { return t.minutes }

func (t TimeOfDay) Before(other TimeOfDay) bool { return t.minutes < other.minutes }

func (t TimeOfDay) AddMinutes(m int) TimeOfDay {
	return TimeOfDay{minutes: t.minutes + m}
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// ScheduleSlot is one recurring working window on one weekday. A provider may
// hold any number of slots per day (split shifts).
type ScheduleSlot struct {
	weekday time.Weekday
	start   TimeOfDay
	end     TimeOfDay
	active  bool
}

func NewScheduleSlot(weekday time.Weekday, start, end TimeOfDay, active bool) (ScheduleSlot, error) {
	if !start.Before(end) {
		return ScheduleSlot{}, ErrEndNotAfterStart
	}
	return ScheduleSlot{weekday: weekday, start: start, end: end, active: active}, nil
}

func ReconstructScheduleSlot(weekday time.Weekday, start, end TimeOfDay, active bool) ScheduleSlot {
	return ScheduleSlot{weekday: weekday, start: start, end: end, active: active}
}

func (s ScheduleSlot) Weekday() time.Weekday { return s.weekday }
func (s ScheduleSlot) Start() TimeOfDay      { return s.start }
func (s ScheduleSlot) End() TimeOfDay        { return s.end }
func (s ScheduleSlot) Active() bool          { return s.active }

type WeeklySchedule []ScheduleSlot

// HasActiveSlot reports whether any active slot exists for the weekday.
func (ws WeeklySchedule) HasActiveSlot(weekday time.Weekday) bool {
	for _, s := range ws {
		if s.active && s.weekday == weekday {
			return true
		}
	}
	return false
}

// BlockedDate removes one calendar date from a provider's availability
// regardless of the recurring schedule.
type BlockedDate struct {
	providerID uuid.UUID
	date       time.Time
	reason     string
	createdAt  time.Time
}

func NewBlockedDate(providerID uuid.UUID, date time.Time, reason string, now time.Time) BlockedDate {
	return BlockedDate{
		providerID: providerID,
		date:       NormalizeDate(date),
		reason:     reason,
		createdAt:  now,
	}
}

func (b BlockedDate) ProviderID() uuid.UUID { return b.providerID }
func (b BlockedDate) Date() time.Time       { return b.date }
func (b BlockedDate) Reason() string        { return b.reason }
func (b BlockedDate) CreatedAt() time.Time  { return b.createdAt }

// NormalizeDate truncates a timestamp to its calendar date (UTC midnight) so
// date equality is never sensitive to the time-of-day component.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
