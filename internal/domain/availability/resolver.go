package availability

import (
	"sort"
	"time"
)

// SlotStepMinutes is the bookable granularity: slots start on :00 and :30.
const SlotStepMinutes = 30

// AvailableDates returns the bookable dates in the next horizonDays calendar
// days starting at from. A date qualifies iff its weekday has at least one
// active schedule slot and the date is not explicitly blocked.
func AvailableDates(schedule WeeklySchedule, blocked []BlockedDate, from time.Time, horizonDays int) []time.Time {
	blockedSet := make(map[time.Time]struct{}, len(blocked))
	for _, b := range blocked {
		blockedSet[NormalizeDate(b.Date())] = struct{}{}
	}

	dates := make([]time.Time, 0, horizonDays)
	day := NormalizeDate(from)
	for i := 0; i < horizonDays; i++ {
		if schedule.HasActiveSlot(day.Weekday()) {
			if _, isBlocked := blockedSet[day]; !isBlocked {
				dates = append(dates, day)
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return dates
}

// TimeSlots expands the date's active schedule slots into HH:MM start times
// on 30-minute boundaries strictly within [start, end). Split shifts produce
// a gap: Monday 09:00-12:00 and 13:00-17:00 yields no 12:00 or 12:30 slot.
func TimeSlots(schedule WeeklySchedule, date time.Time) []string {
	weekday := date.Weekday()

	starts := make([]int, 0)
	seen := make(map[int]struct{})
	for _, s := range schedule {
		if !s.Active() || s.Weekday() != weekday {
			continue
		}
		for t := alignToStep(s.Start()); t.Before(s.End()); t = t.AddMinutes(SlotStepMinutes) {
			if _, dup := seen[t.Minutes()]; !dup {
				seen[t.Minutes()] = struct{}{}
				starts = append(starts, t.Minutes())
			}
		}
	}
	sort.Ints(starts)

	result := make([]string, len(starts))
	for i, m := range starts {
		result[i] = TimeOfDay{minutes: m}.String()
	}
	return result
}

// alignToStep rounds a slot start up to the next half-hour boundary.
func alignToStep(t TimeOfDay) TimeOfDay {
	rem := t.Minutes() % SlotStepMinutes
	if rem == 0 {
		return t
	}
	return t.AddMinutes(SlotStepMinutes - rem)
}
