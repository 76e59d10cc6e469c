//go:build unit

package availability_test

import (
	"testing"
	"time"

	"fiksit-api/internal/domain/availability"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(t *testing.T, weekday time.Weekday, start, end string, active bool) availability.ScheduleSlot {
	t.Helper()
	s, err := availability.NewScheduleSlot(
		weekday,
		availability.MustTimeOfDay(start),
		availability.MustTimeOfDay(end),
		active,
	)
	require.NoError(t, err)
	return s
}

func TestTimeSlots(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) // a Monday

	t.Run("split shift leaves a gap", func(t *testing.T) {
		schedule := availability.WeeklySchedule{
			slot(t, time.Monday, "09:00", "12:00", true),
			slot(t, time.Monday, "13:00", "17:00", true),
		}

		got := availability.TimeSlots(schedule, monday)
		want := []string{
			"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
			"13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("TimeSlots mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("end is exclusive", func(t *testing.T) {
		schedule := availability.WeeklySchedule{
			slot(t, time.Monday, "09:00", "10:00", true),
		}
		assert.Equal(t, []string{"09:00", "09:30"}, availability.TimeSlots(schedule, monday))
	})

	t.Run("unaligned start rounds up to the half hour", func(t *testing.T) {
		schedule := availability.WeeklySchedule{
			slot(t, time.Monday, "09:15", "11:00", true),
		}
		assert.Equal(t, []string{"09:30", "10:00", "10:30"}, availability.TimeSlots(schedule, monday))
	})

	t.Run("inactive and other-day slots are ignored", func(t *testing.T) {
		schedule := availability.WeeklySchedule{
			slot(t, time.Monday, "09:00", "11:00", false),
			slot(t, time.Tuesday, "09:00", "11:00", true),
		}
		assert.Empty(t, availability.TimeSlots(schedule, monday))
	})

	t.Run("overlapping slots deduplicate", func(t *testing.T) {
		schedule := availability.WeeklySchedule{
			slot(t, time.Monday, "09:00", "11:00", true),
			slot(t, time.Monday, "10:00", "12:00", true),
		}
		assert.Equal(t,
			[]string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"},
			availability.TimeSlots(schedule, monday))
	})
}

func TestAvailableDates(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	providerID := uuid.New()

	schedule := availability.WeeklySchedule{
		slot(t, time.Monday, "09:00", "17:00", true),
		slot(t, time.Wednesday, "09:00", "17:00", true),
	}

	t.Run("only scheduled weekdays qualify", func(t *testing.T) {
		got := availability.AvailableDates(schedule, nil, monday, 7)
		want := []time.Time{
			monday,                  // Mon
			monday.AddDate(0, 0, 2), // Wed
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("AvailableDates mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("blocked dates are excluded", func(t *testing.T) {
		blocked := []availability.BlockedDate{
			availability.NewBlockedDate(providerID, monday.AddDate(0, 0, 2), "holiday", monday),
		}

		got := availability.AvailableDates(schedule, blocked, monday, 7)
		assert.Equal(t, []time.Time{monday}, got)
	})

	t.Run("blocking compares calendar dates not timestamps", func(t *testing.T) {
		blocked := []availability.BlockedDate{
			availability.NewBlockedDate(providerID, monday.Add(15*time.Hour), "", monday),
		}

		got := availability.AvailableDates(schedule, blocked, monday, 7)
		assert.Equal(t, []time.Time{monday.AddDate(0, 0, 2)}, got)
	})

	t.Run("empty schedule yields no dates", func(t *testing.T) {
		assert.Empty(t, availability.AvailableDates(nil, nil, monday, 30))
	})
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "09:00", want: "09:00"},
		{in: "23:59", want: "23:59"},
		{in: "0:05", want: "00:05"},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := availability.ParseTimeOfDay(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, availability.ErrInvalidTimeOfDay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNewScheduleSlot(t *testing.T) {
	t.Run("end must be after start", func(t *testing.T) {
		_, err := availability.NewScheduleSlot(
			time.Monday,
			availability.MustTimeOfDay("12:00"),
			availability.MustTimeOfDay("12:00"),
			true,
		)
		assert.ErrorIs(t, err, availability.ErrEndNotAfterStart)
	})
}
