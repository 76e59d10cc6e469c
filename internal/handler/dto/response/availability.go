package response

import (
	"fiksit-api/internal/domain/availability"
)

type ScheduleSlotResponse struct {
	Weekday int    `json:"weekday"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Active  bool   `json:"active"`
}

func FromSchedule(schedule availability.WeeklySchedule) []ScheduleSlotResponse {
	slots := make([]ScheduleSlotResponse, 0, len(schedule))
	for _, s := range schedule {
		slots = append(slots, ScheduleSlotResponse{
			Weekday: int(s.Weekday()),
			Start:   s.Start().String(),
			End:     s.End().String(),
			Active:  s.Active(),
		})
	}
	return slots
}

type AvailableDatesResponse struct {
	Dates []string `json:"dates"`
}

type TimeSlotsResponse struct {
	Slots []string `json:"slots"`
}
