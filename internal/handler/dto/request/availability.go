package request

type ScheduleSlot struct {
	Weekday int    `json:"weekday" binding:"min=0,max=6"`
	Start   string `json:"start" binding:"required"`
	End     string `json:"end" binding:"required"`
	Active  bool   `json:"active"`
}

type ReplaceScheduleRequest struct {
	Slots []ScheduleSlot `json:"slots" binding:"dive"`
}

type BlockDateRequest struct {
	Date   string `json:"date" binding:"required,datetime=2006-01-02"`
	Reason string `json:"reason"`
}
