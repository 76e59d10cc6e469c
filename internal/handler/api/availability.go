package api

import (
	"net/http"
	"time"

	reqdto "fiksit-api/internal/handler/dto/request"
	resdto "fiksit-api/internal/handler/dto/response"
	"fiksit-api/internal/handler/httperr"
	"fiksit-api/internal/handler/middleware"
	"fiksit-api/internal/usecase/commands"
	"fiksit-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type AvailabilityHandler struct {
	commands commands.AvailabilityCommands
	queries  queries.AvailabilityQueries
}

func NewAvailabilityHandler(cmds commands.AvailabilityCommands, qs queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{commands: cmds, queries: qs}
}

// @Summary Replace weekly schedule
// @Description Replace the provider's recurring weekly schedule in full
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Provider ID"
// @Param request body request.ReplaceScheduleRequest true "Schedule"
// @Success 200 {array} response.ScheduleSlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /providers/{id}/schedule [put]
func (h *AvailabilityHandler) ReplaceSchedule(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errActorMissing)
		return
	}
	providerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.ReplaceScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	slots := make([]commands.ScheduleSlotInput, 0, len(req.Slots))
	for _, s := range req.Slots {
		slots = append(slots, commands.ScheduleSlotInput{
			Weekday: time.Weekday(s.Weekday),
			Start:   s.Start,
			End:     s.End,
			Active:  s.Active,
		})
	}

	schedule, err := h.commands.ReplaceSchedule(c.Request.Context(), actor, providerID, slots)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSchedule(schedule))
}

// @Summary Get weekly schedule
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Provider ID"
// @Success 200 {array} queries.ScheduleSlotView
// @Router /providers/{id}/schedule [get]
func (h *AvailabilityHandler) GetSchedule(c *gin.Context) {
	providerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	views, err := h.queries.Schedule(c.Request.Context(), providerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Block a date
// @Description Remove one calendar date from availability; fails if active bookings exist on it
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Provider ID"
// @Param request body request.BlockDateRequest true "Date to block"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /providers/{id}/blocked-dates [post]
func (h *AvailabilityHandler) BlockDate(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errActorMissing)
		return
	}
	providerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.BlockDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format", nil)
		return
	}

	if err := h.commands.BlockDate(c.Request.Context(), actor, providerID, date, req.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Unblock a date
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Provider ID"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 204
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /providers/{id}/blocked-dates/{date} [delete]
func (h *AvailabilityHandler) UnblockDate(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errActorMissing)
		return
	}
	providerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format", nil)
		return
	}

	if err := h.commands.UnblockDate(c.Request.Context(), actor, providerID, date); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List blocked dates
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Provider ID"
// @Success 200 {array} queries.BlockedDateView
// @Router /providers/{id}/blocked-dates [get]
func (h *AvailabilityHandler) ListBlockedDates(c *gin.Context) {
	providerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	from, okFrom := parseOptionalDate(c, "from")
	if !okFrom {
		return
	}
	to, okTo := parseOptionalDate(c, "to")
	if !okTo {
		return
	}

	views, err := h.queries.BlockedDates(c.Request.Context(), providerID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary List available dates
// @Description Bookable dates within the horizon, cache-backed
// @Tags availability
// @Produce json
// @Param id path string true "Provider ID"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param days query int false "Horizon in days"
// @Success 200 {object} response.AvailableDatesResponse
// @Router /providers/{id}/available-dates [get]
func (h *AvailabilityHandler) AvailableDates(c *gin.Context) {
	providerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	from, okFrom := parseOptionalDate(c, "from")
	if !okFrom {
		return
	}
	days := intQuery(c, "days")

	dates, err := h.queries.AvailableDates(c.Request.Context(), providerID, from, days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.AvailableDatesResponse{Dates: dates})
}

// @Summary List time slots for a date
// @Description Bookable HH:MM start times on the half hour for one date
// @Tags availability
// @Produce json
// @Param id path string true "Provider ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.TimeSlotsResponse
// @Failure 400 {object} httperr.Response
// @Router /providers/{id}/time-slots [get]
func (h *AvailabilityHandler) TimeSlots(c *gin.Context) {
	providerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid or missing date", nil)
		return
	}

	slots, err := h.queries.TimeSlots(c.Request.Context(), providerID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.TimeSlotsResponse{Slots: slots})
}

func parseOptionalDate(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name+" date", nil)
		return time.Time{}, false
	}
	return t, true
}
