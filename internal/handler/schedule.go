package handler

import (
	"net/http"
	"time"

	"github.com/forgo/atrium/api/internal/model"
	"github.com/forgo/atrium/api/internal/service"
)

// ScheduleHandler serves the cross-room day schedule view
type ScheduleHandler struct {
	scheduleService *service.ScheduleService
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
	}
}

// Day handles GET /v1/schedule?date=YYYY-MM-DD.
// The date defaults to today (UTC) when omitted.
func (h *ScheduleHandler) Day(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	schedule, err := h.scheduleService.DaySchedule(r.Context(), date)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	response := struct {
		Date  string                `json:"date"`
		Rooms []*model.RoomSchedule `json:"rooms"`
	}{
		Date:  date,
		Rooms: schedule,
	}

	WriteData(w, http.StatusOK, response, map[string]string{
		"self": "/v1/schedule?date=" + date,
	})
}
