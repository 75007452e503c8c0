package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/zama9729/Final-HR-Nov7-sub000/internal/domain"
)

func (h *Handler) holidayParams(r *http.Request) (int, string, bool) {
	year := time.Now().Year()
	if param := r.URL.Query().Get("year"); param != "" {
		parsed, err := strconv.Atoi(param)
		if err != nil {
			return 0, "", false
		}
		year = parsed
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		state = h.config.Holidays.DefaultState
	}

	return year, state, true
}

func (h *Handler) GetHolidays(w http.ResponseWriter, r *http.Request) {
	employeeID := r.Context().Value(EmployeeIDCtxKey).(string)

	year, state, ok := h.holidayParams(r)
	if !ok {
		h.errorResponse(w, r, "invalid year")
		return
	}

	holidays, err := h.hr.Holidays(r.Context(), employeeID, year, state)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if holidays == nil {
		holidays = []domain.Holiday{}
	}

	h.successResponse(w, r, "holidays fetched", struct {
		Holidays []domain.Holiday `json:"holidays"`
	}{
		Holidays: holidays,
	})
}

func (h *Handler) GetHolidayCalendar(w http.ResponseWriter, r *http.Request) {
	year, state, ok := h.holidayParams(r)
	if !ok {
		h.errorResponse(w, r, "invalid year")
		return
	}

	cal, err := h.calendars.Calendar(r.Context(), year, state)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "holiday calendar fetched", cal)
}
