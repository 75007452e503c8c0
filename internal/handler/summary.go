package handler

import (
	"net/http"

	"github.com/zama9729/Final-HR-Nov7-sub000/internal/reconcile"
)

func (h *Handler) GetAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	employeeID := r.Context().Value(EmployeeIDCtxKey).(string)

	var req struct {
		StartDate string `validate:"required,datekey"`
		EndDate   string `validate:"required,datekey"`
	}
	req.StartDate = r.URL.Query().Get("start_date")
	req.EndDate = r.URL.Query().Get("end_date")

	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if req.EndDate < req.StartDate {
		h.errorResponse(w, r, "end_date must not precede start_date")
		return
	}

	entries, err := h.hr.AttendanceTimesheet(r.Context(), employeeID, req.StartDate, req.EndDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	summary := reconcile.Summarize(entries, h.config.Timesheet.OvertimeDailyHours)
	h.successResponse(w, r, "attendance summary computed", summary)
}
