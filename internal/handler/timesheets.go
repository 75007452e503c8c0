package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/domain"
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/hrapi"
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/reconcile"
)

const draftWeekConstraint = "timesheet_drafts_employee_id_week_start_date_key"

// weekView is the reconciled state of one employee week, the response of
// both the week fetch and the entry update.
type weekView struct {
	EmployeeID    string                             `json:"employee_id"`
	WeekStartDate string                             `json:"week_start_date"`
	WeekEndDate   string                             `json:"week_end_date"`
	TimesheetID   string                             `json:"timesheet_id,omitempty"`
	Status        domain.TimesheetStatus             `json:"status"`
	IsEditable    bool                               `json:"is_editable"`
	Days          []string                           `json:"days"`
	Entries       map[string][]domain.TimesheetEntry `json:"entries"`
	TotalHours    float64                            `json:"total_hours"`
	Warnings      []string                           `json:"warnings,omitempty"`
}

// weekSources holds whatever the upstream fetches produced. Failed fetches
// leave their field nil and add a warning; the reconciliation engine is
// built to proceed with partial sources.
type weekSources struct {
	timesheet  *domain.Timesheet
	holidays   []domain.Holiday
	calendar   *domain.HolidayCalendar
	shifts     []domain.Shift
	attendance []domain.AttendanceEntry
	warnings   []string
}

// fetchWeekSources pulls the timesheet, holidays, calendar, shifts and
// attendance for the week concurrently. Every fetch failure downgrades to
// a warning so one upstream hiccup does not blank the whole week.
func (h *Handler) fetchWeekSources(ctx context.Context, employeeID, weekStart, weekEnd, state string, days []string) weekSources {
	var (
		src weekSources
		mu  sync.Mutex
		wg  sync.WaitGroup
	)

	warn := func(msg string, err error) {
		slog.Warn(msg, "employee_id", employeeID, "week_start", weekStart, "error", err.Error())
		mu.Lock()
		src.warnings = append(src.warnings, msg)
		mu.Unlock()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		ts, err := h.hr.Timesheet(ctx, employeeID, weekStart, weekEnd)
		switch {
		case err == nil:
			// a response for some other week must not leak into this one
			if !reconcile.MatchesWeek(ts, weekStart, weekEnd) {
				slog.Debug("discarding timesheet for a different week", "employee_id", employeeID, "week_start", weekStart, "got_week_start", ts.WeekStartDate)
				return
			}
			mu.Lock()
			src.timesheet = ts
			mu.Unlock()
		case errors.Is(err, hrapi.ErrNotFound):
			// never saved, an empty base is the correct answer
		default:
			warn("could not fetch the saved timesheet", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		var all []domain.Holiday
		for _, year := range reconcile.WeekYears(days) {
			holidays, err := h.hr.Holidays(ctx, employeeID, year, state)
			if err != nil {
				// partial holiday data must stay unresolved, not resolved-empty
				warn("could not fetch holidays", err)
				return
			}
			all = append(all, holidays...)
		}
		if all == nil {
			all = []domain.Holiday{}
		}
		mu.Lock()
		src.holidays = all
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		var merged *domain.HolidayCalendar
		for _, year := range reconcile.WeekYears(days) {
			cal, err := h.calendars.Calendar(ctx, year, state)
			if err != nil {
				warn("could not fetch the holiday calendar", err)
				return
			}
			merged = reconcile.MergeCalendars(merged, cal)
		}
		mu.Lock()
		src.calendar = merged
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		shifts, err := h.hr.ShiftsForEmployee(ctx, employeeID)
		if err != nil {
			warn("could not fetch scheduled shifts", err)
			return
		}
		mu.Lock()
		src.shifts = shifts
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		attendance, err := h.hr.AttendanceTimesheet(ctx, employeeID, weekStart, weekEnd)
		if err != nil {
			warn("could not fetch attendance records", err)
			return
		}
		mu.Lock()
		src.attendance = attendance
		mu.Unlock()
	}()

	wg.Wait()
	return src
}

// assembleWeek runs the reconciliation over the fetched sources. current
// carries the edit state taking precedence over persisted entries; nil
// means rebuild from the saved timesheet alone.
func (h *Handler) assembleWeek(employeeID, weekStart, weekEnd, state string, days []string, draft *domain.TimesheetDraft, current map[string][]domain.TimesheetEntry, src weekSources) *weekView {
	status := domain.TimesheetStatusDraft
	timesheetID := ""
	var persisted []domain.TimesheetEntry
	var embedded []domain.Holiday

	switch {
	case src.timesheet != nil:
		status = src.timesheet.Status
		timesheetID = src.timesheet.ID
		persisted = src.timesheet.Entries
		embedded = src.timesheet.HolidayCalendar
	case draft != nil:
		status = draft.Status
		timesheetID = draft.TimesheetID
	}

	var byState map[string][]domain.Holiday
	if src.calendar != nil {
		byState = src.calendar.HolidaysByState
	}

	if !status.Editable() {
		// read-only weeks always render the upstream truth
		current = nil
	}

	model := reconcile.Build(days, current, reconcile.Sources{
		Persisted: persisted,
		Holidays: reconcile.HolidaySources{
			Fetched:  src.holidays,
			Embedded: embedded,
			ByState:  byState,
			State:    state,
		},
		Shifts:     src.shifts,
		Attendance: src.attendance,
	})

	return &weekView{
		EmployeeID:    employeeID,
		WeekStartDate: weekStart,
		WeekEndDate:   weekEnd,
		TimesheetID:   timesheetID,
		Status:        status,
		IsEditable:    status.Editable(),
		Days:          days,
		Entries:       model,
		TotalHours:    reconcile.TotalHours(model),
		Warnings:      src.warnings,
	}
}

// storeDraft persists the rebuilt week. Read-only weeks delete any
// leftover draft instead; the upstream sheet is the only truth for them.
func (h *Handler) storeDraft(draft *domain.TimesheetDraft, view *weekView) error {
	if !view.IsEditable {
		if draft != nil {
			return h.repository.DeleteDraft(view.EmployeeID, view.WeekStartDate)
		}
		return nil
	}

	entries := reconcile.Flatten(view.Days, view.Entries)

	if draft == nil {
		return h.repository.CreateDraft(&domain.TimesheetDraft{
			EmployeeID:    view.EmployeeID,
			WeekStartDate: view.WeekStartDate,
			WeekEndDate:   view.WeekEndDate,
			TimesheetID:   view.TimesheetID,
			Status:        view.Status,
			Entries:       entries,
		})
	}

	draft.WeekEndDate = view.WeekEndDate
	draft.TimesheetID = view.TimesheetID
	draft.Status = view.Status
	draft.Entries = entries
	return h.repository.UpdateDraft(draft)
}

// draftRace reports whether a draft store failure came from a concurrent
// request rewriting the same week.
func draftRace(err error) bool {
	if errors.Is(err, sql.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.ConstraintName == draftWeekConstraint
}

func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	employeeID := r.Context().Value(EmployeeIDCtxKey).(string)
	weekStart := r.Context().Value(WeekStartCtxKey).(string)
	weekEnd := r.Context().Value(WeekEndCtxKey).(string)

	days, err := reconcile.WeekDays(weekStart)
	if err != nil {
		h.errorResponse(w, r, "invalid week start date")
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		state = h.config.Holidays.DefaultState
	}

	src := h.fetchWeekSources(r.Context(), employeeID, weekStart, weekEnd, state, days)

	draft, err := h.repository.GetDraft(employeeID, weekStart)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			h.internalServerError(w, r, err)
			return
		}
		draft = nil
	}

	var current map[string][]domain.TimesheetEntry
	if draft != nil {
		current = reconcile.GroupByDay(draft.Entries)
	}

	view := h.assembleWeek(employeeID, weekStart, weekEnd, state, days, draft, current, src)

	if err := h.storeDraft(draft, view); err != nil {
		if !draftRace(err) {
			h.internalServerError(w, r, err)
			return
		}
		// the concurrent request's rebuild is as good as ours
		slog.Debug("draft store raced with a concurrent rebuild", "employee_id", employeeID, "week_start", weekStart)
	}

	h.successResponse(w, r, "timesheet week fetched", view)
}

func (h *Handler) UpdateWeekEntries(w http.ResponseWriter, r *http.Request) {
	employeeID := r.Context().Value(EmployeeIDCtxKey).(string)
	weekStart := r.Context().Value(WeekStartCtxKey).(string)
	weekEnd := r.Context().Value(WeekEndCtxKey).(string)

	days, err := reconcile.WeekDays(weekStart)
	if err != nil {
		h.errorResponse(w, r, "invalid week start date")
		return
	}

	var req struct {
		Entries []domain.TimesheetEntry `json:"entries" validate:"dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	for i := range req.Entries {
		if err := req.Entries[i].Validate(); err != nil {
			h.badRequest(w, r, fmt.Errorf("entry %d: %w", i+1, err))
			return
		}
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		state = h.config.Holidays.DefaultState
	}

	src := h.fetchWeekSources(r.Context(), employeeID, weekStart, weekEnd, state, days)

	draft, err := h.repository.GetDraft(employeeID, weekStart)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			h.internalServerError(w, r, err)
			return
		}
		draft = nil
	}

	view := h.assembleWeek(employeeID, weekStart, weekEnd, state, days, draft, reconcile.GroupByDay(req.Entries), src)
	if !view.IsEditable {
		h.errorResponse(w, r, "timesheet is read-only once submitted")
		return
	}

	if err := h.storeDraft(draft, view); err != nil {
		if !draftRace(err) {
			h.internalServerError(w, r, err)
			return
		}
		h.errorResponse(w, r, "the timesheet was changed by another request, please retry")
		return
	}

	h.successResponse(w, r, "timesheet entries updated", view)
}

func (h *Handler) SaveWeek(w http.ResponseWriter, r *http.Request) {
	employeeID := r.Context().Value(EmployeeIDCtxKey).(string)
	weekStart := r.Context().Value(WeekStartCtxKey).(string)
	weekEnd := r.Context().Value(WeekEndCtxKey).(string)

	days, err := reconcile.WeekDays(weekStart)
	if err != nil {
		h.errorResponse(w, r, "invalid week start date")
		return
	}

	// one save per employee week at a time
	lockKey := fmt.Sprintf("timesheet_save_%s_%s", employeeID, weekStart)
	opTimeout := time.Duration(h.config.Redis.OperationTimeout) * time.Second

	lockCtx, cancel := context.WithTimeout(r.Context(), opTimeout)
	defer cancel()

	locked, err := h.redisClient.SetNX(lockCtx, lockKey, 1, time.Duration(h.config.SaveLock.Expiration)*time.Second).Result()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !locked {
		h.errorResponse(w, r, "a save for this week is already in progress")
		return
	}
	defer func() {
		// fresh context: the request context may be past its deadline by now
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		if err := h.redisClient.Del(ctx, lockKey).Err(); err != nil {
			slog.Warn("could not release save lock", "key", lockKey, "error", err.Error())
		}
	}()

	draft, err := h.repository.GetDraft(employeeID, weekStart)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "nothing to save for this week")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if !draft.Status.Editable() {
		h.errorResponse(w, r, "timesheet is read-only once submitted")
		return
	}

	payload, err := reconcile.SavePayload(days, reconcile.GroupByDay(draft.Entries))
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	var total float64
	for _, e := range payload {
		total += e.Hours
	}

	ts, err := h.hr.SaveTimesheet(r.Context(), employeeID, weekStart, weekEnd, total, payload)
	if err != nil {
		var apiErr *hrapi.APIError
		switch {
		case errors.As(err, &apiErr):
			h.errorResponse(w, r, fmt.Sprintf("the HR platform rejected the save: %s", apiErr.Body))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// the saved sheet is authoritative again, the draft has served its purpose
	if err := h.repository.DeleteDraft(employeeID, weekStart); err != nil {
		slog.Warn("could not delete saved draft", "employee_id", employeeID, "week_start", weekStart, "error", err.Error())
	}

	h.successResponse(w, r, "timesheet saved", ts)
}

func (h *Handler) SubmitWeek(w http.ResponseWriter, r *http.Request) {
	employeeID := r.Context().Value(EmployeeIDCtxKey).(string)
	weekStart := r.Context().Value(WeekStartCtxKey).(string)
	weekEnd := r.Context().Value(WeekEndCtxKey).(string)

	ts, err := h.hr.Timesheet(r.Context(), employeeID, weekStart, weekEnd)
	if err != nil {
		switch {
		case errors.Is(err, hrapi.ErrNotFound):
			h.errorResponse(w, r, "save the timesheet before submitting")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if !ts.Status.Editable() {
		h.errorResponse(w, r, "timesheet was already submitted")
		return
	}

	if err := h.hr.SubmitTimesheet(r.Context(), ts.ID); err != nil {
		var apiErr *hrapi.APIError
		switch {
		case errors.As(err, &apiErr):
			h.errorResponse(w, r, fmt.Sprintf("the HR platform rejected the submission: %s", apiErr.Body))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.notifyManagerOfSubmission(employeeID, weekStart, weekEnd, ts)

	if err := h.repository.DeleteDraft(employeeID, weekStart); err != nil {
		slog.Warn("could not delete submitted draft", "employee_id", employeeID, "week_start", weekStart, "error", err.Error())
	}

	h.successResponse(w, r, "timesheet submitted for approval", nil)
}

// notifyManagerOfSubmission queues the submission email for the reporting
// manager. The submission already succeeded upstream, so failures here are
// logged rather than returned.
func (h *Handler) notifyManagerOfSubmission(employeeID, weekStart, weekEnd string, ts *domain.Timesheet) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	profile, err := h.hr.EmployeeProfile(ctx, employeeID)
	if err != nil {
		slog.Error("could not load employee profile for submission mail", "employee_id", employeeID, "error", err.Error())
		return
	}
	if profile.ReportingManagerID == "" {
		return
	}

	manager, err := h.hr.EmployeeProfile(ctx, profile.ReportingManagerID)
	if err != nil {
		slog.Error("could not load manager profile for submission mail", "employee_id", employeeID, "manager_id", profile.ReportingManagerID, "error", err.Error())
		return
	}

	mailMessage := domain.MailMessage{
		Type: domain.MailTypeTimesheetSubmitted,
		To:   manager.Email,
		Data: domain.TimesheetSubmittedMailData{
			FullName:      profile.FullName(),
			WeekStartDate: weekStart,
			WeekEndDate:   weekEnd,
			TotalHours:    ts.TotalHours,
			SubmittedAt:   time.Now().Format(time.RFC3339),
		},
	}

	emailData, err := json.Marshal(mailMessage)
	if err != nil {
		slog.Error("could not encode submission mail", "error", err.Error())
		return
	}

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        emailData,
		},
	); err != nil {
		slog.Error("could not queue submission mail", "error", err.Error())
	}
}
