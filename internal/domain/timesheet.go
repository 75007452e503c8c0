package domain

import "errors"

type TimesheetStatus string

const (
	TimesheetStatusDraft           TimesheetStatus = "draft"
	TimesheetStatusPending         TimesheetStatus = "pending"
	TimesheetStatusPendingApproval TimesheetStatus = "pending_approval"
	TimesheetStatusApproved        TimesheetStatus = "approved"
	TimesheetStatusRejected        TimesheetStatus = "rejected"
)

// Editable reports whether entries may still be changed. The upstream API
// treats "pending" as a legacy alias of "draft", so both stay editable.
func (s TimesheetStatus) Editable() bool {
	return s == TimesheetStatusDraft || s == TimesheetStatusPending
}

const (
	EntrySourceShift      = "shift"
	EntrySourceAttendance = "attendance"
)

// TimesheetEntry is one unit of worked time on one day. WorkDate is the
// canonical YYYY-MM-DD key joining the entry to shifts, attendance and
// holidays. Clock fields are attendance-derived overlays and never required
// for the entry to be valid.
type TimesheetEntry struct {
	ID          string  `json:"id,omitempty"`
	WorkDate    string  `json:"work_date"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	ProjectID   string  `json:"project_id,omitempty"`
	ProjectType string  `json:"project_type,omitempty"`
	IsHoliday   bool    `json:"is_holiday,omitempty"`
	Source      string  `json:"source,omitempty"`
	ClockIn     string  `json:"clock_in,omitempty"`
	ClockOut    string  `json:"clock_out,omitempty"`
	ManualIn    string  `json:"manual_in,omitempty"`
	ManualOut   string  `json:"manual_out,omitempty"`
}

var (
	ErrNegativeHours        = errors.New("hours must not be negative")
	ErrProjectFieldConflict = errors.New("project_id and project_type are mutually exclusive")
)

func (e *TimesheetEntry) Validate() error {
	if e.Hours < 0 {
		return ErrNegativeHours
	}
	if e.ProjectID != "" && e.ProjectType != "" {
		return ErrProjectFieldConflict
	}
	return nil
}

// Timesheet is the upstream aggregate for one week. TotalHours is derived
// by the upstream service and not authoritative here. The embedded
// holidayCalendar field name is camelCase on the wire; the upstream API has
// always sent it that way.
type Timesheet struct {
	ID              string           `json:"id,omitempty"`
	WeekStartDate   string           `json:"week_start_date"`
	WeekEndDate     string           `json:"week_end_date"`
	Status          TimesheetStatus  `json:"status"`
	TotalHours      float64          `json:"total_hours"`
	Entries         []TimesheetEntry `json:"entries"`
	HolidayCalendar []Holiday        `json:"holidayCalendar,omitempty"`
}
