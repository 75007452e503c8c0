package domain

import "time"

// TimesheetDraft is the server-held edit model for one employee's week.
// Entries are stored flat in day order; the reconciliation engine groups
// them back into the per-day model. The upstream timesheet stays
// authoritative: the draft only exists while the week is being edited.
type TimesheetDraft struct {
	ID            int64            `json:"id"`
	EmployeeID    string           `json:"employee_id"`
	WeekStartDate string           `json:"week_start_date"`
	WeekEndDate   string           `json:"week_end_date"`
	TimesheetID   string           `json:"timesheet_id,omitempty"`
	Status        TimesheetStatus  `json:"status"`
	Entries       []TimesheetEntry `json:"entries"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	Version       int32            `json:"-"`
}
