package domain

// Shift is a scheduled shift assignment. It is never persisted as its own
// entity here; it only seeds hours and a description on a timesheet entry.
type Shift struct {
	ShiftDate string `json:"shift_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	ShiftType string `json:"shift_type"`
	Notes     string `json:"notes,omitempty"`
}
