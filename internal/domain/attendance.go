package domain

// AttendanceEntry is one day of clock punches from the attendance system.
// ManualIn/ManualOut are present when a punch was regularized by a manager.
type AttendanceEntry struct {
	WorkDate     string  `json:"work_date"`
	StartTimeUTC string  `json:"start_time_utc,omitempty"`
	EndTimeUTC   string  `json:"end_time_utc,omitempty"`
	ManualIn     string  `json:"manual_in,omitempty"`
	ManualOut    string  `json:"manual_out,omitempty"`
	HoursWorked  float64 `json:"hours_worked"`
	Notes        string  `json:"notes,omitempty"`
}
