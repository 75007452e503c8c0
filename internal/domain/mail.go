package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

const MailTypeTimesheetSubmitted = "timesheet_submitted"

type TimesheetSubmittedMailData struct {
	FullName      string  `json:"full_name"`
	WeekStartDate string  `json:"week_start_date"`
	WeekEndDate   string  `json:"week_end_date"`
	TotalHours    float64 `json:"total_hours"`
	SubmittedAt   string  `json:"submitted_at"`
}
