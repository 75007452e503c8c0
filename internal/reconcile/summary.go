package reconcile

import (
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/domain"
)

// Summary aggregates attendance over a date range.
type Summary struct {
	TotalHours    float64 `json:"total_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	AverageHours  float64 `json:"average_hours"`
	DaysPresent   int     `json:"days_present"`
}

// Summarize computes totals over attendance records. Overtime counts the
// hours beyond overtimeThreshold on each day worked; days with no
// resolvable work_date still count toward totals but not days present.
func Summarize(entries []domain.AttendanceEntry, overtimeThreshold float64) Summary {
	var s Summary
	perDay := make(map[string]float64)

	for _, e := range entries {
		hours := e.HoursWorked
		if hours < 0 {
			hours = 0
		}
		s.TotalHours += hours
		if key := NormalizeDateKey(e.WorkDate); key != "" {
			perDay[key] += hours
		}
	}

	for _, hours := range perDay {
		s.DaysPresent++
		if overtimeThreshold > 0 && hours > overtimeThreshold {
			s.OvertimeHours += hours - overtimeThreshold
		}
	}

	if s.DaysPresent > 0 {
		s.AverageHours = s.TotalHours / float64(s.DaysPresent)
	}
	return s
}
