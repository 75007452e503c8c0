package reconcile

import (
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/domain"
)

func findAttendance(dateKey string, attendance []domain.AttendanceEntry) *domain.AttendanceEntry {
	for i := range attendance {
		if NormalizeDateKey(attendance[i].WorkDate) == dateKey {
			return &attendance[i]
		}
	}
	return nil
}

// MergeAttendance overlays the day's clock punches onto the first entry.
// Clock fields are attendance-authoritative and always overlaid; notes fill
// only when the entry has none, so user text survives rebuilds. An empty
// day gets one placeholder entry with hours defaulted from hours_worked.
// Attendance never creates a second entry, and re-running with the same
// data changes nothing.
func MergeAttendance(dateKey string, entries []domain.TimesheetEntry, attendance []domain.AttendanceEntry) []domain.TimesheetEntry {
	att := findAttendance(dateKey, attendance)
	if att == nil {
		return entries
	}

	if len(entries) == 0 {
		hours := att.HoursWorked
		if hours < 0 {
			hours = 0
		}
		entries = []domain.TimesheetEntry{{
			WorkDate: dateKey,
			Hours:    hours,
			Source:   domain.EntrySourceAttendance,
		}}
	} else {
		entries = append([]domain.TimesheetEntry(nil), entries...)
	}

	first := &entries[0]
	first.ClockIn = att.StartTimeUTC
	first.ClockOut = att.EndTimeUTC
	first.ManualIn = att.ManualIn
	first.ManualOut = att.ManualOut
	if first.Notes == "" {
		first.Notes = att.Notes
	}

	return entries
}
