package reconcile_test

import (
	"testing"

	"github.com/zama9729/Final-HR-Nov7-sub000/internal/domain"
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/reconcile"
)

func TestSummarize(t *testing.T) {
	entries := []domain.AttendanceEntry{
		{WorkDate: "2024-03-04", HoursWorked: 10.5},
		{WorkDate: "2024-03-05", HoursWorked: 8},
		{WorkDate: "2024-03-05T00:00:00", HoursWorked: 1}, // same day, second punch block
		{WorkDate: "2024-03-06", HoursWorked: 9},
	}

	got := reconcile.Summarize(entries, 9)
	if got.TotalHours != 28.5 {
		t.Errorf("TotalHours = %v, want 28.5", got.TotalHours)
	}
	if got.OvertimeHours != 1.5 {
		t.Errorf("OvertimeHours = %v, want 1.5 (only the 10.5h day exceeds 9)", got.OvertimeHours)
	}
	if got.DaysPresent != 3 {
		t.Errorf("DaysPresent = %v, want 3", got.DaysPresent)
	}
	if got.AverageHours != 9.5 {
		t.Errorf("AverageHours = %v, want 9.5", got.AverageHours)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	got := reconcile.Summarize(nil, 9)
	if got.TotalHours != 0 || got.OvertimeHours != 0 || got.DaysPresent != 0 || got.AverageHours != 0 {
		t.Errorf("Summarize(nil) = %+v, want zero values", got)
	}
}

func TestSummarizeNegativeHoursClamped(t *testing.T) {
	entries := []domain.AttendanceEntry{{WorkDate: "2024-03-04", HoursWorked: -2}}
	got := reconcile.Summarize(entries, 9)
	if got.TotalHours != 0 {
		t.Errorf("TotalHours = %v, want 0", got.TotalHours)
	}
	if got.DaysPresent != 1 {
		t.Errorf("DaysPresent = %v, want 1", got.DaysPresent)
	}
}
