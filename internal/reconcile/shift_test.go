package reconcile_test

import (
	"strings"
	"testing"

	"github.com/zama9729/Final-HR-Nov7-sub000/internal/domain"
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/reconcile"
)

func TestShiftHours(t *testing.T) {
	tests := []struct {
		start string
		end   string
		want  float64
	}{
		{"09:00", "17:00", 8},
		{"22:00", "06:00", 8}, // overnight, crosses midnight
		{"08:30", "12:45", 4.25},
		{"09:00:00", "17:30:00", 8.5},
		{"00:00", "00:00", 0},
		{"bogus", "17:00", 0},
		{"09:00", "", 0},
	}
	for _, tt := range tests {
		shift := domain.Shift{StartTime: tt.start, EndTime: tt.end}
		got := reconcile.ShiftHours(shift)
		if got != tt.want {
			t.Errorf("ShiftHours(%q-%q) = %v, want %v", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestApplyShiftEmptyDay(t *testing.T) {
	day := "2024-03-04"
	shift := &domain.Shift{ShiftDate: day, StartTime: "22:00", EndTime: "06:00", ShiftType: "Night"}

	got := reconcile.ApplyShift(day, nil, shift)
	if len(got) != 1 {
		t.Fatalf("ApplyShift on empty day produced %d entries, want 1", len(got))
	}
	if got[0].Hours != 8 {
		t.Errorf("hours = %v, want 8", got[0].Hours)
	}
	if got[0].Source != domain.EntrySourceShift {
		t.Errorf("source = %q, want %q", got[0].Source, domain.EntrySourceShift)
	}
	if got[0].Description != "Shift: Night (22:00-06:00)" {
		t.Errorf("description = %q, want %q", got[0].Description, "Shift: Night (22:00-06:00)")
	}
}

func TestApplyShiftNeverOverwritesHours(t *testing.T) {
	day := "2024-03-04"
	shift := &domain.Shift{ShiftDate: day, StartTime: "09:00", EndTime: "17:00", ShiftType: "Day"}
	entries := []domain.TimesheetEntry{{WorkDate: day, Hours: 3, Description: "Client work"}}

	got := reconcile.ApplyShift(day, entries, shift)
	if got[0].Hours != 3 {
		t.Errorf("hours = %v, want 3 (user value must never be overwritten)", got[0].Hours)
	}
	if !strings.HasPrefix(got[0].Description, "Client work; ") {
		t.Errorf("description = %q, want existing text kept with shift appended", got[0].Description)
	}
	if !strings.Contains(got[0].Description, "Shift: Day (09:00-17:00)") {
		t.Errorf("description = %q, want shift text appended", got[0].Description)
	}
	// the input slice must be left alone
	if entries[0].Description != "Client work" {
		t.Errorf("input mutated: description = %q", entries[0].Description)
	}
}

func TestApplyShiftFillsZeroHourEntry(t *testing.T) {
	day := "2024-03-04"
	shift := &domain.Shift{ShiftDate: day, StartTime: "09:00", EndTime: "13:00", ShiftType: "Morning"}
	entries := []domain.TimesheetEntry{{WorkDate: day, Hours: 0}}

	got := reconcile.ApplyShift(day, entries, shift)
	if got[0].Hours != 4 {
		t.Errorf("hours = %v, want 4", got[0].Hours)
	}
	if got[0].Source != domain.EntrySourceShift {
		t.Errorf("source = %q, want %q", got[0].Source, domain.EntrySourceShift)
	}
}

func TestApplyShiftIdempotent(t *testing.T) {
	day := "2024-03-04"
	shift := &domain.Shift{ShiftDate: day, StartTime: "09:00", EndTime: "17:00", ShiftType: "Day"}

	once := reconcile.ApplyShift(day, nil, shift)
	twice := reconcile.ApplyShift(day, once, shift)

	if twice[0].Description != once[0].Description {
		t.Errorf("description drifted on re-apply: %q vs %q", twice[0].Description, once[0].Description)
	}
	if len(twice) != 1 {
		t.Errorf("re-apply produced %d entries, want 1", len(twice))
	}
}

func TestApplyShiftNilShift(t *testing.T) {
	entries := []domain.TimesheetEntry{{WorkDate: "2024-03-04", Hours: 2}}
	got := reconcile.ApplyShift("2024-03-04", entries, nil)
	if len(got) != 1 || got[0].Hours != 2 {
		t.Errorf("ApplyShift(nil shift) changed the day: %+v", got)
	}
}
