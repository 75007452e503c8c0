package domain_test

import (
	"errors"
	"testing"

	"github.com/zama9729/Final-HR-Nov7-sub000/internal/domain"
)

func TestTimesheetStatusEditable(t *testing.T) {
	tests := []struct {
		status domain.TimesheetStatus
		want   bool
	}{
		{domain.TimesheetStatusDraft, true},
		{domain.TimesheetStatusPending, true}, // legacy alias of draft
		{domain.TimesheetStatusPendingApproval, false},
		{domain.TimesheetStatusApproved, false},
		{domain.TimesheetStatusRejected, false},
	}
	for _, tt := range tests {
		if got := tt.status.Editable(); got != tt.want {
			t.Errorf("%s.Editable() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestTimesheetEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		entry   domain.TimesheetEntry
		wantErr error
	}{
		{"valid manual entry", domain.TimesheetEntry{WorkDate: "2024-03-04", Hours: 8}, nil},
		{"project entry", domain.TimesheetEntry{WorkDate: "2024-03-04", Hours: 8, ProjectID: "p1"}, nil},
		{"non-billable entry", domain.TimesheetEntry{WorkDate: "2024-03-04", Hours: 1, ProjectType: "non-billable"}, nil},
		{"negative hours", domain.TimesheetEntry{WorkDate: "2024-03-04", Hours: -1}, domain.ErrNegativeHours},
		{
			"both project fields",
			domain.TimesheetEntry{WorkDate: "2024-03-04", ProjectID: "p1", ProjectType: "internal"},
			domain.ErrProjectFieldConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEmployeeProfileFullName(t *testing.T) {
	p := &domain.EmployeeProfile{FirstName: "Asha", LastName: "Rao"}
	if got := p.FullName(); got != "Asha Rao" {
		t.Errorf("FullName = %q, want %q", got, "Asha Rao")
	}

	single := &domain.EmployeeProfile{FirstName: "Asha"}
	if got := single.FullName(); got != "Asha" {
		t.Errorf("FullName = %q, want %q", got, "Asha")
	}
}
