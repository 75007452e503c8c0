package reconcile_test

import (
	"testing"

	"github.com/zama9729/Final-HR-Nov7-sub000/internal/domain"
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/reconcile"
)

func testWeek(t *testing.T) []string {
	t.Helper()
	days, err := reconcile.WeekDays("2024-03-04")
	if err != nil {
		t.Fatalf("WeekDays: %v", err)
	}
	return days
}

func TestBuildCompleteDayCoverage(t *testing.T) {
	days := testWeek(t)

	tests := []struct {
		name string
		src  reconcile.Sources
	}{
		{"no data at all", reconcile.Sources{Holidays: reconcile.HolidaySources{State: domain.StateAll}}},
		{
			"partial data",
			reconcile.Sources{
				Attendance: []domain.AttendanceEntry{{WorkDate: "2024-03-05", HoursWorked: 8}},
				Holidays:   reconcile.HolidaySources{State: domain.StateAll},
			},
		},
		{
			"full data",
			reconcile.Sources{
				Persisted: []domain.TimesheetEntry{{WorkDate: "2024-03-04", Hours: 8}},
				Shifts:    []domain.Shift{{ShiftDate: "2024-03-06", StartTime: "09:00", EndTime: "17:00", ShiftType: "Day"}},
				Holidays: reconcile.HolidaySources{
					Fetched: []domain.Holiday{{Date: "2024-03-08", Name: "Founders Day"}},
					State:   domain.StateAll,
				},
				Attendance: []domain.AttendanceEntry{{WorkDate: "2024-03-07", HoursWorked: 7}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := reconcile.Build(days, nil, tt.src)
			if len(model) != 7 {
				t.Fatalf("model has %d keys, want 7", len(model))
			}
			for _, day := range days {
				if len(model[day]) == 0 {
					t.Errorf("day %s has no entries, want at least one", day)
				}
			}
		})
	}
}

func TestBuildAttendanceOnlyDay(t *testing.T) {
	days := testWeek(t)
	src := reconcile.Sources{
		Attendance: []domain.AttendanceEntry{{
			WorkDate:     "2024-03-04",
			HoursWorked:  7.5,
			StartTimeUTC: "09:00",
			EndTimeUTC:   "16:30",
		}},
		Holidays: reconcile.HolidaySources{State: domain.StateAll},
	}

	model := reconcile.Build(days, nil, src)
	got := model["2024-03-04"]
	if len(got) != 1 {
		t.Fatalf("entry count = %d, want 1", len(got))
	}
	if got[0].Hours != 7.5 {
		t.Errorf("hours = %v, want 7.5", got[0].Hours)
	}
	if got[0].ClockIn != "09:00" {
		t.Errorf("clock_in = %q, want %q", got[0].ClockIn, "09:00")
	}
}

func TestBuildHolidayOverridesShift(t *testing.T) {
	days := testWeek(t)
	day := "2024-03-04"
	src := reconcile.Sources{
		Shifts: []domain.Shift{{ShiftDate: day, StartTime: "09:00", EndTime: "17:00", ShiftType: "Day"}},
		Holidays: reconcile.HolidaySources{
			ByState: map[string][]domain.Holiday{"KA": {{Date: day, Name: "Founders Day", State: "KA"}}},
			State:   "KA",
		},
	}

	model := reconcile.Build(days, nil, src)
	got := model[day]
	if !got[0].IsHoliday {
		t.Fatal("is_holiday = false, want true")
	}
	if got[0].Description != reconcile.HolidayDescription {
		t.Errorf("description = %q, want %q", got[0].Description, reconcile.HolidayDescription)
	}
	if got[0].Hours != 0 {
		t.Errorf("hours = %v, want 0 (shift auto-fill must not run on a holiday)", got[0].Hours)
	}
	if got[0].Source == domain.EntrySourceShift {
		t.Error("source = shift, want no shift fill on a holiday")
	}
}

func TestBuildHolidayPreservesHoursAndClocks(t *testing.T) {
	days := testWeek(t)
	day := "2024-03-04"
	current := map[string][]domain.TimesheetEntry{
		day: {{WorkDate: day, Hours: 6, ProjectID: "p1", Description: "Client work"}},
	}
	src := reconcile.Sources{
		Holidays: reconcile.HolidaySources{
			Fetched: []domain.Holiday{{Date: day, Name: "Founders Day"}},
			State:   domain.StateAll,
		},
		Attendance: []domain.AttendanceEntry{{WorkDate: day, StartTimeUTC: "09:05", HoursWorked: 6}},
	}

	model := reconcile.Build(days, current, src)
	got := model[day][0]
	if !got.IsHoliday {
		t.Fatal("is_holiday = false, want true")
	}
	if got.Hours != 6 {
		t.Errorf("hours = %v, want 6 (holiday overrides category, not captured hours)", got.Hours)
	}
	if got.ProjectID != "" || got.ProjectType != "" {
		t.Errorf("project fields = %q/%q, want both cleared", got.ProjectID, got.ProjectType)
	}
	if got.ClockIn != "09:05" {
		t.Errorf("clock_in = %q, want attendance overlay on holiday too", got.ClockIn)
	}
}

func TestBuildPreservesUserEdits(t *testing.T) {
	days := testWeek(t)
	day := "2024-03-05"
	current := map[string][]domain.TimesheetEntry{
		day: {{WorkDate: day, Hours: 3.5, Description: "Code review", ProjectID: "p9"}},
	}
	src := reconcile.Sources{
		Persisted: []domain.TimesheetEntry{{WorkDate: day, Hours: 8, Description: "stale"}},
		Shifts:    []domain.Shift{{ShiftDate: day, StartTime: "09:00", EndTime: "17:00", ShiftType: "Day"}},
		Holidays:  reconcile.HolidaySources{Fetched: []domain.Holiday{}, State: domain.StateAll},
	}

	model := reconcile.Build(days, current, src)
	got := model[day][0]
	if got.Hours != 3.5 {
		t.Errorf("hours = %v, want 3.5 (user edit must survive a rebuild)", got.Hours)
	}
	if got.ProjectID != "p9" {
		t.Errorf("project_id = %q, want %q", got.ProjectID, "p9")
	}
}

func TestBuildHolidayToWorkingTransition(t *testing.T) {
	days := testWeek(t)
	day := "2024-03-04"
	current := map[string][]domain.TimesheetEntry{
		day: {{WorkDate: day, IsHoliday: true, Description: reconcile.HolidayDescription, Hours: 0}},
	}

	t.Run("feeds loaded without the day", func(t *testing.T) {
		src := reconcile.Sources{
			Holidays: reconcile.HolidaySources{Fetched: []domain.Holiday{}, State: domain.StateAll},
		}
		model := reconcile.Build(days, current, src)
		got := model[day][0]
		if got.IsHoliday {
			t.Error("is_holiday = true, want conversion back to working")
		}
		if got.Description != "" {
			t.Errorf("description = %q, want synthesized text cleared", got.Description)
		}
	})

	t.Run("no feeds loaded keeps the category", func(t *testing.T) {
		src := reconcile.Sources{Holidays: reconcile.HolidaySources{State: domain.StateAll}}
		model := reconcile.Build(days, current, src)
		got := model[day][0]
		if !got.IsHoliday {
			t.Error("is_holiday = false, want category kept when no holiday feed resolved")
		}
	})

	t.Run("user description survives the conversion", func(t *testing.T) {
		edited := map[string][]domain.TimesheetEntry{
			day: {{WorkDate: day, IsHoliday: true, Description: "On call anyway"}},
		}
		src := reconcile.Sources{
			Holidays: reconcile.HolidaySources{Fetched: []domain.Holiday{}, State: domain.StateAll},
		}
		model := reconcile.Build(days, edited, src)
		got := model[day][0]
		if got.IsHoliday {
			t.Error("is_holiday = true, want false")
		}
		if got.Description != "On call anyway" {
			t.Errorf("description = %q, want user text kept", got.Description)
		}
	})
}

func TestBuildMultiEntryDay(t *testing.T) {
	days := testWeek(t)
	day := "2024-03-06"
	current := map[string][]domain.TimesheetEntry{
		day: {
			{WorkDate: day, Hours: 4, ProjectID: "p1"},
			{WorkDate: day, Hours: 4, ProjectID: "p2"},
		},
	}
	src := reconcile.Sources{Holidays: reconcile.HolidaySources{State: domain.StateAll}}

	model := reconcile.Build(days, current, src)
	got := model[day]
	if len(got) != 2 {
		t.Fatalf("entry count = %d, want 2", len(got))
	}
	if got[0].ProjectID != "p1" || got[1].ProjectID != "p2" {
		t.Errorf("order not preserved: %q then %q", got[0].ProjectID, got[1].ProjectID)
	}
}

func TestBuildGroupsPersistedByNormalizedDate(t *testing.T) {
	days := testWeek(t)
	src := reconcile.Sources{
		Persisted: []domain.TimesheetEntry{
			{ID: "41", WorkDate: "2024-03-04T00:00:00", Hours: 8},
			{ID: "42", WorkDate: "not-a-date", Hours: 4},
		},
		Holidays: reconcile.HolidaySources{State: domain.StateAll},
	}

	model := reconcile.Build(days, nil, src)
	got := model["2024-03-04"]
	if len(got) != 1 || got[0].ID != "41" {
		t.Fatalf("persisted entry with timestamp work_date not grouped: %+v", got)
	}
	for _, day := range days {
		for _, e := range model[day] {
			if e.ID == "42" {
				t.Errorf("entry with unresolvable work_date landed on %s", day)
			}
		}
	}
}

func TestBuildDoesNotMutateInputs(t *testing.T) {
	days := testWeek(t)
	day := "2024-03-04"
	current := map[string][]domain.TimesheetEntry{
		day: {{WorkDate: day, Hours: 2, Description: "before"}},
	}
	src := reconcile.Sources{
		Shifts:   []domain.Shift{{ShiftDate: day, StartTime: "09:00", EndTime: "17:00", ShiftType: "Day"}},
		Holidays: reconcile.HolidaySources{State: domain.StateAll},
	}

	reconcile.Build(days, current, src)
	if current[day][0].Description != "before" {
		t.Errorf("input model mutated: description = %q", current[day][0].Description)
	}
}

func TestGroupByDay(t *testing.T) {
	entries := []domain.TimesheetEntry{
		{ID: "1", WorkDate: "2024-03-04"},
		{ID: "2", WorkDate: "2024-03-04T08:00:00"},
		{ID: "3", WorkDate: "2024-03-05"},
		{ID: "4", WorkDate: ""},
	}

	grouped := reconcile.GroupByDay(entries)
	if len(grouped) != 2 {
		t.Fatalf("group count = %d, want 2", len(grouped))
	}
	day := grouped["2024-03-04"]
	if len(day) != 2 || day[0].ID != "1" || day[1].ID != "2" {
		t.Errorf("2024-03-04 group = %+v, want ids 1,2 in order", day)
	}
}
