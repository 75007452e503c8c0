package reconcile

import (
	"fmt"
	"time"

	"github.com/zama9729/Final-HR-Nov7-sub000/internal/domain"
)

// WeekDays returns the seven consecutive date keys starting at weekStart.
func WeekDays(weekStart string) ([]string, error) {
	key := NormalizeDateKey(weekStart)
	if key == "" {
		return nil, fmt.Errorf("invalid week start date %q", weekStart)
	}
	start, err := time.Parse(dateKeyLayout, key)
	if err != nil {
		return nil, fmt.Errorf("invalid week start date %q", weekStart)
	}

	days := make([]string, 7)
	for i := range days {
		days[i] = DateKeyFromTime(start.AddDate(0, 0, i))
	}
	return days, nil
}

// WeekEnd returns the last day of the week starting at weekStart.
func WeekEnd(weekStart string) (string, error) {
	days, err := WeekDays(weekStart)
	if err != nil {
		return "", err
	}
	return days[6], nil
}

// WeekYears returns the calendar years the week touches. A week spanning
// New Year needs holidays fetched for both years.
func WeekYears(days []string) []int {
	years := make([]int, 0, 2)
	for _, day := range days {
		t, err := time.Parse(dateKeyLayout, day)
		if err != nil {
			continue
		}
		y := t.Year()
		if len(years) == 0 || years[len(years)-1] != y {
			years = append(years, y)
		}
	}
	return years
}

// TotalHours sums entry hours across the whole model.
func TotalHours(entries map[string][]domain.TimesheetEntry) float64 {
	var total float64
	for _, day := range entries {
		for _, e := range day {
			total += e.Hours
		}
	}
	return total
}

// Flatten returns the model's entries as one flat list in day order, the
// shape the draft store persists. Unlike SavePayload it keeps
// holiday-flagged entries: the draft must round-trip the full model.
func Flatten(days []string, entries map[string][]domain.TimesheetEntry) []domain.TimesheetEntry {
	out := make([]domain.TimesheetEntry, 0, len(days))
	for _, day := range days {
		out = append(out, entries[day]...)
	}
	return out
}

// MatchesWeek reports whether a fetched timesheet covers the given week.
// Responses arriving after the active week changed must be discarded, not
// merged.
func MatchesWeek(ts *domain.Timesheet, weekStart, weekEnd string) bool {
	if ts == nil {
		return false
	}
	return NormalizeDateKey(ts.WeekStartDate) == weekStart && NormalizeDateKey(ts.WeekEndDate) == weekEnd
}
