package reconcile

import (
	"slices"

	"github.com/zama9729/Final-HR-Nov7-sub000/internal/domain"
)

// HolidaySources bundles the independent holiday feeds consulted by the
// resolver. A nil slice/map means the feed has not resolved (or failed);
// an empty one means it resolved with no holidays. The distinction matters:
// partial data must never flip an already-classified day back to working.
type HolidaySources struct {
	// Fetched is the flat per-employee holiday list.
	Fetched []domain.Holiday
	// Embedded is the calendar carried inside the timesheet response.
	Embedded []domain.Holiday
	// ByState is the org-wide calendar grouped by state.
	ByState map[string][]domain.Holiday
	// State selects which ByState list applies; domain.StateAll matches
	// every state.
	State string
}

// Loaded reports whether at least one holiday feed has resolved.
func (s HolidaySources) Loaded() bool {
	return s.Fetched != nil || s.Embedded != nil || s.ByState != nil
}

// IsHoliday decides whether dateKey is a holiday. Checks short-circuit in
// order: an entry already flagged in the current model, the flat fetched
// list, the embedded calendar, the selected state's calendar, and finally
// every state's calendar when the all-states wildcard is selected. The
// is_holiday flag is authoritative: a flagged entry with zero hours is
// still a holiday.
func IsHoliday(dateKey string, entries map[string][]domain.TimesheetEntry, src HolidaySources) bool {
	for _, e := range entries[dateKey] {
		if e.IsHoliday {
			return true
		}
	}
	return holidayInSources(dateKey, src)
}

func holidayInSources(dateKey string, src HolidaySources) bool {
	if listContains(src.Fetched, dateKey) {
		return true
	}
	if listContains(src.Embedded, dateKey) {
		return true
	}
	if src.State != domain.StateAll {
		return listContains(src.ByState[src.State], dateKey)
	}
	for _, holidays := range src.ByState {
		if listContains(holidays, dateKey) {
			return true
		}
	}
	return false
}

func listContains(holidays []domain.Holiday, dateKey string) bool {
	for _, h := range holidays {
		if NormalizeDateKey(h.Date) == dateKey {
			return true
		}
	}
	return false
}

// MergeCalendars combines two org-wide calendars, unioning the state list
// and concatenating per-state holidays. Weeks spanning a year boundary
// fetch each year separately and merge the results. Either side may be
// nil; inputs are not mutated.
func MergeCalendars(a, b *domain.HolidayCalendar) *domain.HolidayCalendar {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	out := &domain.HolidayCalendar{
		HolidaysByState: make(map[string][]domain.Holiday, len(a.HolidaysByState)),
		States:          append([]string(nil), a.States...),
	}
	for state, holidays := range a.HolidaysByState {
		out.HolidaysByState[state] = append([]domain.Holiday(nil), holidays...)
	}
	for state, holidays := range b.HolidaysByState {
		out.HolidaysByState[state] = append(out.HolidaysByState[state], holidays...)
	}
	for _, state := range b.States {
		if !slices.Contains(out.States, state) {
			out.States = append(out.States, state)
		}
	}
	return out
}
