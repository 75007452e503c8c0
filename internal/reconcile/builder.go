package reconcile

import (
	"log/slog"

	"github.com/zama9729/Final-HR-Nov7-sub000/internal/domain"
)

// HolidayDescription is the synthesized description for a holiday-shaped
// entry. It is cleared again when a day converts back to working, unless
// the user replaced it.
const HolidayDescription = "Holiday"

// Sources bundles everything the builder folds into the week model. Any
// part may be nil when the corresponding fetch failed or has not resolved
// yet; the builder proceeds with whatever is present.
type Sources struct {
	Persisted  []domain.TimesheetEntry
	Holidays   HolidaySources
	Shifts     []domain.Shift
	Attendance []domain.AttendanceEntry
}

// GroupByDay groups a flat entry list by normalized work_date, preserving
// input order within each day. Entries whose work_date cannot be
// normalized have no day to live on and are skipped.
func GroupByDay(entries []domain.TimesheetEntry) map[string][]domain.TimesheetEntry {
	grouped := make(map[string][]domain.TimesheetEntry)
	for _, e := range entries {
		key := NormalizeDateKey(e.WorkDate)
		if key == "" {
			slog.Debug("entry without resolvable work_date skipped", "id", e.ID, "work_date", e.WorkDate)
			continue
		}
		grouped[key] = append(grouped[key], e)
	}
	return grouped
}

// Build produces the per-day entry model for a week. current is the
// in-memory model from the previous build (user edits included) and is
// always the base when it has entries for a day; persisted entries only
// seed days the model does not cover yet. Per day it classifies holiday
// status, applies shift auto-fill on working days, overlays attendance,
// and guarantees at least one entry. The output has exactly len(days)
// keys; inputs are never mutated.
func Build(days []string, current map[string][]domain.TimesheetEntry, src Sources) map[string][]domain.TimesheetEntry {
	persisted := GroupByDay(src.Persisted)

	model := make(map[string][]domain.TimesheetEntry, len(days))
	for _, day := range days {
		base := current[day]
		if len(base) == 0 {
			base = persisted[day]
		}
		base = append([]domain.TimesheetEntry(nil), base...)

		base, holiday := classifyHoliday(day, base, src.Holidays)
		if !holiday {
			base = ApplyShift(day, base, shiftFor(day, src.Shifts))
		}
		base = MergeAttendance(day, base, src.Attendance)

		if len(base) == 0 {
			base = []domain.TimesheetEntry{{WorkDate: day}}
		}
		model[day] = base
	}

	return model
}

// classifyHoliday applies the day's holiday/working category. A feed match
// makes the day holiday-shaped. An already-flagged day converts back to
// working only when at least one feed has positively resolved and none
// lists the day; with no feed data the existing category stands, so a
// fetch failure cannot flip a classified day.
func classifyHoliday(dateKey string, entries []domain.TimesheetEntry, src HolidaySources) ([]domain.TimesheetEntry, bool) {
	flagged := false
	for _, e := range entries {
		if e.IsHoliday {
			flagged = true
			break
		}
	}

	switch {
	case holidayInSources(dateKey, src):
		return markHoliday(dateKey, entries), true
	case flagged && src.Loaded():
		return clearHoliday(entries), false
	case flagged:
		return entries, true
	default:
		return entries, false
	}
}

// markHoliday makes the first entry holiday-shaped: flag set, description
// synthesized, project classifiers cleared. Hours and clock fields are
// preserved; holiday status overrides the category of the day, not
// captured attendance.
func markHoliday(dateKey string, entries []domain.TimesheetEntry) []domain.TimesheetEntry {
	if len(entries) == 0 {
		return []domain.TimesheetEntry{{
			WorkDate:    dateKey,
			IsHoliday:   true,
			Description: HolidayDescription,
		}}
	}

	out := append([]domain.TimesheetEntry(nil), entries...)
	first := &out[0]
	first.IsHoliday = true
	first.Description = HolidayDescription
	first.ProjectID = ""
	first.ProjectType = ""
	return out
}

// clearHoliday converts a day back to working. The synthesized description
// is removed only if the user has not replaced it.
func clearHoliday(entries []domain.TimesheetEntry) []domain.TimesheetEntry {
	out := append([]domain.TimesheetEntry(nil), entries...)
	for i := range out {
		if !out[i].IsHoliday {
			continue
		}
		out[i].IsHoliday = false
		if out[i].Description == HolidayDescription {
			out[i].Description = ""
		}
	}
	return out
}

func shiftFor(dateKey string, shifts []domain.Shift) *domain.Shift {
	for i := range shifts {
		if NormalizeDateKey(shifts[i].ShiftDate) == dateKey {
			return &shifts[i]
		}
	}
	return nil
}
