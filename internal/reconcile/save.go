package reconcile

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/zama9729/Final-HR-Nov7-sub000/internal/domain"
)

// InvalidEntryError identifies an entry that cannot be saved because no
// valid work_date could be derived for it.
type InvalidEntryError struct {
	Day    string
	Index  int
	Reason string
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("invalid timesheet entry (day %q, position %d): %s", e.Day, e.Index, e.Reason)
}

// SavePayload flattens the per-day model into the flat entry list the
// upstream save call expects. Days flatten in order, entries keep their
// in-day order, and the same model always yields the same payload.
//
// work_date is re-derived per entry: the entry's own value when it
// normalizes, else the day's key. If neither resolves the whole save
// fails before any network call, with an error naming the offending
// entry. Holiday-flagged entries are server-managed and excluded. Hours
// are coerced to a usable number (negative, NaN or Inf become 0);
// everything else passes through verbatim.
func SavePayload(days []string, entries map[string][]domain.TimesheetEntry) ([]domain.TimesheetEntry, error) {
	out := make([]domain.TimesheetEntry, 0, len(days))

	for _, day := range days {
		for i, e := range entries[day] {
			if e.IsHoliday {
				continue
			}

			workDate := NormalizeDateKey(e.WorkDate)
			if workDate == "" {
				workDate = NormalizeDateKey(day)
			}
			if workDate == "" {
				slog.Debug("rejected save entry", "day", day, "position", i, "work_date", e.WorkDate)
				return nil, &InvalidEntryError{Day: day, Index: i, Reason: "work_date cannot be resolved"}
			}

			e.WorkDate = workDate
			if e.Hours < 0 || math.IsNaN(e.Hours) || math.IsInf(e.Hours, 0) {
				e.Hours = 0
			}
			out = append(out, e)
		}
	}

	return out, nil
}
