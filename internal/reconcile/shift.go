package reconcile

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/zama9729/Final-HR-Nov7-sub000/internal/domain"
)

var clockLayouts = []string{"15:04", "15:04:05"}

func parseClockMinutes(value string) (int, bool) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(value)); err == nil {
			return t.Hour()*60 + t.Minute(), true
		}
	}
	return 0, false
}

// ShiftHours computes the scheduled duration of a shift in fractional
// hours. A negative span means the shift crosses midnight and gets 24h
// added, so 22:00-06:00 yields 8. Unparseable times yield 0.
func ShiftHours(shift domain.Shift) float64 {
	start, okStart := parseClockMinutes(shift.StartTime)
	end, okEnd := parseClockMinutes(shift.EndTime)
	if !okStart || !okEnd {
		slog.Debug("unparseable shift time", "start", shift.StartTime, "end", shift.EndTime)
		return 0
	}
	minutes := end - start
	if minutes < 0 {
		minutes += 24 * 60
	}
	return float64(minutes) / 60
}

func shiftDescription(shift domain.Shift) string {
	return fmt.Sprintf("Shift: %s (%s-%s)", shift.ShiftType, shift.StartTime, shift.EndTime)
}

// ApplyShift folds a scheduled shift into a day's entries. It fills hours
// only when the day has no entries or its first entry has zero hours; a
// non-zero user value is never overwritten. The synthesized description is
// appended to any existing one, at most once, so re-running is safe. When
// hours come from elsewhere, only the description is touched.
func ApplyShift(dateKey string, entries []domain.TimesheetEntry, shift *domain.Shift) []domain.TimesheetEntry {
	if shift == nil {
		return entries
	}

	desc := shiftDescription(*shift)

	if len(entries) == 0 {
		return []domain.TimesheetEntry{{
			WorkDate:    dateKey,
			Hours:       ShiftHours(*shift),
			Description: desc,
			Source:      domain.EntrySourceShift,
		}}
	}

	out := append([]domain.TimesheetEntry(nil), entries...)
	first := &out[0]

	if first.Hours == 0 {
		first.Hours = ShiftHours(*shift)
		first.Source = domain.EntrySourceShift
	}
	first.Description = appendShiftDescription(first.Description, desc)

	return out
}

func appendShiftDescription(existing, desc string) string {
	if strings.Contains(existing, desc) {
		return existing
	}
	if existing == "" {
		return desc
	}
	return existing + "; " + desc
}
