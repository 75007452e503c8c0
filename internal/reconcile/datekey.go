// Package reconcile merges persisted timesheet entries, attendance punches,
// scheduled shifts and holiday calendars into a canonical per-day entry
// model, and normalizes that model back into a save payload for the
// upstream HR API. Everything in this package is a pure function of its
// inputs; callers re-run the builder whenever a source changes.
package reconcile

import (
	"log/slog"
	"regexp"
	"strings"
	"time"
)

const dateKeyLayout = "2006-01-02"

var dateKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Layouts tried, in order, for date strings that are neither canonical
// keys nor timestamps. First match wins.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
}

// NormalizeDateKey canonicalizes any date representation into a YYYY-MM-DD
// key. Canonical input is returned unchanged, timestamps are truncated at
// the first "T", and anything else goes through layout parsing. On failure
// it returns "" and the caller must treat the value as absent; it never
// substitutes a guessed date. Idempotent.
func NormalizeDateKey(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if dateKeyPattern.MatchString(value) {
		return value
	}
	if i := strings.IndexByte(value, 'T'); i >= 0 {
		value = value[:i]
		if dateKeyPattern.MatchString(value) {
			return value
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(dateKeyLayout)
		}
	}
	slog.Debug("unparseable date value", "value", value)
	return ""
}

// DateKeyFromTime formats t as a date key in its own location.
func DateKeyFromTime(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// IsDateKey reports whether value is already a canonical date key.
func IsDateKey(value string) bool {
	return dateKeyPattern.MatchString(value)
}
