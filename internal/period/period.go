// Package period provides calendar-month bucketing for the ledgers. All
// normalization happens in UTC so the same instant always lands in the same
// month regardless of host timezone.
package period

import (
	"fmt"
	"time"
)

// KeyFormat is the string form of a month key, e.g. "2025-01".
const KeyFormat = "2006-01"

// StartOfMonth returns the first day of t's calendar month at midnight UTC.
func StartOfMonth(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last day of t's calendar month at midnight UTC.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// NextMonth returns the start of the month after t's month.
func NextMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0)
}

// MonthsBetween returns the month starts from start's month through end's
// month, inclusive and ascending. An end before start yields nil.
func MonthsBetween(start, end time.Time) []time.Time {
	from := StartOfMonth(start)
	to := StartOfMonth(end)
	if to.Before(from) {
		return nil
	}

	var months []time.Time
	for m := from; !m.After(to); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return StartOfMonth(a).Equal(StartOfMonth(b))
}

// FormatKey returns the month key for t, e.g. "2025-01".
func FormatKey(t time.Time) string {
	return StartOfMonth(t).Format(KeyFormat)
}

// ParseKey parses a month key like "2025-01" into its month start.
func ParseKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(KeyFormat, key, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	return t, nil
}
