package dates

import (
	"errors"
	"time"
)

// ErrBadDateFormat is returned when a date string matches none of the
// accepted layouts. It is a user-facing, recoverable error.
var ErrBadDateFormat = errors.New("date format should be YYYY-MM-DD, DD/MM/YYYY or DD-MM-YYYY")

// layouts accepted by ParseDate, tried in order.
var layouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
}

// ParseDate parses a due-date string in one of the three supported
// layouts. The result is a calendar date: midnight UTC.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrBadDateFormat
}

// WeekStart returns the Monday on or before t, at midnight UTC.
// Weeks are ISO-aligned: Monday is the first day.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	// time.Weekday counts Sunday as 0; shift so Monday is 0.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// Format renders a calendar date in the canonical YYYY-MM-DD layout.
func Format(t time.Time) string {
	return t.Format("2006-01-02")
}
