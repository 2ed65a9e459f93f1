package week

import (
	"fmt"
	"time"
)

// DateFormat is the date-only layout used for week starts and entry dates.
const DateFormat = "2006-01-02"

// StartOfWeek returns the Monday at or before the given time, truncated to
// midnight in the time's location.
func StartOfWeek(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	// time.Weekday: Sunday=0, Monday=1.
	offset := int(d.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return d.AddDate(0, 0, -offset)
}

// Format renders a time as a date-only string.
func Format(t time.Time) string {
	return t.Format(DateFormat)
}

// ParseStart parses a date-only string and verifies it falls on a Monday.
func ParseStart(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse week start: %w", err)
	}
	if t.Weekday() != time.Monday {
		return time.Time{}, fmt.Errorf("week start %s is not a Monday", s)
	}
	return t, nil
}

// Days returns the seven date-only strings of the week beginning at start.
func Days(start time.Time) []string {
	days := make([]string, 7)
	for i := range days {
		days[i] = Format(start.AddDate(0, 0, i))
	}
	return days
}

// Contains reports whether the date-only string falls inside the week
// beginning at start. Malformed dates are treated as outside the week.
func Contains(start time.Time, date string) bool {
	d, err := time.Parse(DateFormat, date)
	if err != nil {
		return false
	}
	end := start.AddDate(0, 0, 7)
	return !d.Before(start) && d.Before(end)
}

// Next returns the start of the week after the given week start.
func Next(start time.Time) time.Time {
	return start.AddDate(0, 0, 7)
}

// Previous returns the start of the week before the given week start.
func Previous(start time.Time) time.Time {
	return start.AddDate(0, 0, -7)
}
