package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// ISODate is the layout used for calendar dates on the command line and in
// the holiday dataset
const ISODate = "2006-01-02"

// DateOf returns the calendar date of t as UTC midnight.
// The year, month and day are taken from t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date builds a UTC calendar date
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// IsWeekday returns true if the date is Monday-Friday
func IsWeekday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday >= time.Monday && weekday <= time.Friday
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// MonthBounds returns the first and last day of the month.
// December ends on the 31st; every other month ends the day before the
// first of the following month.
func MonthBounds(year int, month time.Month) (first, last time.Time) {
	first = Date(year, month, 1)
	if month == time.December {
		return first, Date(year, time.December, 31)
	}
	return first, Date(year, month+1, 1).AddDate(0, 0, -1)
}

// Key formats a date as YYYY-MM-DD for use as a map key
func Key(date time.Time) string {
	return date.Format(ISODate)
}

// ParseDate parses a strict ISO-8601 calendar date (YYYY-MM-DD)
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(ISODate, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", dateStr, err)
	}
	return t, nil
}

// Today returns today's date as UTC midnight
func Today() time.Time {
	return DateOf(time.Now())
}
