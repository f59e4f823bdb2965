// Package dateutil normalizes timestamps to UTC calendar days and builds the
// date windows used by habit statistics. Day keys use the YYYY-MM-DD layout,
// so lexicographic and chronological order coincide.
package dateutil

import (
	"time"

	"github.com/fberrez/minihabits/domain"
)

// DayFormat is the ledger key layout.
const DayFormat = "2006-01-02"

var parseLayouts = []string{
	DayFormat,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// DayOf formats a timestamp as a UTC day key.
func DayOf(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// StartOfDay truncates a timestamp to UTC midnight.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay interprets an ISO-8601 date or date-time string as a UTC day.
func ParseDay(value string) (time.Time, error) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return StartOfDay(t), nil
		}
	}
	return time.Time{}, domain.WrapError(domain.ErrCodeInvalid, "invalid date", domain.ErrInvalidDate)
}

// NormalizeDay converts caller-supplied date input to a ledger day key.
func NormalizeDay(value string) (string, error) {
	t, err := ParseDay(value)
	if err != nil {
		return "", err
	}
	return DayOf(t), nil
}

// Windows holds the day keys of the three reporting ranges, each ending today.
type Windows struct {
	Last7Days   []string
	MonthToDate []string
	YearToDate  []string
}

// WindowsAt precomputes the reporting ranges anchored at the given instant.
func WindowsAt(now time.Time) Windows {
	today := StartOfDay(now)
	return Windows{
		Last7Days:   daysFrom(today.AddDate(0, 0, -6), today),
		MonthToDate: daysFrom(time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), today),
		YearToDate:  daysFrom(time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), today),
	}
}

func daysFrom(first, last time.Time) []string {
	var days []string
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, DayOf(d))
	}
	return days
}
