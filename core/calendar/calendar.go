// Package calendar builds the day axis of the attendance grid.
package calendar

import (
	"time"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"
)

const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
)

// Day returns the calendar day of t as midnight UTC, dropping time of day and zone.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day, each read in its own zone.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SameMonth reports whether a and b fall in the same month of the same year.
func SameMonth(a, b time.Time) bool {
	ay, am, _ := a.Date()
	by, bm, _ := b.Date()
	return ay == by && am == bm
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// MonthDays returns every calendar day of ref's month, ascending.
func MonthDays(ref time.Time) []time.Time {
	day := Day(ref)
	start := now.With(day).BeginningOfMonth()
	end := now.With(day).EndOfMonth()

	days := make([]time.Time, 0, 31)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// SchoolDays returns the weekdays (Monday to Friday) of ref's month, ascending.
// No holiday calendar is applied.
func SchoolDays(ref time.Time) []time.Time {
	days := MonthDays(ref)
	school := make([]time.Time, 0, len(days))
	for _, d := range days {
		if !IsWeekend(d) {
			school = append(school, d)
		}
	}
	return school
}

// ParseDay parses a YYYY-MM-DD date, also accepting RFC 3339 timestamps.
func ParseDay(s string) (time.Time, error) {
	if t, err := time.Parse(DayLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseMonth parses a YYYY-MM month into its first day.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return time.Time{}, errors.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return t, nil
}
