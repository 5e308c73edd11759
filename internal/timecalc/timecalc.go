package timecalc

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the calendar-date format used by entries and the API.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD", s)
	}
	return t, nil
}

// DateKey normalises a date string as returned by the API ("2026-02-27",
// "2026-02-27T00:00:00", "2026-02-27 00:00:00") to YYYY-MM-DD. Strings that
// do not start with a calendar date are returned unchanged.
func DateKey(s string) string {
	if len(s) < len(DateLayout) {
		return s
	}
	if _, err := time.Parse(DateLayout, s[:len(DateLayout)]); err != nil {
		return s
	}
	return s[:len(DateLayout)]
}

// FormatHours formats fractional hours as "1h 30m", "45m" or "0m".
func FormatHours(h float64) string {
	mins := int64(math.Round(h * 60))
	if mins < 0 {
		mins = 0
	}
	if mins >= 60 {
		return fmt.Sprintf("%dh %dm", mins/60, mins%60)
	}
	return fmt.Sprintf("%dm", mins)
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	// Go's weekday: Sunday=0, Monday=1, …, Saturday=6
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	monday := StartOfDay(t.AddDate(0, 0, -(wd - 1)))
	sunday := EndOfDay(monday.AddDate(0, 0, 6))
	return monday, sunday
}

// MonthRange returns the first and last day of the month containing t.
func MonthRange(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := EndOfDay(first.AddDate(0, 1, -1))
	return first, last
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59 of the same day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// InRange reports whether the YYYY-MM-DD date falls on a day in [from, to].
func InRange(date string, from, to time.Time) bool {
	d, err := time.ParseInLocation(DateLayout, DateKey(date), from.Location())
	if err != nil {
		return false
	}
	return !d.Before(StartOfDay(from)) && !d.After(to)
}
