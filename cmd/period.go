package cmd

import (
	"fmt"
	"time"

	"github.com/Tiliavir/cora-hours/internal/timecalc"
)

// now is replaced in tests.
var now = time.Now

// period is an inclusive date range with a display label.
type period struct {
	Label    string
	From, To time.Time
}

// periodFlags are the range selectors shared by list, report and export.
type periodFlags struct {
	date  string
	week  bool
	month string
	from  string
	to    string
	all   bool
}

// resolve picks the range: --date, then --from/--to, then --month, then
// --week, then the fallback.
func (f periodFlags) resolve(fallback string) (period, error) {
	today := now()
	switch {
	case f.all:
		return period{Label: "All entries"}, nil

	case f.date != "":
		d, err := parseLocalDate(f.date)
		if err != nil {
			return period{}, usageError(fmt.Errorf("invalid --date value: %w", err))
		}
		return period{Label: d.Format(timecalc.DateLayout), From: timecalc.StartOfDay(d), To: timecalc.EndOfDay(d)}, nil

	case f.from != "" || f.to != "":
		if f.from == "" {
			return period{}, usageError(fmt.Errorf("--from is required when --to is specified"))
		}
		from, err := parseLocalDate(f.from)
		if err != nil {
			return period{}, usageError(fmt.Errorf("invalid --from value: %w", err))
		}
		to := today
		if f.to != "" {
			if to, err = parseLocalDate(f.to); err != nil {
				return period{}, usageError(fmt.Errorf("invalid --to value: %w", err))
			}
		}
		if to.Before(from) {
			return period{}, usageError(fmt.Errorf("--to must not be before --from"))
		}
		return period{
			Label: fmt.Sprintf("%s to %s", from.Format(timecalc.DateLayout), to.Format(timecalc.DateLayout)),
			From:  timecalc.StartOfDay(from),
			To:    timecalc.EndOfDay(to),
		}, nil

	case f.month != "":
		m, err := parseMonth(f.month)
		if err != nil {
			return period{}, usageError(err)
		}
		return monthPeriod(m), nil

	case f.week:
		return weekPeriod(today), nil
	}

	switch fallback {
	case "week":
		return weekPeriod(today), nil
	case "month":
		return monthPeriod(today), nil
	default:
		return period{Label: today.Format(timecalc.DateLayout), From: timecalc.StartOfDay(today), To: timecalc.EndOfDay(today)}, nil
	}
}

// IsAll reports whether the period is unbounded.
func (p period) IsAll() bool {
	return p.From.IsZero() && p.To.IsZero()
}

func weekPeriod(t time.Time) period {
	from, to := timecalc.WeekRange(t)
	return period{Label: "Week " + timecalc.ISOWeekLabel(t), From: from, To: to}
}

func monthPeriod(t time.Time) period {
	from, to := timecalc.MonthRange(t)
	return period{Label: from.Format("January 2006"), From: from, To: to}
}

func parseLocalDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(timecalc.DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD", s)
	}
	return t, nil
}

// parseMonth parses YYYY-MM in local time.
func parseMonth(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("month %q must be YYYY-MM", s)
	}
	return t, nil
}
