package hours

import (
	"sort"
	"time"

	"github.com/Tiliavir/cora-hours/internal/model"
	"github.com/Tiliavir/cora-hours/internal/shift"
	"github.com/Tiliavir/cora-hours/internal/timecalc"
)

// DayStatus is the attendance status of a day against the daily target.
type DayStatus string

const (
	StatusOK   DayStatus = "ok"
	StatusWarn DayStatus = "warn"
	StatusNone DayStatus = "none"
)

// StatusOf classifies a day's hours against target.
func StatusOf(hours, target float64) DayStatus {
	switch {
	case hours >= target:
		return StatusOK
	case hours > 0:
		return StatusWarn
	default:
		return StatusNone
	}
}

// DayTotal aggregates one date.
type DayTotal struct {
	Date    string
	Hours   float64
	Entries int
	Extra   int // entries flagged as extra hours
	Status  DayStatus
}

// Complete reports whether the day reached its target.
func (d DayTotal) Complete() bool {
	return d.Status == StatusOK
}

// DailyTotals sums the stored hours of entries per date, sorted by date.
func DailyTotals(entries []model.Entry, target float64) []DayTotal {
	byDate := map[string]*DayTotal{}
	for _, e := range entries {
		date := e.DateKey()
		if date == "" {
			continue
		}
		d, ok := byDate[date]
		if !ok {
			d = &DayTotal{Date: date}
			byDate[date] = d
		}
		d.Hours += e.Hours
		d.Entries++
		if e.ExtraHours == string(shift.ExtraYes) {
			d.Extra++
		}
	}

	out := make([]DayTotal, 0, len(byDate))
	for _, d := range byDate {
		d.Hours = shift.RoundHours(d.Hours)
		d.Status = StatusOf(d.Hours, target)
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// OwnedBy keeps the entries that belong to owner, in order.
func OwnedBy(entries []model.Entry, owner shift.Owner) []model.Entry {
	var out []model.Entry
	for _, e := range entries {
		if shift.SameOwner(e.Owner(), owner) {
			out = append(out, e)
		}
	}
	return out
}

// OwnerEntries groups the entries of one consultant.
type OwnerEntries struct {
	Owner   shift.Owner
	Login   string
	Entries []model.Entry
}

// GroupByOwner splits entries per consultant, in order of first appearance.
func GroupByOwner(entries []model.Entry) []OwnerEntries {
	var groups []OwnerEntries
	for _, e := range entries {
		owner := e.Owner()
		placed := false
		for i := range groups {
			if shift.SameOwner(groups[i].Owner, owner) {
				groups[i].Entries = append(groups[i].Entries, e)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, OwnerEntries{Owner: owner, Login: owner.Username, Entries: []model.Entry{e}})
		}
	}
	return groups
}

// CalendarDay is one cell of a month calendar.
type CalendarDay struct {
	Day    int
	Date   string
	Hours  float64
	Status DayStatus
}

// Calendar is a Monday-first month grid. Offset is the number of blank cells
// before the first day.
type Calendar struct {
	Month  time.Time
	Offset int
	Days   []CalendarDay
	Total  float64
}

// MonthCalendar lays out the month containing month, filling each day from
// totals. Days without a total have StatusNone.
func MonthCalendar(month time.Time, totals []DayTotal) Calendar {
	first, last := timecalc.MonthRange(month)
	byDate := make(map[string]DayTotal, len(totals))
	for _, t := range totals {
		byDate[t.Date] = t
	}

	cal := Calendar{
		Month:  first,
		Offset: (int(first.Weekday()) + 6) % 7,
	}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		date := d.Format(timecalc.DateLayout)
		day := CalendarDay{Day: d.Day(), Date: date, Status: StatusNone}
		if t, ok := byDate[date]; ok {
			day.Hours = t.Hours
			day.Status = t.Status
			cal.Total += t.Hours
		}
		cal.Days = append(cal.Days, day)
	}
	cal.Total = shift.RoundHours(cal.Total)
	return cal
}

// WeekTotal aggregates the days of one ISO week.
type WeekTotal struct {
	Label    string
	Hours    float64
	Days     int
	Complete int
	Extra    int
}

// WeekTotals groups daily totals by ISO week, in date order.
func WeekTotals(days []DayTotal) []WeekTotal {
	var out []WeekTotal
	index := map[string]int{}
	for _, d := range days {
		t, err := timecalc.ParseDate(d.Date)
		if err != nil {
			continue
		}
		label := timecalc.ISOWeekLabel(t)
		i, ok := index[label]
		if !ok {
			i = len(out)
			index[label] = i
			out = append(out, WeekTotal{Label: label})
		}
		w := &out[i]
		w.Hours += d.Hours
		w.Days++
		w.Extra += d.Extra
		if d.Complete() {
			w.Complete++
		}
	}
	for i := range out {
		out[i].Hours = shift.RoundHours(out[i].Hours)
	}
	return out
}
