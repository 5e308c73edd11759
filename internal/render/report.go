package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/Tiliavir/cora-hours/internal/hours"
	"github.com/Tiliavir/cora-hours/internal/shift"
	"github.com/Tiliavir/cora-hours/internal/timecalc"
)

// Report is an hours summary over a date range.
type Report struct {
	Label  string
	From   string
	To     string
	Target float64
	Days   []hours.DayTotal
	Weeks  []hours.WeekTotal
	Total  float64
}

// NewReport aggregates days into weeks and a grand total.
func NewReport(label, from, to string, target float64, days []hours.DayTotal) Report {
	var total float64
	for _, d := range days {
		total += d.Hours
	}
	return Report{
		Label:  label,
		From:   from,
		To:     to,
		Target: target,
		Days:   days,
		Weeks:  hours.WeekTotals(days),
		Total:  shift.RoundHours(total),
	}
}

// ReportMarkdown prints the report as plain text tables.
func ReportMarkdown(w io.Writer, r Report) {
	fmt.Fprintln(w, colorHeader.Sprintf("%s (%s to %s)", r.Label, r.From, r.To))
	fmt.Fprintln(w, "------------------------------------------")
	if len(r.Days) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}
	for _, d := range r.Days {
		line := fmt.Sprintf("%-12s%-10s%3d entries", d.Date, timecalc.FormatHours(d.Hours), d.Entries)
		if d.Extra > 0 {
			line += fmt.Sprintf("  %d extra", d.Extra)
		}
		fmt.Fprintln(w, formatStatus(line, d.Status))
	}
	if len(r.Weeks) > 1 {
		fmt.Fprintln(w, "------------------------------------------")
		for _, wk := range r.Weeks {
			fmt.Fprintf(w, "%-12s%-10s%d/%d days complete\n", wk.Label, timecalc.FormatHours(wk.Hours), wk.Complete, wk.Days)
		}
	}
	fmt.Fprintln(w, "------------------------------------------")
	fmt.Fprintf(w, "%-12s%s\n", "Total", timecalc.FormatHours(r.Total))
}

// ReportCSV prints one row per day.
func ReportCSV(w io.Writer, r Report) {
	fmt.Fprintln(w, "date,hours,entries,extra,status")
	for _, d := range r.Days {
		fmt.Fprintf(w, "%s,%s,%d,%d,%s\n",
			csvEscape(d.Date),
			strconv.FormatFloat(d.Hours, 'f', -1, 64),
			d.Entries,
			d.Extra,
			d.Status,
		)
	}
}

type reportDay struct {
	Date    string  `json:"date"`
	Hours   float64 `json:"hours"`
	Entries int     `json:"entries"`
	Extra   int     `json:"extra"`
	Status  string  `json:"status"`
}

type reportWeek struct {
	Week     string  `json:"week"`
	Hours    float64 `json:"hours"`
	Days     int     `json:"days"`
	Complete int     `json:"complete"`
}

type reportJSON struct {
	Label  string       `json:"label"`
	From   string       `json:"from"`
	To     string       `json:"to"`
	Target float64      `json:"daily_target"`
	Days   []reportDay  `json:"days"`
	Weeks  []reportWeek `json:"weeks"`
	Total  float64      `json:"total_hours"`
}

// ReportJSON prints the report as indented JSON.
func ReportJSON(w io.Writer, r Report) error {
	out := reportJSON{
		Label:  r.Label,
		From:   r.From,
		To:     r.To,
		Target: r.Target,
		Days:   []reportDay{},
		Weeks:  []reportWeek{},
		Total:  r.Total,
	}
	for _, d := range r.Days {
		out.Days = append(out.Days, reportDay{Date: d.Date, Hours: d.Hours, Entries: d.Entries, Extra: d.Extra, Status: string(d.Status)})
	}
	for _, wk := range r.Weeks {
		out.Weeks = append(out.Weeks, reportWeek{Week: wk.Label, Hours: wk.Hours, Days: wk.Days, Complete: wk.Complete})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
