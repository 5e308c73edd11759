package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/Tiliavir/cora-hours/internal/hours"
	"github.com/Tiliavir/cora-hours/internal/timecalc"
)

const cellWidth = 7

// Calendar prints a Monday-first month grid with the hours of each day
// colored by status.
func Calendar(w io.Writer, cal hours.Calendar, target float64) {
	title := cal.Month.Format("January 2006")
	fmt.Fprintln(w, colorHeader.Sprint(title))
	for _, d := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		fmt.Fprintf(w, "%-*s", cellWidth, d)
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, strings.Repeat(" ", cal.Offset*cellWidth))
	col := cal.Offset
	for _, day := range cal.Days {
		cell := fmt.Sprintf("%2d", day.Day)
		if day.Hours > 0 {
			cell += fmt.Sprintf(" %.4g", day.Hours)
		}
		fmt.Fprint(w, formatStatus(fmt.Sprintf("%-*s", cellWidth, cell), day.Status))
		col++
		if col == 7 {
			fmt.Fprintln(w)
			col = 0
		}
	}
	if col != 0 {
		fmt.Fprintln(w)
	}

	var ok, warn int
	for _, day := range cal.Days {
		switch day.Status {
		case hours.StatusOK:
			ok++
		case hours.StatusWarn:
			warn++
		}
	}
	fmt.Fprintf(w, "\nTotal %s  (target %s/day)  %s  %s\n",
		timecalc.FormatHours(cal.Total),
		timecalc.FormatHours(target),
		colorOK.Sprintf("%d complete", ok),
		colorWarn.Sprintf("%d incomplete", warn),
	)
}
