package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/Tiliavir/cora-hours/internal/model"
	"github.com/Tiliavir/cora-hours/internal/shift"
	"github.com/Tiliavir/cora-hours/internal/timecalc"
)

// Entries prints entries grouped by date, one line each. Descriptions are cut
// to fit width columns.
func Entries(w io.Writer, entries []model.Entry, width int) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}

	var currentDay string
	var dayTotal float64
	flush := func() {
		if currentDay != "" {
			fmt.Fprintf(w, "%s\n", Muted(fmt.Sprintf("  total %s", timecalc.FormatHours(dayTotal))))
		}
	}
	for _, e := range entries {
		day := e.DateKey()
		if day != currentDay {
			flush()
			fmt.Fprintln(w, colorHeader.Sprint(day))
			currentDay = day
			dayTotal = 0
		}
		dayTotal += e.Hours
		fmt.Fprintln(w, EntryLine(e, width))
	}
	flush()
}

// EntryLine formats a single entry.
func EntryLine(e model.Entry, width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s-%s  #%-5d %-8s", e.Start, e.End, e.ID, timecalc.FormatHours(e.Hours))
	for _, field := range []string{e.Client, e.Task, e.Module} {
		if field != "" {
			b.WriteString("  " + field)
		}
	}
	line := b.String()

	var tags []string
	if e.ExtraHours == string(shift.ExtraYes) {
		tags = append(tags, colorExtra.Sprint("[extra]"))
	}
	if e.Locked {
		tags = append(tags, colorLocked.Sprint("[locked]"))
	}

	if e.Description != "" {
		room := width - len([]rune(line)) - 4
		if room > 8 {
			line += "  " + Muted(truncate(e.Description, room))
		}
	}
	if len(tags) > 0 {
		line += " " + strings.Join(tags, " ")
	}
	return line
}
