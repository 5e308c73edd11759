// Package render formats entries, calendars and reports for the terminal.
package render

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/Tiliavir/cora-hours/internal/hours"
)

var (
	colorHeader = color.New(color.Bold)
	colorMuted  = color.New(color.FgWhite, color.Faint)
	colorOK     = color.New(color.FgGreen)
	colorWarn   = color.New(color.FgYellow)
	colorExtra  = color.New(color.FgMagenta)
	colorLocked = color.New(color.FgRed)
	colorError  = color.New(color.FgRed, color.Bold)
)

// TermWidth returns the terminal width, or 80 when stdout is not a terminal.
func TermWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// Error formats an error line for stderr.
func Error(s string) string {
	return colorError.Sprint(s)
}

// OK formats a success message.
func OK(s string) string {
	return colorOK.Sprint(s)
}

// Muted formats secondary information.
func Muted(s string) string {
	return colorMuted.Sprint(s)
}

func formatStatus(s string, status hours.DayStatus) string {
	switch status {
	case hours.StatusOK:
		return colorOK.Sprint(s)
	case hours.StatusWarn:
		return colorWarn.Sprint(s)
	default:
		return colorMuted.Sprint(s)
	}
}

// truncate shortens s to max runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
