package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/cora-hours/internal/shift"
	"github.com/Tiliavir/cora-hours/internal/timecalc"
)

var calcShift string

var calcCmd = &cobra.Command{
	Use:   "calc <start> <end>",
	Short: "Compute the hours and extra-hours flag of a time range",
	Example: `  cora calc 08:00 12:30
  cora calc 23:00 01:00 --shift 22:00-06:00`,
	Args: cobra.ExactArgs(2),
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringVar(&calcShift, "shift", "", "Working shift HH:MM-HH:MM (default: the configured one)")
}

func runCalc(cmd *cobra.Command, args []string) error {
	start, end := args[0], args[1]
	if _, ok := shift.ParseTimeOfDay(start); !ok {
		return usageError(fmt.Errorf("invalid start time %q (want HH:MM)", start))
	}
	if _, ok := shift.ParseTimeOfDay(end); !ok {
		return usageError(fmt.Errorf("invalid end time %q (want HH:MM)", end))
	}

	s := calcShift
	if s == "" && cfg != nil {
		s = cfg.Session.Shift
	}
	if s != "" {
		if _, ok := shift.ParseShiftRange(s); !ok {
			return usageError(fmt.Errorf("invalid shift %q (want HH:MM-HH:MM)", s))
		}
	}

	h := shift.DurationHours(start, end)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Hours:       %g (%s)\n", h, timecalc.FormatHours(h))
	if s == "" {
		s = "none"
	}
	fmt.Fprintf(out, "Shift:       %s\n", s)
	fmt.Fprintf(out, "Extra hours: %s\n", shift.ClassifyExtraHours(start, end, s))
	return nil
}
