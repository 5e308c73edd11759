package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Tiliavir/cora-hours/internal/hours"
	"github.com/Tiliavir/cora-hours/internal/render"
	"github.com/Tiliavir/cora-hours/internal/shift"
)

var (
	calendarMonth   string
	calendarUser    string
	calendarRefresh bool
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show the attendance calendar of a month",
	Long: `Show a month with the hours registered per day. Days that reach the daily
target are green, days with some hours yellow, empty days grey.`,
	Args: cobra.NoArgs,
	RunE: runCalendar,
}

func init() {
	calendarCmd.Flags().StringVar(&calendarMonth, "month", "", "Month (YYYY-MM, default current)")
	calendarCmd.Flags().StringVar(&calendarUser, "user", "", "Consultant login (default: you)")
	calendarCmd.Flags().BoolVar(&calendarRefresh, "refresh", false, "Sync with the API first")
}

func runCalendar(cmd *cobra.Command, args []string) error {
	month := now()
	if calendarMonth != "" {
		m, err := parseMonth(calendarMonth)
		if err != nil {
			return usageError(err)
		}
		month = m
	}

	ctx := cmd.Context()
	svc, closeStore, err := newService(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if calendarRefresh {
		if _, err := svc.Sync(ctx, hours.SyncOptions{}); err != nil {
			return classify(err)
		}
	}
	entries, err := svc.Entries(ctx)
	if err != nil {
		return classify(err)
	}

	owner := svc.Session().Owner()
	target := svc.Session().Target()
	if calendarUser != "" {
		owner = shift.NewOwner(0, calendarUser, "")
		target = hours.TargetFor(calendarUser, cfg.Calendar.ReducedTargetUsers,
			cfg.Calendar.DailyTargetHours, cfg.Calendar.ReducedTargetHours)
	}
	if owner.IsZero() {
		return usageError(hours.ErrNoOwner)
	}

	totals := hours.DailyTotals(hours.OwnedBy(entries, owner), target)
	render.Calendar(cmd.OutOrStdout(), hours.MonthCalendar(month, totals), target)
	return nil
}
