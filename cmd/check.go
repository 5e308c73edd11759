package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/cora-hours/internal/hours"
	"github.com/Tiliavir/cora-hours/internal/render"
	"github.com/Tiliavir/cora-hours/internal/timecalc"
)

var (
	checkDate    string
	checkExclude int64
)

var checkCmd = &cobra.Command{
	Use:   "check <start> <end>",
	Short: "Check whether a time range is free",
	Long: `Check whether start-end on a date overlaps one of your entries, without
registering anything. Exits with 1 when it does.`,
	Args: cobra.ExactArgs(2),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkDate, "date", "", "Date (YYYY-MM-DD, default today)")
	checkCmd.Flags().Int64Var(&checkExclude, "exclude", 0, "Ignore this entry id (when planning an edit)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	start, end := args[0], args[1]
	date := checkDate
	if date == "" {
		date = now().Format(timecalc.DateLayout)
	}
	if err := hours.ValidateRange(date, start, end); err != nil {
		return usageError(err)
	}

	ctx := cmd.Context()
	svc, closeStore, err := newService(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if svc.Session().Owner().IsZero() {
		return usageError(hours.ErrNoOwner)
	}
	existing, found, err := svc.Conflict(ctx, date, start, end, checkExclude)
	if err != nil {
		return classify(err)
	}
	if found {
		return usageError(&hours.ConflictError{Existing: existing})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s-%s on %s is free\n", render.OK("OK"), start, end, timecalc.DateKey(date))
	return nil
}
