package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/cora-hours/internal/hours"
	"github.com/Tiliavir/cora-hours/internal/render"
	"github.com/Tiliavir/cora-hours/internal/timecalc"
)

var (
	logDate          string
	logStart         string
	logEnd           string
	logClient        string
	logTask          string
	logModule        string
	logClientCase    string
	logInternalCase  string
	logEscalatedCase string
	logBillable      float64
	logDescription   string
	logEdit          int64
	logDryRun        bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Register a new entry or edit an existing one",
	Long: `Register hours for a time range. The range is checked against your other
entries of the same day and rejected if it overlaps one of them; entries that
merely touch (10:00-11:00 and 11:00-12:00) are fine. Use --edit <id> to change
an existing entry.`,
	Example: `  cora log --start 08:00 --end 12:30 --client ACME --task Soporte
  cora log --date 2024-01-10 --start 14:00 --end 15:00 --edit 42
  cora log --start 18:00 --end 20:00 --dry-run`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func init() {
	f := logCmd.Flags()
	f.StringVar(&logDate, "date", "", "Date (YYYY-MM-DD, default today)")
	f.StringVar(&logStart, "start", "", "Start time (HH:MM)")
	f.StringVar(&logEnd, "end", "", "End time (HH:MM)")
	f.StringVar(&logClient, "client", "", "Client")
	f.StringVar(&logTask, "task", "", "Task type")
	f.StringVar(&logModule, "module", "", "Module (default: first configured module)")
	f.StringVar(&logClientCase, "client-case", "", "Client case number")
	f.StringVar(&logInternalCase, "internal-case", "", "Internal case number")
	f.StringVar(&logEscalatedCase, "sap-case", "", "Case escalated to SAP")
	f.Float64Var(&logBillable, "billable", 0, "Billable hours (default: the worked hours)")
	f.StringVar(&logDescription, "desc", "", "Description")
	f.Int64Var(&logEdit, "edit", 0, "Id of the entry to edit")
	f.BoolVar(&logDryRun, "dry-run", false, "Validate and print the payload without sending it")
	_ = logCmd.MarkFlagRequired("start")
	_ = logCmd.MarkFlagRequired("end")
}

func runLog(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, closeStore, err := newService(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	date := logDate
	if date == "" {
		date = now().Format(timecalc.DateLayout)
	}
	draft := hours.Draft{
		ID:            logEdit,
		Date:          date,
		Start:         logStart,
		End:           logEnd,
		Client:        logClient,
		Task:          logTask,
		Module:        logModule,
		ClientCase:    logClientCase,
		InternalCase:  logInternalCase,
		EscalatedCase: logEscalatedCase,
		BillableHours: logBillable,
		Description:   logDescription,
	}

	p, err := svc.Submit(ctx, draft, logDryRun)
	if err != nil {
		return classify(err)
	}

	out := cmd.OutOrStdout()
	if logDryRun {
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding payload: %w", err)
		}
		fmt.Fprintln(out, render.Muted("Dry run, nothing sent. Payload:"))
		fmt.Fprintln(out, string(data))
		return nil
	}

	verb := "Registered"
	if logEdit != 0 {
		verb = fmt.Sprintf("Updated #%d:", logEdit)
	}
	fmt.Fprintf(out, "%s %s-%s on %s (%s, extra hours: %s)\n",
		render.OK(verb), p.Start, p.End, p.Date, timecalc.FormatHours(p.Hours), p.ExtraHours)
	return nil
}
