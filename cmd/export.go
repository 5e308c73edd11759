package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Tiliavir/cora-hours/internal/hours"
	"github.com/Tiliavir/cora-hours/internal/render"
)

var (
	exportPeriod periodFlags
	exportFormat string
	exportMine   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export cached entries to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportFormat, "format", "csv", "Output format: csv, json, yaml, md")
	f.BoolVar(&exportPeriod.week, "week", false, "Export this week (default)")
	f.StringVar(&exportPeriod.month, "month", "", "Export a month (YYYY-MM)")
	f.StringVar(&exportPeriod.from, "from", "", "Start date (YYYY-MM-DD)")
	f.StringVar(&exportPeriod.to, "to", "", "End date (YYYY-MM-DD, default today)")
	f.BoolVar(&exportPeriod.all, "all", false, "Export every cached entry")
	f.BoolVar(&exportMine, "mine", false, "Only your own entries")
}

func runExport(cmd *cobra.Command, args []string) error {
	p, err := exportPeriod.resolve("week")
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	svc, closeStore, err := newService(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	entries, err := svc.Entries(ctx)
	if err != nil {
		return classify(err)
	}
	if exportMine {
		entries = hours.OwnedBy(entries, svc.Session().Owner())
	}
	entries = hours.Filter{From: p.From, To: p.To}.Apply(entries)

	if err := render.Export(cmd.OutOrStdout(), entries, exportFormat); err != nil {
		return usageError(err)
	}
	return nil
}
