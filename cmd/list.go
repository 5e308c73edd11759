package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Tiliavir/cora-hours/internal/hours"
	"github.com/Tiliavir/cora-hours/internal/render"
)

var (
	listPeriod     periodFlags
	listClient     string
	listTask       string
	listConsultant string
	listMine       bool
	listRefresh    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached entries",
	Long: `List entries from the local cache, today's by default. Use --refresh to
sync with the CORA API first.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	f := listCmd.Flags()
	f.StringVar(&listPeriod.date, "date", "", "Show one date (YYYY-MM-DD)")
	f.BoolVar(&listPeriod.week, "week", false, "Show this week's entries")
	f.StringVar(&listPeriod.month, "month", "", "Show a month (YYYY-MM)")
	f.StringVar(&listPeriod.from, "from", "", "Start date (YYYY-MM-DD)")
	f.StringVar(&listPeriod.to, "to", "", "End date (YYYY-MM-DD, default today)")
	f.BoolVar(&listPeriod.all, "all", false, "Show every cached entry")
	f.StringVar(&listClient, "client", "", "Only this client")
	f.StringVar(&listTask, "task", "", "Only this task type")
	f.StringVar(&listConsultant, "consultant", "", "Only this consultant (display name)")
	f.BoolVar(&listMine, "mine", false, "Only your own entries")
	f.BoolVar(&listRefresh, "refresh", false, "Sync with the API before listing")
}

func runList(cmd *cobra.Command, args []string) error {
	p, err := listPeriod.resolve("day")
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	svc, closeStore, err := newService(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if listRefresh {
		if _, err := svc.Sync(ctx, hours.SyncOptions{}); err != nil {
			return classify(err)
		}
	}

	entries, err := svc.Entries(ctx)
	if err != nil {
		return classify(err)
	}
	if listMine {
		entries = hours.OwnedBy(entries, svc.Session().Owner())
	}
	filter := hours.Filter{
		Client:     listClient,
		Task:       listTask,
		Consultant: listConsultant,
		From:       p.From,
		To:         p.To,
	}
	render.Entries(cmd.OutOrStdout(), filter.Apply(entries), render.TermWidth())
	return nil
}
