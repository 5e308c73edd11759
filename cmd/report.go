package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/cora-hours/internal/hours"
	"github.com/Tiliavir/cora-hours/internal/render"
	"github.com/Tiliavir/cora-hours/internal/timecalc"
)

var (
	reportPeriod periodFlags
	reportFormat string
	reportTeam   bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show daily and weekly hour totals",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	f := reportCmd.Flags()
	f.BoolVar(&reportPeriod.week, "week", false, "Report for this week (default)")
	f.StringVar(&reportPeriod.month, "month", "", "Report for a month (YYYY-MM)")
	f.StringVar(&reportPeriod.from, "from", "", "Start date (YYYY-MM-DD)")
	f.StringVar(&reportPeriod.to, "to", "", "End date (YYYY-MM-DD, default today)")
	f.StringVar(&reportFormat, "format", "md", "Output format: md, csv, json")
	f.BoolVar(&reportTeam, "team", false, "One report per visible consultant")
}

func runReport(cmd *cobra.Command, args []string) error {
	switch reportFormat {
	case "md", "csv", "json":
	default:
		return usageError(fmt.Errorf("unknown format %q (want md, csv or json)", reportFormat))
	}

	p, err := reportPeriod.resolve("week")
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
	entries = hours.Filter{From: p.From, To: p.To}.Apply(entries)

	var groups []hours.OwnerEntries
	if reportTeam {
		groups = hours.GroupByOwner(entries)
	} else {
		owner := svc.Session().Owner()
		if owner.IsZero() {
			return usageError(hours.ErrNoOwner)
		}
		groups = []hours.OwnerEntries{{Owner: owner, Login: owner.Username, Entries: hours.OwnedBy(entries, owner)}}
	}

	out := cmd.OutOrStdout()
	for i, g := range groups {
		target := hours.TargetFor(g.Login, cfg.Calendar.ReducedTargetUsers,
			cfg.Calendar.DailyTargetHours, cfg.Calendar.ReducedTargetHours)
		label := p.Label
		if reportTeam {
			label = fmt.Sprintf("%s, %s", ownerLabel(g), p.Label)
		}
		r := render.NewReport(label, p.From.Format(timecalc.DateLayout), p.To.Format(timecalc.DateLayout),
			target, hours.DailyTotals(g.Entries, target))

		if i > 0 && reportFormat == "md" {
			fmt.Fprintln(out)
		}
		switch reportFormat {
		case "csv":
			render.ReportCSV(out, r)
		case "json":
			if err := render.ReportJSON(out, r); err != nil {
				return err
			}
		default:
			render.ReportMarkdown(out, r)
		}
	}
	return nil
}

func ownerLabel(g hours.OwnerEntries) string {
	if len(g.Entries) > 0 {
		if name := g.Entries[0].Consultant; name != "" {
			return name
		}
	}
	return g.Owner.Ref().String()
}
