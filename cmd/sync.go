package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/cora-hours/internal/hours"
)

var (
	syncDryRun bool
	syncPrune  bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull entries from the CORA API into the local cache",
	Args:  cobra.NoArgs,
	RunE:  runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Print planned operations without writing")
	syncCmd.Flags().BoolVar(&syncPrune, "prune", false, "Remove cached entries the API no longer returns")
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, closeStore, err := newService(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if !svc.Online() {
		return usageError(hours.ErrOffline)
	}

	out := cmd.OutOrStdout()
	dryTag := ""
	if syncDryRun {
		dryTag = " [dry-run]"
	}
	fmt.Fprintf(out, "Syncing entries%s...\n", dryTag)

	result, err := svc.Sync(ctx, hours.SyncOptions{DryRun: syncDryRun, Prune: syncPrune})
	if err != nil {
		return classify(err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Summary:")
	fmt.Fprintf(out, "  %d imported\n", result.Imported)
	fmt.Fprintf(out, "  %d skipped\n", result.Skipped)
	fmt.Fprintf(out, "  %d updated\n", result.Updated)
	if syncPrune {
		fmt.Fprintf(out, "  %d removed\n", result.Removed)
	}
	if result.Errors > 0 {
		fmt.Fprintf(out, "  %d errors\n", result.Errors)
		return storageError(fmt.Errorf("%d entries could not be synced", result.Errors))
	}
	return nil
}
