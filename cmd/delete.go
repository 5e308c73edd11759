package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/cora-hours/internal/coraapi"
	"github.com/Tiliavir/cora-hours/internal/hours"
	"github.com/Tiliavir/cora-hours/internal/render"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var lockCmd = &cobra.Command{
	Use:   "lock <id>",
	Short: "Toggle the locked flag of an entry (administrators only)",
	Args:  cobra.ExactArgs(1),
	RunE:  runLock,
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError(fmt.Errorf("invalid entry id %q", s))
	}
	return id, nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	svc, closeStore, err := newService(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := svc.Delete(ctx, id); err != nil {
		return classify(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s entry #%d\n", render.OK("Deleted"), id)
	return nil
}

func runLock(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if !session().IsAdmin() {
		return usageError(fmt.Errorf("locking entries requires an administrator role, not %q", session().Role))
	}

	ctx := cmd.Context()
	client, err := apiClient(ctx)
	if err != nil {
		return err
	}
	if client == nil {
		return usageError(hours.ErrOffline)
	}
	locked, err := client.ToggleLock(ctx, id)
	if coraapi.IsNotFound(err) {
		return usageError(fmt.Errorf("%w: #%d", hours.ErrEntryNotFound, id))
	}
	if err != nil {
		return storageError(err)
	}

	svc, closeStore, err := newService(ctx)
	if err != nil {
		return err
	}
	defer closeStore()
	if _, err := svc.Sync(ctx, hours.SyncOptions{}); err != nil {
		return classify(err)
	}

	state := "unlocked"
	if locked {
		state = "locked"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Entry #%d is now %s\n", id, state)
	return nil
}
