package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/cora-hours/internal/config"
	"github.com/Tiliavir/cora-hours/internal/hours"
	"github.com/Tiliavir/cora-hours/internal/render"
)

var shiftSave bool

var shiftCmd = &cobra.Command{
	Use:   "shift",
	Short: "Show your working shift and modules as assigned in CORA",
	Args:  cobra.NoArgs,
	RunE:  runShift,
}

func init() {
	shiftCmd.Flags().BoolVar(&shiftSave, "save", false, "Store the assigned shift and modules in the config file")
}

func runShift(cmd *cobra.Command, args []string) error {
	s := session()
	if s.Login == "" {
		return usageError(fmt.Errorf("session.usuario is not configured"))
	}

	ctx := cmd.Context()
	client, err := apiClient(ctx)
	if err != nil {
		return err
	}
	if client == nil {
		return usageError(hours.ErrOffline)
	}

	info, err := client.Shift(ctx, s.Login)
	if err != nil {
		return storageError(err)
	}
	modules, err := client.Modules(ctx, s.Login)
	if err != nil {
		return storageError(err)
	}

	out := cmd.OutOrStdout()
	current := info.Current
	if current == "" {
		current = render.Muted("not assigned")
	}
	fmt.Fprintf(out, "Shift:      %s\n", current)
	if cfg.Session.Shift != "" && cfg.Session.Shift != info.Current {
		fmt.Fprintf(out, "Configured: %s\n", cfg.Session.Shift)
	}
	fmt.Fprintf(out, "Modules:    %v\n", modules)
	if len(info.Options) > 0 {
		fmt.Fprintf(out, "Available:  %v\n", info.Options)
	}

	if !shiftSave {
		return nil
	}
	if info.Current != "" {
		cfg.Session.Shift = info.Current
	}
	cfg.Session.Modules = modules
	path := cfgPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if err := cfg.Validate(); err != nil {
		return usageError(fmt.Errorf("shift from CORA: %w", err))
	}
	if err := cfg.SaveTo(path); err != nil {
		return storageError(err)
	}
	fmt.Fprintf(out, "%s %s\n", render.OK("Saved to"), path)
	return nil
}
