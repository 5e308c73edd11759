package cmd

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/cora-hours/internal/config"
	"github.com/Tiliavir/cora-hours/internal/render"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		shown := *cfg
		if shown.API.Token != "" {
			shown.API.Token = "********"
		}
		data, err := toml.Marshal(&shown)
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write an annotated configuration file",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgPath
		if path == "" {
			path = config.DefaultConfigPath()
		}
		if err := config.WriteTemplate(path, configInitForce); err != nil {
			return usageError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", render.OK("Wrote"), path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
