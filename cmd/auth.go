package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/cora-hours/internal/coraapi"
	"github.com/Tiliavir/cora-hours/internal/render"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the stored API token",
}

var authSetTokenCmd = &cobra.Command{
	Use:         "set-token <token>",
	Short:       "Store the bearer token used for the CORA API",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{skipConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := coraapi.DefaultTokenPath()
		if err != nil {
			return storageError(err)
		}
		if err := coraapi.SaveToken(path, args[0]); err != nil {
			return usageError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", render.OK("Token stored in"), path)
		return nil
	},
}

var authClearCmd = &cobra.Command{
	Use:         "clear",
	Short:       "Remove the stored token",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := coraapi.DefaultTokenPath()
		if err != nil {
			return storageError(err)
		}
		if err := coraapi.ClearToken(path); err != nil {
			return storageError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Token removed.")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the API token comes from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg.API.Token != "" {
			fmt.Fprintln(out, "Token: from config or CORA_API_TOKEN")
			return nil
		}
		path, err := coraapi.DefaultTokenPath()
		if err != nil {
			return storageError(err)
		}
		tok, err := coraapi.LoadToken(path)
		if err != nil {
			return storageError(err)
		}
		if tok == nil {
			fmt.Fprintln(out, "Token: none (requests carry only the identity headers)")
			return nil
		}
		fmt.Fprintf(out, "Token: stored in %s\n", path)
		return nil
	},
}

func init() {
	authCmd.AddCommand(authSetTokenCmd)
	authCmd.AddCommand(authClearCmd)
	authCmd.AddCommand(authStatusCmd)
}
