package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X .../cmd.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfig: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		v := version
		if info, ok := debug.ReadBuildInfo(); ok && v == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cora %s\n", v)
	},
}
