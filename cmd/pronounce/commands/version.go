package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/pronounce/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), version.GetVersionInfo().String())
	},
}
