package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netxfw/rxparse/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Show the current version of rxparse`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "rxparse %s\n", version.Version)
	},
}
