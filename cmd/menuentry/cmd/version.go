package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beantownbytes/menuentry/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show detailed version information for menuentry.

Displays the current version, commit hash, build date,
and Go/platform information.`,
		Args: cobra.NoArgs,
		RunE: runVersion,
	}
}

// runVersion handles the version command.
func runVersion(cmd *cobra.Command, args []string) error {
	info := version.NewInfo(Version, Commit, Date)
	_, err := fmt.Fprintln(cmd.OutOrStdout(), info.FullString())
	return err
}
