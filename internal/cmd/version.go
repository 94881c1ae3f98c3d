package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsmodule/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show jsm version information.

Displays:
  - jsm version, commit, and build date
  - Go version and CUE SDK version`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
			return err
		},
	}
}
