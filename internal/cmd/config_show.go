package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsmodule/cli/internal/output"
)

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration and where each value came from",
		Long: `Show every configuration value after applying precedence:
  flag > env > config file > default`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if loader == nil {
				return fmt.Errorf("configuration not loaded")
			}

			tbl := output.NewTable("KEY", "VALUE", "SOURCE")
			for _, rv := range loader.Resolved() {
				value := "-"
				if rv.Value != nil {
					value = fmt.Sprint(rv.Value)
				}
				tbl.Row(rv.Key, value, string(rv.Source))
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, "Config file: "+GetConfigPath())
			_, err := fmt.Fprintln(w, tbl.String())
			return err
		},
	}
}
