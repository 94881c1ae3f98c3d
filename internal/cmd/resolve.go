package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsmodule/cli/internal/output"
)

// NewResolveCmd creates the resolve command.
func NewResolveCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "resolve FILE...",
		Short: "Print the load order of scripts and their dependencies",
		Long: `Resolve the given scripts and their transitive dependencies and print
them in load order: every script after all of its dependencies.

Each script appears once, however many times it is depended on. The input
is sorted first, so the same set of files always yields the same order.

Examples:
  # One script per line
  jsm resolve calendar.js

  # As the resolve endpoint would answer
  jsm resolve calendar.js -o json

  # Show who depends on whom
  jsm resolve calendar.js -o tree`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args, format)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "text",
		"Output format: "+strings.Join(output.ValidFormats(), ", "))

	return cmd
}

func runResolve(cmd *cobra.Command, args []string, format string) error {
	f, ok := output.ParseFormat(format)
	if !ok {
		return NewExitError(
			fmt.Errorf("invalid output format %q (valid: %s)", format, strings.Join(output.ValidFormats(), ", ")),
			ExitValidationError,
		)
	}

	svc, err := newService(GetConfig(), true)
	if err != nil {
		return withExitCode(err)
	}

	graph, err := svc.Graph(args)
	if err != nil {
		return withExitCode(err)
	}
	output.Debug("resolved", "roots", len(graph.Roots), "resources", len(graph.Order))

	return output.WriteSequence(graph.Order, output.SequenceOptions{
		Format: f,
		Roots:  graph.Roots,
		Deps:   graph.Deps,
		Writer: cmd.OutOrStdout(),
	})
}
