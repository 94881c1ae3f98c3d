package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsmodule/cli/internal/jsmodule"
	"github.com/jsmodule/cli/internal/output"
)

// NewBundleCmd creates the bundle command.
func NewBundleCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "bundle FILE...",
		Short: "Bundle scripts and their dependencies into one file",
		Long: `Resolve the given scripts and concatenate them, in load order, into a
single bundle. Each script is preceded by a banner naming it.

The bundle is written to stdout unless --out is given. Its cache key, the
MD5 digest of the content, is logged.

Examples:
  jsm bundle calendar.js > calendar.bundle.js
  jsm bundle calendar.js menu.js --out site.js`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBundle(cmd, args, outFile)
		},
	}

	cmd.Flags().StringVar(&outFile, "out", "", "Write the bundle to this file instead of stdout")

	return cmd
}

func runBundle(cmd *cobra.Command, args []string, outFile string) error {
	svc, err := newService(GetConfig(), false)
	if err != nil {
		return withExitCode(err)
	}

	var res *jsmodule.Result
	build := func() error {
		var err error
		res, err = svc.Resolve(args)
		return err
	}

	err = output.RunWithSpinner(cmd.Context(), build, output.WithTitle("Bundling..."), output.OnStderr())
	if err != nil {
		return withExitCode(err)
	}

	content, err := svc.Cache().FindContent(res.Key)
	if err != nil {
		return withExitCode(err)
	}
	output.Info("bundle ready", "key", res.Key, "bytes", len(content))

	if outFile == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), content)
		return err
	}

	if err := os.WriteFile(outFile, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing bundle: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), output.FormatCheckmark("Bundle written to "+outFile))
	return nil
}
