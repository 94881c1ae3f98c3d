package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jsmodule/cli/internal/config"
	oerrors "github.com/jsmodule/cli/internal/errors"
	"github.com/jsmodule/cli/internal/output"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Write a configuration file holding every setting at its default.

The file is written to the resolved config path:
  --config flag > JSM_CONFIG env > ~/.jsm/config.yaml

Examples:
  # Initialize configuration
  jsm config init

  # Overwrite existing configuration
  jsm config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false,
		"Overwrite existing configuration")

	return cmd
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	pathResult, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: configFlag,
	})
	if err != nil {
		return NewExitError(fmt.Errorf("could not determine config path: %w", err), ExitGeneralError)
	}
	path, err := config.ExpandPath(pathResult.ConfigPath)
	if err != nil {
		return NewExitError(err, ExitGeneralError)
	}

	exists, err := config.FileExists(path)
	if err != nil {
		return NewExitError(err, ExitGeneralError)
	}
	if exists && !force {
		return NewExitError(&oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite existing configuration.",
		}, ExitValidationError)
	}

	var buf bytes.Buffer
	buf.WriteString("# jsm configuration. Validate with: jsm config vet\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config.DefaultConfig()); err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}

	// Create directories with secure permissions (0700)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return NewExitError(fmt.Errorf("could not create config directory: %w", err), ExitGeneralError)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return NewExitError(fmt.Errorf("could not write config file: %w", err), ExitGeneralError)
	}

	output.Debug("wrote config", "path", path, "source", pathResult.Source)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Configuration initialized at "+path))
	return err
}
