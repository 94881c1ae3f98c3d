package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsmodule/cli/internal/config"
	oerrors "github.com/jsmodule/cli/internal/errors"
	"github.com/jsmodule/cli/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the jsm configuration file against its CUE schema.

Checks performed:
  1. Config file exists at resolved path
  2. Every key is known
  3. Every value has the right type and range

The config path is resolved using precedence:
  --config flag > JSM_CONFIG env > ~/.jsm/config.yaml

Examples:
  # Validate default configuration
  jsm config vet

  # Validate custom config path
  jsm config vet --config /path/to/config.yaml`,
		Args: cobra.NoArgs,
		RunE: runConfigVet,
	}
}

func runConfigVet(cmd *cobra.Command, args []string) error {
	pathResult, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: configFlag,
	})
	if err != nil {
		return NewExitError(fmt.Errorf("could not resolve config path: %w", err), ExitGeneralError)
	}
	path, err := config.ExpandPath(pathResult.ConfigPath)
	if err != nil {
		return NewExitError(err, ExitGeneralError)
	}

	output.Debug("validating config", "path", path, "source", pathResult.Source)

	// Check 1: Config file exists
	exists, err := config.FileExists(path)
	if err != nil {
		return NewExitError(err, ExitGeneralError)
	}
	if !exists {
		return NewExitError(&oerrors.DetailError{
			Type:     "not found",
			Message:  "configuration file not found",
			Location: path,
			Hint:     "Run 'jsm config init' to create default configuration",
		}, ExitNotFound)
	}

	// Checks 2 and 3: schema
	v, err := config.NewValidator()
	if err != nil {
		return err
	}
	if err := v.ValidateFile(path); err != nil {
		return NewExitError(err, ExitValidationError)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Configuration is valid: "+path))
	return err
}
