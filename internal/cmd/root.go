package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jsmodule/cli/internal/config"
	"github.com/jsmodule/cli/internal/output"
)

var (
	// Global flags
	configFlag     string
	rootFlag       string
	debugRootFlag  string
	verboseFlag    bool
	timestampsFlag bool
	noExtCheckFlag bool

	// Resolved configuration (loaded during PersistentPreRunE)
	jsmConfig  *config.Config
	configPath config.ResolveConfigPathResult
	loader     *config.Loader
)

// NewRootCmd creates the root command for the jsm CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jsm",
		Short: "JavaScript module resolver and bundler",
		Long: `jsm resolves JavaScript dependencies declared in descriptor files and
bundles the result into a single script.

Every script x.js may have a descriptor x.dep.js next to it holding a JSON
array of the scripts it depends on, e.g. ["jquery.js", "jquery-ui.js"].`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to config file (env: JSM_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Directory scripts are read from (env: JSM_ROOT)")
	rootCmd.PersistentFlags().StringVar(&debugRootFlag, "debug-root", "", "Directory consulted before --root (env: JSM_DEBUG_ROOT)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")
	rootCmd.PersistentFlags().BoolVar(&noExtCheckFlag, "no-ext-check", false, "Accept resource ids that do not end in .js")

	// Add subcommands
	rootCmd.AddCommand(NewResolveCmd())
	rootCmd.AddCommand(NewBundleCmd())
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command) error {
	pathResult, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: configFlag,
	})
	if err != nil {
		return err
	}

	l := config.NewLoader()
	flags := cmd.Flags()
	if flags.Changed("root") {
		l.SetFlag(config.KeyRoot, rootFlag)
	}
	if flags.Changed("debug-root") {
		l.SetFlag(config.KeyDebugRoot, debugRootFlag)
	}
	if flags.Changed("no-ext-check") {
		l.SetFlag(config.KeyExtensionCheck, !noExtCheckFlag)
	}
	if flags.Changed("timestamps") {
		l.SetFlag(config.KeyLogTimestamps, timestampsFlag)
	}

	cfg, err := l.Load(pathResult.ConfigPath)
	if err != nil {
		return NewExitError(err, ExitValidationError)
	}

	// Resolve timestamps: flag (if explicitly set) > env > config > default (nil = true)
	output.SetupLogging(output.LogConfig{
		Verbose:    verboseFlag,
		Timestamps: cfg.Log.Timestamps,
	})

	output.Debug("initializing CLI",
		"config", pathResult.ConfigPath,
		"config_source", pathResult.Source,
	)
	config.LogResolvedValues(l.Resolved())

	jsmConfig = cfg
	configPath = pathResult
	loader = l
	return nil
}

// GetConfig returns the resolved configuration.
func GetConfig() *config.Config {
	if jsmConfig == nil {
		return config.DefaultConfig()
	}
	return jsmConfig
}

// GetConfigPath returns the resolved config path value.
func GetConfigPath() string {
	if configPath.ConfigPath != "" {
		return configPath.ConfigPath
	}
	return configFlag
}
