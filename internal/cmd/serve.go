package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jsmodule/cli/internal/output"
	"github.com/jsmodule/cli/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	var (
		addr  string
		debug bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve resolve results and bundles over HTTP",
		Long: `Start an HTTP server for page loaders.

Endpoints:
  GET /resolve?file=a.js&file=b.js   {"js": [...]} scripts to load
  GET <bundlePath><key>              bundle content
  GET /healthz                       liveness

In debug mode /resolve lists every script individually. Otherwise it
returns the path of a single cached bundle.

Examples:
  jsm serve --root ./public/js
  jsm serve --addr :9000 --debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig()
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}
			if !cmd.Flags().Changed("debug") {
				debug = cfg.Debug
			}

			svc, err := newService(cfg, debug)
			if err != nil {
				return withExitCode(err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			output.Info("starting server", "root", cfg.Root, "debug", debug, "bundle_path", svc.BundlePath())
			return server.New(addr, server.NewHandler(svc)).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (env: JSM_SERVER_ADDR)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Serve scripts individually instead of bundled (env: JSM_DEBUG)")

	return cmd
}
