// Package main is the entry point for the jsm CLI.
package main

import (
	"os"

	"github.com/jsmodule/cli/internal/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		cmd.PrintError(os.Stderr, err)
		os.Exit(cmd.ExitCodeFromError(err))
	}
}
