// Package cmd defines command-line interface commands for glustik.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	version string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "glustik",
	Short: "Declarative project scaffolding",
	Long: `glustik builds directory trees and files from a YAML layout.

Layouts name directories, files, and operations; %(name)s style placeholders
are filled from the build context.`,
}

// Execute runs the root CLI command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
	rootCmd.Version = version
}

// newLogger returns the stderr logger handed to builders.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every dispatched layout entry")
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(opsCmd)
}
