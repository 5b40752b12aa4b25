// Package cli provides the Cobra command structure for lc3kit.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/lc3kit/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root lc3kit command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "lc3kit",
		Short: "Formatter and style linter for LC-3 assembly",
		Long: `lc3kit is a formatter and style linter for LC-3 assembly source files.

The formatter rewrites .asm files into a canonical layout with aligned
trailing comments and configurable indentation and spacing. The linter
enforces naming conventions for labels, mnemonics and directives. Both
read their configuration from a project config file discovered upward
from the working directory.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newFmtCommand())
	rootCmd.AddCommand(newLintCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
