// Package cli provides the Cobra command structure for gmlfmt.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gmlfmt/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// exitCodeAnnotations lists the exit codes shown in the help of commands
// that format files.
var exitCodeAnnotations = map[string]string{ //nolint:gochecknoglobals // read-only help annotation
	annotationExitCodes: `  0   all files formatted
  1   files would be reformatted (check mode)
  2   files failed to parse or to validate
  64  invalid usage
  65  configuration error
  74  file I/O error`,
}

// NewRootCommand creates the root gmlfmt command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gmlfmt",
		Short: "A deterministic formatter for GameMaker Language",
		Long: `gmlfmt formats GameMaker Language (GML) source files into one canonical
layout.

Formatting is deterministic and idempotent: formatting the output again
changes nothing. Every comment is preserved, and the output is re-parsed
and compared with the input before any file is written, so a file is
never replaced with code that means something different.`,
		Version: info.Version,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newFormatCommand(info))
	rootCmd.AddCommand(newCheckCommand(info))
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	installHelp(rootCmd, &color)

	return rootCmd
}
