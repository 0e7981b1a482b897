// Package main is the entry point for the gmlfmt CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/gmlfmt/internal/cli"
	"github.com/yaklabco/gmlfmt/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.Execute()
	if err == nil {
		return cli.ExitSuccess
	}

	// An ExitError has already been reported by the command.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}

	return cli.ExitCode(err)
}
