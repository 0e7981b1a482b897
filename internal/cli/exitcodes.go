package cli

import (
	"errors"

	"github.com/yaklabco/gmlfmt/internal/configloader"
	"github.com/yaklabco/gmlfmt/pkg/format"
	"github.com/yaklabco/gmlfmt/pkg/runner"
)

// Exit codes for gmlfmt.
const (
	// ExitSuccess indicates every file was formatted or already canonical.
	ExitSuccess = 0

	// ExitUnformatted indicates a check run found files that would change.
	ExitUnformatted = 1

	// ExitFormatErrors indicates at least one file failed to parse or to
	// validate.
	ExitFormatErrors = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitError carries the process exit code for a failed command. Commands
// return it after the failure has already been reported, so main only
// exits with Code and prints nothing further.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	switch e.Code {
	case ExitUnformatted:
		return "files are not formatted"
	case ExitFormatErrors:
		return "files failed to format"
	}
	return "command failed"
}

// ExitCodeFromResult determines the exit code of a format run. In check
// mode, files that would change yield ExitUnformatted.
func ExitCodeFromResult(result *runner.Result, check bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFailures() {
		if result.Stats.SyntaxErrors == 0 && onlyIOFailures(result) {
			return ExitIOError
		}
		return ExitFormatErrors
	}

	if check && result.HasChanges() {
		return ExitUnformatted
	}

	return ExitSuccess
}

func onlyIOFailures(result *runner.Result) bool {
	for _, f := range result.Files {
		if f.Error == nil {
			continue
		}
		var ioErr *format.IOError
		if !errors.As(f.Error, &ioErr) {
			return false
		}
	}
	return true
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitInvalidUsage
	}

	var cfgErr *configloader.ValidationError
	if errors.As(err, &cfgErr) {
		return ExitConfigError
	}

	if format.IsSyntaxError(err) || errors.Is(err, format.ErrValidation) {
		return ExitFormatErrors
	}

	var ioErr *format.IOError
	if errors.As(err, &ioErr) {
		return ExitIOError
	}

	return ExitInternalError
}

// UsageError reports invalid flags or arguments.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }
