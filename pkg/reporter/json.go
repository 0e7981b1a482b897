package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yaklabco/gmlfmt/pkg/format"
	"github.com/yaklabco/gmlfmt/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path       string     `json:"path"`
	Status     string     `json:"status"`
	Changed    bool       `json:"changed"`
	Written    bool       `json:"written,omitempty"`
	Backup     bool       `json:"backup,omitempty"`
	SkipReason string     `json:"skipReason,omitempty"`
	Diff       string     `json:"diff,omitempty"`
	Error      *JSONError `json:"error,omitempty"`
}

// JSONError describes why a file could not be formatted.
type JSONError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked int `json:"filesChecked"`
	FilesChanged int `json:"filesChanged"`
	FilesWritten int `json:"filesWritten"`
	FilesSkipped int `json:"filesSkipped"`
	FilesErrored int `json:"filesErrored"`
	SyntaxErrors int `json:"syntaxErrors"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return attention(result), nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	output.Summary = JSONSummary{
		FilesChecked: result.Stats.FilesDiscovered,
		FilesChanged: result.Stats.FilesChanged,
		FilesWritten: result.Stats.FilesWritten,
		FilesSkipped: result.Stats.FilesSkipped,
		FilesErrored: result.Stats.FilesErrored,
		SyntaxErrors: result.Stats.SyntaxErrors,
	}

	for _, file := range result.Files {
		entry := JSONFileResult{Path: displayPath(file.Path, r.opts.WorkingDir)}

		switch {
		case file.Error != nil:
			entry.Status = "error"
			entry.Error = jsonError(file.Error)
		case file.Result != nil:
			entry.Status = file.Result.Summary()
			entry.Changed = file.Result.Changed
			entry.Written = file.Result.Written
			entry.Backup = file.Result.BackupCreated
			entry.SkipReason = file.Result.SkipReason
			if file.Result.Diff.HasChanges() {
				entry.Diff = file.Result.Diff.String()
			}
		}

		output.Files = append(output.Files, entry)
	}

	return output
}

func jsonError(err error) *JSONError {
	if syntaxErr, ok := format.AsSyntaxError(err); ok {
		return &JSONError{
			Kind:    "syntax",
			Message: syntaxErr.Message,
			Line:    syntaxErr.Line,
			Column:  syntaxErr.Column,
		}
	}

	var validationErr *format.ValidationError
	if errors.As(err, &validationErr) {
		return &JSONError{Kind: "validation", Message: validationErr.Error()}
	}
	if errors.Is(err, format.ErrIO) {
		return &JSONError{Kind: "io", Message: err.Error()}
	}
	return &JSONError{Kind: "internal", Message: err.Error()}
}
