package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gmlfmt/internal/ui/pretty"
	"github.com/yaklabco/gmlfmt/pkg/runner"
)

// TextReporter lists unformatted and failed files as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to format."))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		path := displayPath(file.Path, r.opts.WorkingDir)

		if file.Error != nil {
			var src []byte
			if r.opts.ShowContext {
				src = readSource(file.Path)
			}
			fmt.Fprint(r.bw, r.styles.FormatFileError(path, file.Error, src))
			continue
		}

		if file.Result == nil {
			continue
		}
		if !file.Result.Changed && !file.Result.Skipped && !r.opts.ShowUnchanged {
			continue
		}
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, file.Result.Summary()))
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, r.opts.Write))
	}

	return attention(result), nil
}
