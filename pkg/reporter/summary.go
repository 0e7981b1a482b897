package reporter

import (
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/gmlfmt/internal/ui/pretty"
	"github.com/yaklabco/gmlfmt/pkg/runner"
)

// SummaryReporter writes only aggregate statistics.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		result = &runner.Result{}
	}
	if _, err := fmt.Fprint(r.out, r.styles.FormatSummary(result.Stats, r.opts.Write)); err != nil {
		return 0, fmt.Errorf("write summary: %w", err)
	}
	return attention(result), nil
}
