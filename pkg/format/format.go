// Package format is the public entry point of the formatter. It runs the
// parse, build, and print stages, then optionally validates the output by
// re-parsing it.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/yaklabco/gmlfmt/pkg/config"
	"github.com/yaklabco/gmlfmt/pkg/doc"
	"github.com/yaklabco/gmlfmt/pkg/docbuilder"
	"github.com/yaklabco/gmlfmt/pkg/gmlast"
	"github.com/yaklabco/gmlfmt/pkg/parser"
	"github.com/yaklabco/gmlfmt/pkg/printer"
)

// Result is the output of a successful Format call.
type Result struct {
	// Output is the formatted source.
	Output string

	// Tree and Doc are dumps of the syntax tree and layout document.
	// They are only set when debug info was requested.
	Tree string
	Doc  string

	// Timings is only set when debug info was requested.
	Timings *Timings
}

// Timings records how long each stage took.
type Timings struct {
	Parse  time.Duration
	Format time.Duration
	Total  time.Duration
}

// String renders the debug sections of the result followed by the output.
func (r *Result) String() string {
	var sb strings.Builder
	if r.Tree != "" {
		fmt.Fprintf(&sb, "--- SYNTAX TREE ---\n\n%s\n\n", r.Tree)
	}
	if r.Doc != "" {
		fmt.Fprintf(&sb, "--- DOC TREE ---\n\n%s\n\n", r.Doc)
	}
	fmt.Fprintf(&sb, "--- PRINTED OUTPUT ---\n%s\n", r.Output)
	if r.Timings != nil {
		fmt.Fprintf(&sb, "\nParse: %s\nFormat: %s\nTotal: %s\n",
			r.Timings.Parse, r.Timings.Format, r.Timings.Total)
	}
	return sb.String()
}

// Format formats GML source. Line endings are normalized to "\n" before
// parsing. It fails with a *parser.SyntaxError when src does not parse and
// with a *ValidationError when validation is enabled and the output does
// not preserve the tree or its comments.
func Format(src string, opts config.FormatOptions) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	src = NormalizeLineEndings(src)

	parseStart := time.Now()
	parsed, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	parseTime := time.Since(parseStart)

	formatStart := time.Now()
	d := docbuilder.Build(parsed)

	printed, err := printer.Print(d, printer.Options{
		Width:    opts.PrintWidth,
		TabWidth: opts.TabWidth,
		UseTabs:  opts.UseTabs,
	})
	if err != nil {
		return nil, fmt.Errorf("print: %w", err)
	}

	if opts.ValidateOutput {
		if err := validate(parsed, printed); err != nil {
			return nil, err
		}
	}

	result := &Result{Output: printed.Output}
	if opts.DebugInfo {
		formatTime := time.Since(formatStart)
		result.Tree = gmlast.Dump(parsed.Root, gmlast.DumpOptions{})
		result.Doc = doc.Dump(d)
		result.Timings = &Timings{
			Parse:  parseTime,
			Format: formatTime,
			Total:  parseTime + formatTime,
		}
	}
	return result, nil
}

// Check reports whether src is already formatted. Sources with "\r\n" or
// "\r" line endings are never considered formatted, so "gmlfmt check" and
// "gmlfmt format --check" report such files until a write converts their
// line endings to "\n".
func Check(src string, opts config.FormatOptions) (bool, error) {
	result, err := Format(src, opts)
	if err != nil {
		return false, err
	}
	return result.Output == src, nil
}

// NormalizeLineEndings converts "\r\n" and lone "\r" to "\n".
func NormalizeLineEndings(src string) string {
	if !strings.Contains(src, "\r") {
		return src
	}
	src = strings.ReplaceAll(src, "\r\n", "\n")
	return strings.ReplaceAll(src, "\r", "\n")
}
