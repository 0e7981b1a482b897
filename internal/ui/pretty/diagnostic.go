package pretty

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gmlfmt/pkg/format"
	"github.com/yaklabco/gmlfmt/pkg/parser"
)

// FormatFileError formats a failure to format one file. Syntax errors get
// a source excerpt with a caret when src is available.
func (s *Styles) FormatFileError(path string, err error, src []byte) string {
	if syntaxErr, ok := format.AsSyntaxError(err); ok {
		return s.FormatSyntaxError(path, syntaxErr, src)
	}

	var validationErr *format.ValidationError
	if errors.As(err, &validationErr) {
		return s.FormatValidationError(path, validationErr)
	}

	return fmt.Sprintf("  %s  %s  %s\n",
		s.FilePath.Render(path),
		s.Error.Render("error"),
		s.Message.Render(err.Error()),
	)
}

// FormatSyntaxError formats a parse error as path:line:col followed by the
// offending source line and a caret under the column.
func (s *Styles) FormatSyntaxError(path string, err *parser.SyntaxError, src []byte) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(path), err.Line, err.Column)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		location,
		s.Error.Render("syntax error"),
		s.Message.Render(err.Message),
	))

	if line, ok := sourceLine(src, err.Line); ok {
		builder.WriteString(s.FormatSourceContext(line, err.Column))
	}

	return builder.String()
}

// FormatValidationError formats an output validation failure. These point
// at a formatter defect rather than a problem in the file.
func (s *Styles) FormatValidationError(path string, err *format.ValidationError) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		s.FilePath.Render(path),
		s.Error.Render("internal error"),
		s.Message.Render(err.Kind.String()+" check failed"),
	))
	for line := range strings.SplitSeq(strings.TrimRight(err.Error(), "\n"), "\n") {
		builder.WriteString("    " + s.Dim.Render(line) + "\n")
	}
	builder.WriteString("    " + s.Hint.Render("The file was left unchanged. Please report this.") + "\n")

	return builder.String()
}

// FormatSourceContext formats the source line with a caret marker. column
// counts runes; the caret is placed by display width and tabs in the line
// are kept so that it stays aligned in a terminal.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		builder.WriteString(indent + caretPadding(line, column) + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// caretPadding returns the whitespace that precedes the rune column of line.
func caretPadding(line string, column int) string {
	var pad strings.Builder
	remaining := column - 1
	for _, r := range line {
		if remaining == 0 {
			break
		}
		remaining--
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	pad.WriteString(strings.Repeat(" ", remaining))
	return pad.String()
}

// sourceLine returns the 1-based line n of src without its terminator.
func sourceLine(src []byte, n int) (string, bool) {
	if len(src) == 0 || n < 1 {
		return "", false
	}
	lines := strings.Split(string(src), "\n")
	if n > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[n-1], "\r"), true
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path, status string) string {
	return s.FilePath.Render(path) + s.Dim.Render(" ("+status+")")
}
