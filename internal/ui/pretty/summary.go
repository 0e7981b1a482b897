package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gmlfmt/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "2 files reformatted, 1 failed (5 files checked)".
// write selects the past tense used after files were rewritten.
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, write bool) string {
	checked := s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesDiscovered, plural(stats.FilesDiscovered)))

	if stats.FilesChanged == 0 && stats.FilesErrored == 0 {
		return s.Success.Render("All files formatted") + checked + "\n"
	}

	var parts []string

	if stats.FilesChanged > 0 {
		switch {
		case write:
			parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s reformatted", stats.FilesWritten, plural(stats.FilesWritten))))
		default:
			parts = append(parts, s.Unformatted.Render(fmt.Sprintf("%d %s would be reformatted", stats.FilesChanged, plural(stats.FilesChanged))))
		}
	}

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Unformatted.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + checked + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats, write bool) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")

	if stats.FilesChanged > 0 {
		label := "  Unformatted:       "
		if write {
			label = "  Reformatted:       "
		}
		builder.WriteString(label + s.Unformatted.Render(strconv.Itoa(stats.FilesChanged)) + "\n")
	}

	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:     " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}

	if stats.FilesSkipped > 0 {
		builder.WriteString("  Files skipped:     " +
			s.Unformatted.Render(strconv.Itoa(stats.FilesSkipped)) + "\n")
	}

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Error.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
		if stats.SyntaxErrors > 0 {
			builder.WriteString("    Syntax errors:   " +
				s.Error.Render(strconv.Itoa(stats.SyntaxErrors)) + "\n")
		}
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Formatting failed"))
	case stats.FilesChanged > 0 && !write:
		builder.WriteString(s.Unformatted.Render("Some files are not formatted"))
	default:
		builder.WriteString(s.Success.Render("All files formatted"))
	}
	builder.WriteString("\n")

	return builder.String()
}
