package pretty

import (
	"strings"

	"github.com/yaklabco/gmlfmt/pkg/diff"
)

// FormatDiff renders a unified diff with styled headers and lines.
func (s *Styles) FormatDiff(d *diff.Diff) string {
	if !d.HasChanges() {
		return ""
	}

	var builder strings.Builder
	for line := range strings.SplitSeq(strings.TrimSuffix(d.String(), "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "):
			builder.WriteString(s.DiffHeader.Render(line))
		case strings.HasPrefix(line, "@@"):
			builder.WriteString(s.DiffHunk.Render(line))
		case strings.HasPrefix(line, "+"):
			builder.WriteString(s.DiffAdd.Render(line))
		case strings.HasPrefix(line, "-"):
			builder.WriteString(s.DiffRemove.Render(line))
		default:
			builder.WriteString(s.DiffContext.Render(line))
		}
		builder.WriteString("\n")
	}
	return builder.String()
}
