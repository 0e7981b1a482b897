package diff

import (
	"fmt"
	"strings"
)

// Position is a 1-based line and column.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// FirstDifference returns the position of the first byte where a and b
// differ, and false when they are equal. Columns count bytes.
func FirstDifference(a, b string) (Position, bool) {
	if a == b {
		return Position{}, false
	}

	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}

	line := 1 + strings.Count(a[:i], "\n")
	col := i - strings.LastIndexByte(a[:i], '\n')
	return Position{Line: line, Column: col}, true
}

// Marker renders the first differing line of a and b with a caret under the
// first differing column, or "" when they are equal.
func Marker(a, b string) string {
	pos, ok := FirstDifference(a, b)
	if !ok {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "first difference at line %d, column %d\n", pos.Line, pos.Column)
	fmt.Fprintf(&sb, "- %s\n", lineAt(a, pos.Line))
	fmt.Fprintf(&sb, "+ %s\n", lineAt(b, pos.Line))
	fmt.Fprintf(&sb, "  %s^", strings.Repeat(" ", pos.Column-1))
	return sb.String()
}

func lineAt(text string, line int) string {
	lines := strings.Split(text, "\n")
	if line-1 < len(lines) {
		return lines[line-1]
	}
	return ""
}
