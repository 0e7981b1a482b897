// Package pretty renders formatter results for terminals with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles holds the lipgloss styles of every piece of CLI output.
type Styles struct {
	// Error marks syntax and validation failures, Unformatted marks files
	// whose layout would change.
	Error       lipgloss.Style
	Unformatted lipgloss.Style

	// Syntax error diagnostics.
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Message    lipgloss.Style
	Hint       lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table rows are coloured by file outcome.
	TableHeader     lipgloss.Style
	TableFailedRow  lipgloss.Style
	TableChangedRow lipgloss.Style
	TableCleanRow   lipgloss.Style
	TableSeparator  lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// palette is the set of colours and emphasis a Styles is built from.
type palette struct {
	red, yellow, green, cyan, grey, light lipgloss.TerminalColor
	emphasis                              bool
}

//nolint:gochecknoglobals // Read-only palettes.
var (
	ansiPalette = palette{
		red:      lipgloss.Color("9"),
		yellow:   lipgloss.Color("11"),
		green:    lipgloss.Color("10"),
		cyan:     lipgloss.Color("14"),
		grey:     lipgloss.Color("8"),
		light:    lipgloss.Color("7"),
		emphasis: true,
	}
	plainPalette = palette{
		red:    lipgloss.NoColor{},
		yellow: lipgloss.NoColor{},
		green:  lipgloss.NoColor{},
		cyan:   lipgloss.NoColor{},
		grey:   lipgloss.NoColor{},
		light:  lipgloss.NoColor{},
	}
)

// NewStyles returns ANSI colour styles, or plain ones when colorEnabled is
// false.
func NewStyles(colorEnabled bool) *Styles {
	if colorEnabled {
		return newStyles(ansiPalette)
	}
	return newStyles(plainPalette)
}

func newStyles(p palette) *Styles {
	base := lipgloss.NewStyle()
	fg := func(c lipgloss.TerminalColor) lipgloss.Style { return base.Foreground(c) }
	strong := func(c lipgloss.TerminalColor) lipgloss.Style { return fg(c).Bold(p.emphasis) }

	return &Styles{
		Error:       strong(p.red),
		Unformatted: strong(p.yellow),

		FilePath: base.Bold(p.emphasis),
		Location: fg(p.grey),
		Message:  base,
		Hint:     fg(p.green).Italic(p.emphasis),
		// Source lines keep their tabs so caret columns line up.
		SourceLine: fg(p.light).TabWidth(lipgloss.NoTabConversion),
		Caret:      fg(p.red),

		DiffHeader:  base.Bold(p.emphasis),
		DiffHunk:    fg(p.cyan),
		DiffAdd:     fg(p.green),
		DiffRemove:  fg(p.red),
		DiffContext: fg(p.grey),

		SummaryTitle: base.Bold(p.emphasis),
		SummaryValue: base,
		Success:      strong(p.green),
		Failure:      strong(p.red),

		TableHeader:     strong(p.light),
		TableFailedRow:  fg(p.red),
		TableChangedRow: fg(p.yellow),
		TableCleanRow:   fg(p.green),
		TableSeparator:  fg(p.grey),

		Dim:  fg(p.grey),
		Bold: base.Bold(p.emphasis),
	}
}

// IsColorEnabled resolves a --color mode for writer. "always" and "never"
// are absolute; anything else means auto: colour only on a terminal and
// only when NO_COLOR is unset.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
