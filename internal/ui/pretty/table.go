package pretty

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gmlfmt/pkg/format"
	"github.com/yaklabco/gmlfmt/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 4 // FILE, STATUS, LOC, DETAIL
	minFileWidth     = 20
	minStatusWidth   = 12
	minLocWidth      = 6
	minDetailWidth   = 30
	heavySeparator   = "="
	defaultTermWidth = 100
)

// RowKind classifies a table row for colouring.
type RowKind int

const (
	RowOK RowKind = iota
	RowChanged
	RowFailed
)

// TableRow represents a single file in the status table.
type TableRow struct {
	File     string
	Status   string
	Location string
	Detail   string
	Kind     RowKind
}

// TableFormatter formats run outcomes as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// FormatTable formats runner results as a styled table. Unchanged files
// are listed only when all is set.
func (t *TableFormatter) FormatTable(result *runner.Result, all bool) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(result.Files))
	for _, file := range result.Files {
		row := OutcomeToTableRow(file)
		if row.Kind == RowOK && !all {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	return builder.String()
}

// OutcomeToTableRow describes one file outcome as a table row.
func OutcomeToTableRow(file runner.FileOutcome) TableRow {
	row := TableRow{File: file.Path}

	if file.Error != nil {
		row.Kind = RowFailed
		if syntaxErr, ok := format.AsSyntaxError(file.Error); ok {
			row.Status = "syntax error"
			row.Location = fmt.Sprintf("%d:%d", syntaxErr.Line, syntaxErr.Column)
			row.Detail = syntaxErr.Message
			return row
		}
		var validationErr *format.ValidationError
		if errors.As(file.Error, &validationErr) {
			row.Status = "invalid output"
			row.Detail = validationErr.Kind.String() + " check failed"
			return row
		}
		row.Status = "error"
		row.Detail = file.Error.Error()
		return row
	}

	if file.Result == nil {
		row.Status = "unchanged"
		return row
	}

	row.Status = file.Result.Summary()
	if file.Result.Changed {
		row.Kind = RowChanged
	}
	if file.Result.Diff != nil {
		row.Detail = fmt.Sprintf("+%d -%d", file.Result.Diff.Additions, file.Result.Diff.Deletions)
	}
	return row
}

type columnWidths struct {
	file   int
	status int
	loc    int
	detail int
}

// calculateColumnWidths determines optimal column widths based on content.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		file:   minFileWidth,
		status: minStatusWidth,
		loc:    minLocWidth,
		detail: minDetailWidth,
	}

	for _, row := range rows {
		widths.file = max(widths.file, lipgloss.Width(row.File))
		widths.status = max(widths.status, lipgloss.Width(row.Status))
		widths.loc = max(widths.loc, lipgloss.Width(row.Location))
		widths.detail = max(widths.detail, lipgloss.Width(row.Detail))
	}

	// Shrink the detail column first, then the file column.
	if total := t.calculateTotalWidth(widths); total > t.termWidth {
		widths.detail = max(minDetailWidth, widths.detail-(total-t.termWidth))
		if total = t.calculateTotalWidth(widths); total > t.termWidth {
			widths.file = max(minFileWidth, widths.file-(total-t.termWidth))
		}
	}

	return widths
}

// calculateTotalWidth calculates the total table width from column widths.
func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.file + widths.status + widths.loc + widths.detail + tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s ",
		widths.file, "FILE",
		widths.status, "STATUS",
		widths.loc, "LOC",
		widths.detail, "DETAIL",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, t.calculateTotalWidth(widths)))
}

// formatRow formats a single table row coloured by its kind.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := fmt.Sprintf(" %-*s  %-*s  %-*s  %s",
		widths.file, truncateFilePath(row.File, widths.file),
		widths.status, row.Status,
		widths.loc, row.Location,
		truncateString(row.Detail, widths.detail),
	)

	switch row.Kind {
	case RowFailed:
		return t.styles.TableFailedRow.Render(content)
	case RowChanged:
		return t.styles.TableChangedRow.Render(content)
	default:
		return t.styles.TableCleanRow.Render(content)
	}
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
