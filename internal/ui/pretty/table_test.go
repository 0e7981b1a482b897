package pretty_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gmlfmt/internal/ui/pretty"
	"github.com/yaklabco/gmlfmt/pkg/diff"
	"github.com/yaklabco/gmlfmt/pkg/format"
	"github.com/yaklabco/gmlfmt/pkg/parser"
	"github.com/yaklabco/gmlfmt/pkg/runner"
)

func sampleResult() *runner.Result {
	return &runner.Result{Files: []runner.FileOutcome{
		{Path: "a.gml", Result: &format.FileResult{Path: "a.gml"}},
		{Path: "b.gml", Result: &format.FileResult{Path: "b.gml", Changed: true, Diff: diff.Generate("b.gml", "x=1;\n", "x = 1;\n")}},
		{Path: "c.gml", Error: &parser.SyntaxError{Line: 2, Column: 7, Message: "unexpected end of file"}},
		{Path: "d.gml", Error: errors.New("permission denied")},
	}}
}

func TestOutcomeToTableRow(t *testing.T) {
	t.Parallel()

	files := sampleResult().Files

	assert.Equal(t, pretty.TableRow{File: "a.gml", Status: "unchanged", Kind: pretty.RowOK}, pretty.OutcomeToTableRow(files[0]))
	assert.Equal(t, pretty.TableRow{File: "b.gml", Status: "not formatted", Detail: "+1 -1", Kind: pretty.RowChanged}, pretty.OutcomeToTableRow(files[1]))
	assert.Equal(t, pretty.TableRow{
		File: "c.gml", Status: "syntax error", Location: "2:7", Detail: "unexpected end of file", Kind: pretty.RowFailed,
	}, pretty.OutcomeToTableRow(files[2]))
	assert.Equal(t, pretty.TableRow{File: "d.gml", Status: "error", Detail: "permission denied", Kind: pretty.RowFailed}, pretty.OutcomeToTableRow(files[3]))
}

func TestFormatTable(t *testing.T) {
	t.Parallel()

	table := pretty.NewTableFormatter(pretty.NewStyles(false), 0)

	got := table.FormatTable(sampleResult(), false)
	assert.Contains(t, got, "FILE")
	assert.Contains(t, got, "STATUS")
	assert.NotContains(t, got, "a.gml")
	assert.Contains(t, got, "b.gml")
	assert.Contains(t, got, "2:7")
	assert.Contains(t, got, "permission denied")

	got = table.FormatTable(sampleResult(), true)
	assert.Contains(t, got, "a.gml")
	assert.Equal(t, 7, strings.Count(got, "\n"))

	assert.Empty(t, table.FormatTable(&runner.Result{}, true))
}

func TestFormatDiff(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	d := diff.Generate("a.gml", "x=1;\n", "x = 1;\n")

	assert.Equal(t, d.String(), styles.FormatDiff(d))
	assert.Empty(t, styles.FormatDiff(nil))
}
