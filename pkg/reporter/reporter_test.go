package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gmlfmt/pkg/diff"
	"github.com/yaklabco/gmlfmt/pkg/format"
	"github.com/yaklabco/gmlfmt/pkg/parser"
	"github.com/yaklabco/gmlfmt/pkg/reporter"
	"github.com/yaklabco/gmlfmt/pkg/runner"
)

var workDir = filepath.Join(string(filepath.Separator), "project")

func sampleResult() *runner.Result {
	path := func(name string) string { return filepath.Join(workDir, "scripts", name) }

	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: path("clean.gml"), Result: &format.FileResult{Path: path("clean.gml")}},
			{Path: path("dirty.gml"), Result: &format.FileResult{
				Path:    path("dirty.gml"),
				Changed: true,
				Diff:    diff.Generate(path("dirty.gml"), "x=1;\ny = 2;\n", "x = 1;\ny = 2;\n"),
			}},
			{Path: path("broken.gml"), Error: &parser.SyntaxError{Line: 4, Column: 2, Message: "unexpected end of file"}},
		},
		Stats: runner.Stats{
			FilesDiscovered: 3,
			FilesProcessed:  2,
			FilesChanged:    1,
			FilesErrored:    1,
			SyntaxErrors:    1,
		},
	}
}

func report(t *testing.T, f reporter.Format, mutate func(*reporter.Options)) (string, int) {
	t.Helper()

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.ErrorWriter = &buf
	opts.Format = f
	opts.Color = "never"
	opts.WorkingDir = workDir
	if mutate != nil {
		mutate(&opts)
	}

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	n, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	return buf.String(), n
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{input: "", want: reporter.FormatText},
		{input: "text", want: reporter.FormatText},
		{input: "TABLE", want: reporter.FormatTable},
		{input: "json", want: reporter.FormatJSON},
		{input: "sarif", want: reporter.FormatSARIF},
		{input: "diff", want: reporter.FormatDiff},
		{input: "summary", want: reporter.FormatSummary},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		got, err := reporter.ParseFormat(tt.input)
		if tt.wantErr {
			require.ErrorContains(t, err, "valid formats: text, table, json, sarif, diff, summary")
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "xml", Writer: &bytes.Buffer{}})
	require.Error(t, err)
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	out, n := report(t, reporter.FormatText, func(o *reporter.Options) { o.ShowContext = false })
	assert.Equal(t, 2, n)
	assert.Equal(t,
		filepath.Join("scripts", "dirty.gml")+" (not formatted)\n"+
			"  "+filepath.Join("scripts", "broken.gml")+":4:2  syntax error  unexpected end of file\n"+
			"1 file would be reformatted, 1 failed (3 files checked)\n",
		out)

	out, _ = report(t, reporter.FormatText, func(o *reporter.Options) { o.ShowUnchanged = true })
	assert.Contains(t, out, filepath.Join("scripts", "clean.gml")+" (unchanged)")
}

func TestTextReporter_NoFiles(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})
	n, err := rep.Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, "No files to format.\n", buf.String())
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	out, n := report(t, reporter.FormatJSON, nil)
	assert.Equal(t, 2, n)

	var decoded reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	require.Len(t, decoded.Files, 3)
	assert.Equal(t, "unchanged", decoded.Files[0].Status)
	assert.True(t, decoded.Files[1].Changed)
	assert.Contains(t, decoded.Files[1].Diff, "+x = 1;")
	assert.Equal(t, &reporter.JSONError{Kind: "syntax", Message: "unexpected end of file", Line: 4, Column: 2}, decoded.Files[2].Error)
	assert.Equal(t, reporter.JSONSummary{
		FilesChecked: 3,
		FilesChanged: 1,
		FilesErrored: 1,
		SyntaxErrors: 1,
	}, decoded.Summary)

	compact, _ := report(t, reporter.FormatJSON, func(o *reporter.Options) { o.Compact = true })
	assert.Equal(t, 1, strings.Count(compact, "\n"))
}

func TestJSONReporter_ErrorKinds(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})
	_, err := rep.Report(context.Background(), &runner.Result{Files: []runner.FileOutcome{
		{Path: "a.gml", Error: &format.IOError{Op: "read", Path: "a.gml", Err: errors.New("denied")}},
		{Path: "b.gml", Error: &format.ValidationError{Kind: format.ValidationTree}},
	}})
	require.NoError(t, err)

	var decoded reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "io", decoded.Files[0].Error.Kind)
	assert.Equal(t, "validation", decoded.Files[1].Error.Kind)
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	out, n := report(t, reporter.FormatDiff, nil)
	assert.Equal(t, 2, n)

	rel := filepath.ToSlash(filepath.Join("scripts", "dirty.gml"))
	assert.Contains(t, out, "diff --git a/"+rel+" b/"+rel+"\n--- a/"+rel+"\n+++ b/"+rel+"\n@@ -1,2 +1,2 @@\n-x=1;\n+x = 1;\n y = 2;\n")
	assert.Contains(t, out, "syntax error")
	assert.Contains(t, out, "1 file changed, 1 insertion(+), 1 deletion(-)")
}

func TestSARIFReporter(t *testing.T) {
	t.Parallel()

	out, n := report(t, reporter.FormatSARIF, func(o *reporter.Options) { o.ToolVersion = "1.2.3" })
	assert.Equal(t, 2, n)

	var decoded reporter.SARIFOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Runs, 1)

	run := decoded.Runs[0]
	assert.Equal(t, "gmlfmt", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)
	require.Len(t, run.Results, 2)

	unformatted := run.Results[0]
	assert.Equal(t, "unformatted", unformatted.RuleID)
	assert.Equal(t, "scripts/dirty.gml", unformatted.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	require.Len(t, unformatted.Fixes, 1)
	replacement := unformatted.Fixes[0].ArtifactChanges[0].Replacements[0]
	assert.Equal(t, reporter.SARIFRegion{StartLine: 1, EndLine: 2}, replacement.DeletedRegion)
	assert.Equal(t, "x = 1;\ny = 2;\n", replacement.InsertedContent.Text)

	syntax := run.Results[1]
	assert.Equal(t, "syntax-error", syntax.RuleID)
	assert.Equal(t, reporter.SARIFRegion{StartLine: 4, StartColumn: 2}, syntax.Locations[0].PhysicalLocation.Region)
}

func TestTableReporter(t *testing.T) {
	t.Parallel()

	out, n := report(t, reporter.FormatTable, nil)
	assert.Equal(t, 2, n)
	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, "not formatted")
	assert.Contains(t, out, "4:2")
	assert.NotContains(t, out, "clean.gml")
	assert.Contains(t, out, "1 file would be reformatted, 1 failed")
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	out, n := report(t, reporter.FormatSummary, nil)
	assert.Equal(t, 2, n)
	assert.Contains(t, out, "Files checked:     3")
	assert.Contains(t, out, "Formatting failed")
}
