package reporter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/gmlfmt/pkg/diff"
	"github.com/yaklabco/gmlfmt/pkg/format"
	"github.com/yaklabco/gmlfmt/pkg/runner"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// Result identifiers reported in SARIF output.
const (
	ruleUnformatted   = "unformatted"
	ruleSyntaxError   = "syntax-error"
	ruleInvalidOutput = "invalid-output"
	ruleIOError       = "io-error"
)

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes one kind of result.
type SARIFRule struct {
	ID               string               `json:"id"`
	ShortDescription SARIFMultiformatText `json:"shortDescription"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single finding.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
	Fixes     []SARIFFix      `json:"fixes,omitempty"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
}

// SARIFFix represents a proposed fix.
type SARIFFix struct {
	Description     SARIFMessage          `json:"description"`
	ArtifactChanges []SARIFArtifactChange `json:"artifactChanges"`
}

// SARIFArtifactChange describes changes to a file.
type SARIFArtifactChange struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Replacements     []SARIFReplacement    `json:"replacements"`
}

// SARIFReplacement describes a text replacement.
type SARIFReplacement struct {
	DeletedRegion   SARIFRegion           `json:"deletedRegion"`
	InsertedContent *SARIFInsertedContent `json:"insertedContent,omitempty"`
}

// SARIFInsertedContent contains the replacement text.
type SARIFInsertedContent struct {
	Text string `json:"text"`
}

var sarifRules = []SARIFRule{
	{ID: ruleUnformatted, ShortDescription: SARIFMultiformatText{Text: "File is not formatted"}, DefaultConfig: &SARIFRuleConfig{Level: "warning"}},
	{ID: ruleSyntaxError, ShortDescription: SARIFMultiformatText{Text: "File does not parse"}, DefaultConfig: &SARIFRuleConfig{Level: "error"}},
	{ID: ruleInvalidOutput, ShortDescription: SARIFMultiformatText{Text: "Formatted output failed validation"}, DefaultConfig: &SARIFRuleConfig{Level: "error"}},
	{ID: ruleIOError, ShortDescription: SARIFMultiformatText{Text: "File could not be read or written"}, DefaultConfig: &SARIFRuleConfig{Level: "error"}},
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts Options
	out  io.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		out:  opts.Writer,
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.out)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return attention(result), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	version := r.opts.ToolVersion
	if version == "" {
		version = "dev"
	}

	output := &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs: []SARIFRun{{
			Tool: SARIFTool{
				Driver: SARIFDriver{
					Name:           "gmlfmt",
					Version:        version,
					InformationURI: "https://github.com/yaklabco/gmlfmt",
					Rules:          sarifRules,
				},
			},
			Results: make([]SARIFResult, 0),
		}},
	}

	if result == nil {
		return output
	}

	for _, file := range result.Files {
		uri := strings.ReplaceAll(displayPath(file.Path, r.opts.WorkingDir), "\\", "/")

		var res SARIFResult
		switch {
		case file.Error != nil:
			res = errorResult(uri, file.Error)
		case file.Result != nil && file.Result.Changed:
			res = unformattedResult(uri, file.Result.Diff)
		default:
			continue
		}
		output.Runs[0].Results = append(output.Runs[0].Results, res)
	}

	return output
}

func location(uri string, region SARIFRegion) []SARIFLocation {
	return []SARIFLocation{{
		PhysicalLocation: SARIFPhysicalLocation{
			ArtifactLocation: SARIFArtifactLocation{URI: uri},
			Region:           region,
		},
	}}
}

func errorResult(uri string, err error) SARIFResult {
	if syntaxErr, ok := format.AsSyntaxError(err); ok {
		return SARIFResult{
			RuleID:    ruleSyntaxError,
			Level:     "error",
			Message:   SARIFMessage{Text: syntaxErr.Message},
			Locations: location(uri, SARIFRegion{StartLine: syntaxErr.Line, StartColumn: syntaxErr.Column}),
		}
	}

	rule := ruleIOError
	var validationErr *format.ValidationError
	if errors.As(err, &validationErr) {
		rule = ruleInvalidOutput
	}
	return SARIFResult{
		RuleID:    rule,
		Level:     "error",
		Message:   SARIFMessage{Text: err.Error()},
		Locations: location(uri, SARIFRegion{StartLine: 1}),
	}
}

// unformattedResult points at the first changed hunk and proposes every
// hunk that replaces existing lines as a fix.
func unformattedResult(uri string, d *diff.Diff) SARIFResult {
	res := SARIFResult{
		RuleID:    ruleUnformatted,
		Level:     "warning",
		Message:   SARIFMessage{Text: "File is not formatted"},
		Locations: location(uri, SARIFRegion{StartLine: 1}),
	}
	if !d.HasChanges() {
		return res
	}

	first := d.Hunks[0]
	res.Locations = location(uri, SARIFRegion{StartLine: max(1, first.OriginalStart)})

	change := SARIFArtifactChange{ArtifactLocation: SARIFArtifactLocation{URI: uri}}
	for _, hunk := range d.Hunks {
		if hunk.OriginalCount == 0 {
			continue
		}
		var inserted strings.Builder
		for _, line := range hunk.Lines {
			if line.Kind != diff.LineRemove {
				inserted.WriteString(line.Content)
				inserted.WriteByte('\n')
			}
		}
		change.Replacements = append(change.Replacements, SARIFReplacement{
			DeletedRegion: SARIFRegion{
				StartLine: hunk.OriginalStart,
				EndLine:   hunk.OriginalStart + hunk.OriginalCount - 1,
			},
			InsertedContent: &SARIFInsertedContent{Text: inserted.String()},
		})
	}
	if len(change.Replacements) > 0 {
		res.Fixes = []SARIFFix{{
			Description:     SARIFMessage{Text: "Apply gmlfmt formatting"},
			ArtifactChanges: []SARIFArtifactChange{change},
		}}
	}
	return res
}
