// Package config defines core configuration types for gmlfmt.
// These types are pure data structures; loading and merging them from files
// and the environment lives in internal/configloader.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidOptions is returned by Validate for out-of-range settings.
var ErrInvalidOptions = errors.New("invalid format options")

// BraceStyle selects where opening braces are placed.
type BraceStyle string

const (
	BraceStyleSameLine BraceStyle = "same-line"
	BraceStyleNewLine  BraceStyle = "new-line"
)

// IsValid returns true if the brace style is known.
func (s BraceStyle) IsValid() bool {
	switch s {
	case BraceStyleSameLine, BraceStyleNewLine:
		return true
	default:
		return false
	}
}

// FormatOptions controls how source is laid out.
type FormatOptions struct {
	// UseTabs indents with tab characters instead of spaces.
	UseTabs bool `yaml:"use_tabs" json:"use_tabs"`

	// TabWidth is the width of one indentation level in columns.
	TabWidth int `yaml:"tab_width" json:"tab_width"`

	// PrintWidth is the line width the printer tries to stay within.
	PrintWidth int `yaml:"print_width" json:"print_width"`

	// BraceStyle is accepted and validated but not yet consulted: blocks
	// always open on a new line.
	BraceStyle BraceStyle `yaml:"brace_style" json:"brace_style"`

	// ValidateOutput re-parses the output and checks that the tree and
	// every comment survived formatting.
	ValidateOutput bool `yaml:"validate_output" json:"validate_output"`

	// RemoveSyntaxExtensions is reserved and has no effect.
	RemoveSyntaxExtensions bool `yaml:"remove_syntax_extensions" json:"remove_syntax_extensions"`

	// DebugInfo attaches tree and document dumps plus timings to results.
	DebugInfo bool `yaml:"-" json:"-"`
}

// DefaultFormatOptions returns the default layout settings.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		UseTabs:        true,
		TabWidth:       4,
		PrintWidth:     80,
		BraceStyle:     BraceStyleNewLine,
		ValidateOutput: true,
	}
}

// Validate checks that the options are usable.
func (o FormatOptions) Validate() error {
	var errs []error
	if o.TabWidth <= 0 {
		errs = append(errs, fmt.Errorf("%w: tab_width must be positive, got %d", ErrInvalidOptions, o.TabWidth))
	}
	if o.PrintWidth <= 0 {
		errs = append(errs, fmt.Errorf("%w: print_width must be positive, got %d", ErrInvalidOptions, o.PrintWidth))
	}
	if o.BraceStyle != "" && !o.BraceStyle.IsValid() {
		errs = append(errs, fmt.Errorf("%w: unknown brace_style %q", ErrInvalidOptions, o.BraceStyle))
	}
	return errors.Join(errs...)
}

// BackupsConfig controls backup behavior when writing files in place.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar", "none"
}

// OutputFormat specifies the output format for reports.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatSARIF, FormatDiff, FormatSummary:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure for gmlfmt.
type Config struct {
	// Format holds the layout settings.
	Format FormatOptions `yaml:"format"`

	// Extensions lists the file extensions treated as GML, with the dot.
	Extensions []string `yaml:"extensions"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore"`

	// Backups configures backup behavior when writing files.
	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Write rewrites files in place.
	Write bool `yaml:"-"`

	// Check only reports files whose formatting would change.
	Check bool `yaml:"-"`

	// Output specifies the report format.
	Output OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Markdown also formats gml code blocks inside Markdown files.
	Markdown bool `yaml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Format:     DefaultFormatOptions(),
		Extensions: []string{".gml"},
		Ignore:     nil,
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		Output: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}
