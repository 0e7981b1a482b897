package config

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting uncommented with its default value.
	// If false, generates a minimal commented template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate()
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

format:
  # Indent with tabs instead of spaces
  use_tabs: true

  # Width of one indentation level
  # tab_width: 4

  # Preferred maximum line width
  # print_width: 80

  # Re-parse formatted output and verify nothing changed
  # validate_output: true

# File extensions treated as GML
# extensions:
#   - ".gml"

# File patterns to ignore (glob patterns)
# ignore:
#   - "extensions/**"
#   - "**/*.generated.gml"
`)

	return buf.Bytes()
}

// generateFullTemplate writes every persisted setting with its default.
func generateFullTemplate() ([]byte, error) {
	cfg := NewConfig()
	cfg.Ignore = []string{"extensions/**"}

	out, err := cfg.ToYAMLWithHeader(DefaultTemplateHeader() + `
#
# This template lists every setting with its default value.
# brace_style and remove_syntax_extensions are reserved for future use.`)
	if err != nil {
		return nil, fmt.Errorf("generate template: %w", err)
	}
	return out, nil
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON() ([]byte, error) {
	cfg := NewConfig()

	doc := map[string]any{
		"format":     cfg.Format,
		"extensions": cfg.Extensions,
		"ignore":     []string{},
		"backups": map[string]any{
			"enabled": cfg.Backups.Enabled,
			"mode":    cfg.Backups.Mode,
		},
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gmlfmt configuration
# See: https://github.com/yaklabco/gmlfmt`
}
