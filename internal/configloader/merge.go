package configloader

import "github.com/yaklabco/gmlfmt/pkg/config"

// Overrides holds settings given explicitly on the command line. Nil
// fields were not given and leave the configuration alone.
type Overrides struct {
	UseTabs        *bool
	TabWidth       *int
	PrintWidth     *int
	ValidateOutput *bool
	Jobs           *int
	Output         *config.OutputFormat

	// Ignore patterns are appended to the configured ones.
	Ignore []string

	// Extensions replace the configured ones when non-nil.
	Extensions []string

	NoBackups *bool
}

// Apply writes every set override into cfg.
func (o *Overrides) Apply(cfg *config.Config) {
	if o == nil || cfg == nil {
		return
	}

	if o.UseTabs != nil {
		cfg.Format.UseTabs = *o.UseTabs
	}
	if o.TabWidth != nil {
		cfg.Format.TabWidth = *o.TabWidth
	}
	if o.PrintWidth != nil {
		cfg.Format.PrintWidth = *o.PrintWidth
	}
	if o.ValidateOutput != nil {
		cfg.Format.ValidateOutput = *o.ValidateOutput
	}
	if o.Jobs != nil {
		cfg.Jobs = *o.Jobs
	}
	if o.Output != nil {
		cfg.Output = *o.Output
	}
	if o.NoBackups != nil {
		cfg.NoBackups = *o.NoBackups
	}

	if len(o.Ignore) > 0 {
		ignore := make([]string, 0, len(cfg.Ignore)+len(o.Ignore))
		ignore = append(ignore, cfg.Ignore...)
		cfg.Ignore = append(ignore, o.Ignore...)
	}
	if o.Extensions != nil {
		cfg.Extensions = o.Extensions
	}
}

// MergeAll applies overrides in order, later ones taking precedence.
func MergeAll(cfg *config.Config, overrides ...*Overrides) *config.Config {
	if cfg == nil {
		return nil
	}
	result := cfg.Clone()
	for _, o := range overrides {
		o.Apply(result)
	}
	return result
}
