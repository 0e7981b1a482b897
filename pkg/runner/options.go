// Package runner formats many files concurrently.
package runner

import "github.com/yaklabco/gmlfmt/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered GML. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths, relative to
	// WorkingDir. Empty means every file that matches Extensions.
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	// These merge ignore rules from config and CLI (e.g. --ignore).
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Sniff drops discovered files whose content is not GML, such as XML
	// documents that share the .gml extension.
	Sniff bool

	// Markdown also discovers Markdown files and formats their GML code
	// blocks.
	Markdown bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultExtensions returns the default set of GML file extensions.
func DefaultExtensions() []string {
	return []string{".gml"}
}

// MarkdownExtensions returns the extensions of Markdown files searched for
// code blocks.
func MarkdownExtensions() []string {
	return []string{".md", ".markdown"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	exts := o.Extensions
	if len(exts) == 0 && o.Config != nil {
		exts = o.Config.Extensions
	}
	if len(exts) == 0 {
		exts = DefaultExtensions()
	}
	if o.Markdown {
		exts = append(append([]string(nil), exts...), MarkdownExtensions()...)
	}
	return exts
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// effectiveExcludes merges the configured ignore patterns with ExcludeGlobs.
func (o Options) effectiveExcludes() []string {
	if o.Config == nil || len(o.Config.Ignore) == 0 {
		return o.ExcludeGlobs
	}
	return append(append([]string(nil), o.Config.Ignore...), o.ExcludeGlobs...)
}
