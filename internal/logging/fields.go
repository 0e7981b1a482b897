// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Configuration fields.
	FieldUseTabs    = "use_tabs"
	FieldTabWidth   = "tab_width"
	FieldPrintWidth = "print_width"
	FieldValidate   = "validate"
	FieldJobs       = "jobs"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesFailed     = "files_failed"
	FieldFilesModified   = "files_modified"

	// Formatting fields.
	FieldLine     = "line"
	FieldColumn   = "column"
	FieldComments = "comments"
	FieldParse    = "parse"
	FieldFormat   = "format"
	FieldTotal    = "total"
	FieldEvent    = "event"
	FieldOutcome  = "outcome"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
