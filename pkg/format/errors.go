package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/gmlfmt/pkg/gmlast"
	"github.com/yaklabco/gmlfmt/pkg/parser"
)

// Error categories for errors.Is.
var (
	// ErrSyntax matches every *parser.SyntaxError.
	ErrSyntax = parser.ErrSyntax

	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("output validation failed")

	// ErrIO matches every *IOError.
	ErrIO = errors.New("i/o error")
)

// ValidationKind identifies which output check failed.
type ValidationKind int

const (
	// ValidationComments means a comment group was dropped or duplicated.
	ValidationComments ValidationKind = iota

	// ValidationReparse means the output no longer parses.
	ValidationReparse

	// ValidationTree means the output parses to a different tree.
	ValidationTree
)

func (k ValidationKind) String() string {
	switch k {
	case ValidationComments:
		return "comments"
	case ValidationReparse:
		return "reparse"
	case ValidationTree:
		return "tree"
	}
	return "unknown"
}

// ValidationError reports that formatted output failed self-validation.
// The output is never returned or written when this happens.
type ValidationError struct {
	Kind ValidationKind

	// Unprinted and Repeated list comment groups printed zero times or
	// more than once.
	Unprinted []*gmlast.CommentGroup
	Repeated  []*gmlast.CommentGroup

	// Cause is the syntax error from re-parsing the output.
	Cause error

	// OriginalTree and FormattedTree are canonical dumps of both trees
	// when they differ; Difference marks where.
	OriginalTree  string
	FormattedTree string
	Difference    string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(ErrValidation.Error())
	sb.WriteString(": ")

	switch e.Kind {
	case ValidationComments:
		var parts []string
		if len(e.Unprinted) > 0 {
			parts = append(parts, describeGroups("were not printed", e.Unprinted))
		}
		if len(e.Repeated) > 0 {
			parts = append(parts, describeGroups("were printed multiple times", e.Repeated))
		}
		sb.WriteString(strings.Join(parts, "\n"))
	case ValidationReparse:
		fmt.Fprintf(&sb, "formatting made the code invalid: %v", e.Cause)
	case ValidationTree:
		sb.WriteString("formatting changed the syntax tree")
		if e.Difference != "" {
			sb.WriteString("\n")
			sb.WriteString(e.Difference)
		}
	}
	return sb.String()
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, ErrValidation) match any validation error.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func describeGroups(what string, groups []*gmlast.CommentGroup) string {
	lines := make([]string, 0, len(groups)+1)
	lines = append(lines, fmt.Sprintf("%d comment group(s) %s:", len(groups), what))
	for _, g := range groups {
		lines = append(lines, "  "+g.String())
	}
	return strings.Join(lines, "\n")
}

// IOError reports a failure reading or writing a file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrIO) match any I/O error.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// IsSyntaxError reports whether err means the input did not parse. A
// validation failure caused by unparsable output is not a syntax error of
// the input.
func IsSyntaxError(err error) bool {
	return errors.Is(err, ErrSyntax) && !errors.Is(err, ErrValidation)
}

// AsSyntaxError returns the parse error of the input carried by err.
func AsSyntaxError(err error) (*parser.SyntaxError, bool) {
	if !IsSyntaxError(err) {
		return nil, false
	}
	var syntaxErr *parser.SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr, true
	}
	return nil, false
}
