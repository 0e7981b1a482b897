package format

import (
	"github.com/yaklabco/gmlfmt/pkg/diff"
	"github.com/yaklabco/gmlfmt/pkg/gmlast"
	"github.com/yaklabco/gmlfmt/pkg/parser"
	"github.com/yaklabco/gmlfmt/pkg/printer"
)

// validate checks the printed output against the parse it came from:
// each comment group printed exactly once, the output re-parses, and the
// re-parsed tree hashes the same as the original.
func validate(original *parser.Result, printed *printer.Result) error {
	if err := checkComments(original.Comments.Groups(), printed.CommentsPrinted); err != nil {
		return err
	}
	return checkTree(original.Root, printed.Output)
}

func checkComments(groups []*gmlast.CommentGroup, printed map[int]int) error {
	var unprinted, repeated []*gmlast.CommentGroup
	for _, g := range groups {
		switch n := printed[g.ID]; {
		case n == 0:
			unprinted = append(unprinted, g)
		case n > 1:
			repeated = append(repeated, g)
		}
	}
	if len(unprinted) == 0 && len(repeated) == 0 {
		return nil
	}
	return &ValidationError{
		Kind:      ValidationComments,
		Unprinted: unprinted,
		Repeated:  repeated,
	}
}

func checkTree(original *gmlast.Document, output string) error {
	reparsed, err := parser.Parse(output)
	if err != nil {
		return &ValidationError{Kind: ValidationReparse, Cause: err}
	}

	if gmlast.StructuralHash(original) == gmlast.StructuralHash(reparsed.Root) {
		return nil
	}

	opts := gmlast.DumpOptions{Canonical: true}
	before := gmlast.Dump(original, opts)
	after := gmlast.Dump(reparsed.Root, opts)

	return &ValidationError{
		Kind:          ValidationTree,
		OriginalTree:  before,
		FormattedTree: after,
		Difference:    diff.Marker(before, after) + "\n" + diff.Unified("tree", before, after),
	}
}
