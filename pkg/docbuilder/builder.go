// Package docbuilder converts a parsed GML tree into a layout document.
//
// The builder is a mechanical mapping from node variants to doc
// combinators. It decides the canonical shape of the output (brace
// placement, separators, spacing, where lines may break) while the printer
// decides which optional breaks are taken for a given width.
//
// Every comment group of the parse is emitted inside exactly one comment
// marker, so the printer can report how often each group was printed.
package docbuilder

import (
	"strings"

	"github.com/yaklabco/gmlfmt/pkg/doc"
	"github.com/yaklabco/gmlfmt/pkg/gmlast"
	"github.com/yaklabco/gmlfmt/pkg/parser"
)

// Build converts a parse result into a document.
func Build(res *parser.Result) doc.Doc {
	comments := res.Comments
	if comments == nil {
		comments = gmlast.NewCommentMap(nil)
	}
	b := &builder{src: res.Source, comments: comments}
	return b.print(res.Root)
}

type builder struct {
	src      string
	comments *gmlast.CommentMap
	ids      doc.IDs
}

// context selects how trailing comments are laid out. In line context
// (statements, list items) an own-line comment stays on its own line; in
// expression context comments stay next to the code they follow.
type context int

const (
	exprContext context = iota
	lineContext
)

// print renders n with its comments in expression context.
func (b *builder) print(n gmlast.Node) doc.Doc {
	return b.printNode(n, nil, exprContext)
}

// printNode renders n surrounded by its attached comments. suffix is
// placed between the node and its trailing comments, which keeps
// separators such as ";" and "," ahead of a trailing comment.
func (b *builder) printNode(n gmlast.Node, suffix doc.Doc, ctx context) doc.Doc {
	if gmlast.IsNil(n) {
		return suffix
	}

	parts := make([]doc.Doc, 0, 4)

	leading := b.comments.Get(n, gmlast.Leading)
	for i, a := range leading {
		next := n.Span().Start
		if i+1 < len(leading) {
			next = leading[i+1].Group.Span.Start
		}
		parts = append(parts, b.leadingComment(a, b.blankBetween(a.Group.Span.End, next)))
	}

	parts = append(parts, b.render(n))

	if !printsOwnDangling(n) {
		for _, a := range b.comments.Get(n, gmlast.Dangling) {
			parts = append(parts, b.inlineComment(a))
		}
	}

	parts = append(parts, suffix)

	prevEnd := n.Span().End
	for _, a := range b.comments.Get(n, gmlast.Trailing) {
		parts = append(parts, b.trailingComment(a, ctx, b.blankBetween(prevEnd, a.Group.Span.Start)))
		prevEnd = a.Group.Span.End
	}

	return doc.Cat(parts...)
}

// printsOwnDangling reports whether the renderer of n places its dangling
// comments itself, between its delimiters.
func printsOwnDangling(n gmlast.Node) bool {
	switch n.(type) {
	case *gmlast.Document, *gmlast.Block, *gmlast.SwitchBlock, *gmlast.EnumBlock,
		*gmlast.ArgumentList, *gmlast.ParameterList,
		*gmlast.ArrayExpression, *gmlast.StructExpression:
		return true
	}
	return false
}

// commentText renders the text of a comment group. Multi-line block
// comments keep their continuation lines untouched.
func commentText(g *gmlast.CommentGroup) doc.Doc {
	return doc.Verbatim(strings.TrimRight(g.Text, " \t"))
}

func (b *builder) leadingComment(a *gmlast.Attachment, blankAfter bool) doc.Doc {
	marker := doc.Comment(a.Group.ID, commentText(a.Group))

	switch {
	case a.OwnLine:
		parts := []doc.Doc{doc.HardLineSquash, marker, doc.HardLine}
		if blankAfter {
			parts = append(parts, doc.HardLine)
		}
		return doc.Cat(parts...)
	case a.Group.EndsWithLineComment:
		return doc.Cat(marker, doc.HardLine)
	default:
		return doc.Cat(marker, doc.Space)
	}
}

func (b *builder) trailingComment(a *gmlast.Attachment, ctx context, blankBefore bool) doc.Doc {
	text := commentText(a.Group)

	switch {
	case ctx == lineContext && a.OwnLine:
		parts := []doc.Doc{doc.HardLine}
		if blankBefore {
			parts = append(parts, doc.HardLine)
		}
		parts = append(parts, doc.Comment(a.Group.ID, text))
		return doc.Cat(parts...)
	case a.Group.EndsWithLineComment:
		return doc.Cat(doc.TrailingComment(a.Group.ID, doc.Cat(doc.Space, text)), doc.ForceBreak)
	default:
		return doc.Cat(doc.Space, doc.Comment(a.Group.ID, text))
	}
}

// inlineComment renders a dangling comment of a node that has no slot for
// it.
func (b *builder) inlineComment(a *gmlast.Attachment) doc.Doc {
	text := commentText(a.Group)
	if a.Group.EndsWithLineComment {
		return doc.Cat(doc.TrailingComment(a.Group.ID, doc.Cat(doc.Space, text)), doc.ForceBreak)
	}
	return doc.Cat(doc.Space, doc.Comment(a.Group.ID, text))
}

// danglingLines renders the dangling comments of n one per line,
// preserving single blank lines between them. It returns nil when n has
// none.
func (b *builder) danglingLines(n gmlast.Node) doc.Doc {
	dangling := b.comments.Get(n, gmlast.Dangling)
	if len(dangling) == 0 {
		return nil
	}

	parts := make([]doc.Doc, 0, 2*len(dangling))
	for i, a := range dangling {
		if i > 0 {
			parts = append(parts, doc.HardLine)
			if b.blankBetween(dangling[i-1].Group.Span.End, a.Group.Span.Start) {
				parts = append(parts, doc.HardLine)
			}
		}
		parts = append(parts, doc.Comment(a.Group.ID, commentText(a.Group)))
	}
	if dangling[len(dangling)-1].Group.EndsWithLineComment {
		parts = append(parts, doc.ForceBreak)
	}
	return doc.Cat(parts...)
}

// blankBetween reports whether the source has at least one empty line
// between two offsets.
func (b *builder) blankBetween(from, to int) bool {
	if from < 0 || to > len(b.src) || from >= to {
		return false
	}
	return strings.Count(b.src[from:to], "\n") > 1
}

// extent is the span of n widened to its leading and trailing comments.
func (b *builder) extent(n gmlast.Node) gmlast.Span {
	span := n.Span()
	for _, a := range b.comments.Get(n, gmlast.Leading) {
		span = span.Cover(a.Group.Span)
	}
	for _, a := range b.comments.Get(n, gmlast.Trailing) {
		span = span.Cover(a.Group.Span)
	}
	return span
}

// lines renders nodes one per line in line context, keeping at most one
// blank line where the source had any. sep is appended to each node
// before its trailing comments.
func (b *builder) lines(nodes []gmlast.Node, sep func(gmlast.Node) doc.Doc) doc.Doc {
	parts := make([]doc.Doc, 0, 3*len(nodes))
	for i, n := range nodes {
		if i > 0 {
			parts = append(parts, doc.HardLine)
			if b.blankBetween(b.extent(nodes[i-1]).End, b.extent(n).Start) {
				parts = append(parts, doc.HardLine)
			}
		}
		var suffix doc.Doc
		if sep != nil {
			suffix = sep(n)
		}
		parts = append(parts, b.printNode(n, suffix, lineContext))
	}
	return doc.Cat(parts...)
}

// delimited renders a bracketed, comma-separated list. When the group
// breaks, each item goes on its own line; trailing adds a comma after the
// last item in that case.
func (b *builder) delimited(owner gmlast.Node, open, close string, items []gmlast.Node, trailing, spaced bool) doc.Doc {
	edge := doc.SoftLine
	if spaced {
		edge = doc.SpaceLine
	}

	if len(items) == 0 {
		dangling := b.danglingLines(owner)
		if dangling == nil {
			return doc.Text(open + close)
		}
		return doc.NewGroup(doc.Text(open), doc.Indented(edge, dangling), edge, doc.Text(close))
	}

	id := b.ids.Next()
	parts := make([]doc.Doc, 0, 2*len(items))
	for i, item := range items {
		var sep doc.Doc = doc.Text(",")
		if i == len(items)-1 {
			sep = nil
			if trailing {
				sep = doc.IfGroupBroken(id, doc.Text(","), nil)
			}
		}
		if i > 0 {
			parts = append(parts, doc.SpaceLine)
		}
		parts = append(parts, b.printNode(item, sep, lineContext))
	}

	return doc.NewGroupWithID(id,
		doc.Text(open),
		doc.IndentIfGroupBroken(id, edge, doc.Cat(parts...)),
		edge,
		doc.Text(close),
	)
}

// block renders a braced statement list on its own lines.
func (b *builder) block(n gmlast.Node, statements []gmlast.Node) doc.Doc {
	var inner doc.Doc
	switch {
	case len(statements) > 0:
		inner = b.lines(statements, semicolon)
	default:
		inner = b.danglingLines(n)
	}
	if inner == nil {
		return doc.Cat(doc.Text("{"), doc.HardLine, doc.Text("}"))
	}
	return doc.Cat(doc.Text("{"), doc.Indented(doc.HardLine, inner), doc.HardLine, doc.Text("}"))
}

// body renders the body of a control statement. Bodies are always blocks,
// opened on a new line.
func (b *builder) body(n gmlast.Node) doc.Doc {
	if _, ok := n.(*gmlast.Block); ok {
		return doc.Cat(doc.HardLine, b.printNode(n, nil, lineContext))
	}
	return doc.Cat(
		doc.HardLine,
		doc.Text("{"),
		doc.Indented(doc.HardLine, b.printNode(n, semicolon(n), lineContext)),
		doc.HardLine,
		doc.Text("}"),
	)
}

// semicolon returns the terminator printed after a statement.
func semicolon(n gmlast.Node) doc.Doc {
	switch n.(type) {
	case *gmlast.VariableDeclarationList, *gmlast.AssignmentExpression,
		*gmlast.CallExpression, *gmlast.UnaryExpression,
		*gmlast.ReturnStatement, *gmlast.ThrowStatement, *gmlast.DeleteStatement,
		*gmlast.BreakStatement, *gmlast.ContinueStatement, *gmlast.ExitStatement,
		*gmlast.DoStatement:
		return doc.Text(";")
	}
	return nil
}
