package printer

import "github.com/yaklabco/gmlfmt/pkg/doc"

type breakFrame struct {
	doc  doc.Doc
	exit bool
}

// propagateBreaks finds every group that must break because it contains a
// hard line, a literal line or a BreakParent, directly or through nested
// groups. The traversal is iterative.
func propagateBreaks(root doc.Doc) map[*doc.Group]bool {
	broken := make(map[*doc.Group]bool)
	var groups []*doc.Group

	breakInnermost := func() {
		if len(groups) > 0 {
			broken[groups[len(groups)-1]] = true
		}
	}

	stack := []breakFrame{{doc: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.exit {
			g := groups[len(groups)-1]
			groups = groups[:len(groups)-1]
			if g.Break || broken[g] {
				breakInnermost()
			}
			continue
		}

		var children []doc.Doc
		switch d := f.doc.(type) {
		case doc.Concat:
			children = d
		case *doc.Fill:
			children = d.Parts
		case *doc.Group:
			groups = append(groups, d)
			stack = append(stack, breakFrame{doc: d, exit: true})
			children = []doc.Doc{d.Contents}
		case *doc.IfBreak:
			children = []doc.Doc{d.Break, d.Flat}
		case *doc.Indent:
			children = []doc.Doc{d.Contents}
		case *doc.IndentIfBreak:
			children = []doc.Doc{d.Contents}
		case *doc.Align:
			children = []doc.Doc{d.Contents}
		case *doc.CommentMarker:
			children = []doc.Doc{d.Contents}
		case *doc.EndOfLineComment:
			children = []doc.Doc{d.Contents}
		case doc.Line:
			if d.Kind == doc.LineHard || d.Kind == doc.LineLiteral {
				breakInnermost()
			}
		case doc.BreakParent:
			breakInnermost()
		}

		for i := len(children) - 1; i >= 0; i-- {
			if children[i] != nil {
				stack = append(stack, breakFrame{doc: children[i]})
			}
		}
	}

	return broken
}
