package printer

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gmlfmt/pkg/doc"
)

type flatFrame struct {
	doc  doc.Doc
	exit bool
}

type openGroup struct {
	group *doc.Group
	width int

	// invalidFrom is the lowest stack index whose flat width cannot be
	// known in advance because of something found inside this group.
	invalidFrom int
}

// flatWidths records the flat rendering width of every group that does not
// break. A group is left out when its flat rendering depends on printer
// state: it contains multi-line text, or an IfBreak on a group outside its
// own subtree. The traversal is iterative and linear in the document size.
func flatWidths(root doc.Doc, broken map[*doc.Group]bool) map[*doc.Group]int {
	widths := make(map[*doc.Group]int)
	var open []openGroup
	ids := make(map[doc.GroupID]int)

	add := func(w int) {
		if len(open) > 0 {
			open[len(open)-1].width += w
		}
	}
	invalidate := func(from int) {
		if len(open) > 0 {
			top := &open[len(open)-1]
			top.invalidFrom = min(top.invalidFrom, from)
		}
	}

	stack := []flatFrame{{doc: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.exit {
			idx := len(open) - 1
			g := open[idx]
			open = open[:idx]
			if g.group.ID != 0 {
				delete(ids, g.group.ID)
			}
			if g.invalidFrom > idx && !g.group.Break && !broken[g.group] {
				widths[g.group] = g.width
			}
			if idx > 0 {
				parent := &open[idx-1]
				parent.width += g.width
				parent.invalidFrom = min(parent.invalidFrom, g.invalidFrom)
			}
			continue
		}

		var children []doc.Doc
		switch d := f.doc.(type) {
		case doc.Text:
			if strings.IndexByte(string(d), '\n') >= 0 {
				invalidate(0)
			} else {
				add(runewidth.StringWidth(string(d)))
			}
		case doc.Concat:
			children = d
		case *doc.Fill:
			children = d.Parts
		case *doc.Group:
			if d.ID != 0 {
				ids[d.ID] = len(open)
			}
			open = append(open, openGroup{group: d, invalidFrom: math.MaxInt})
			stack = append(stack, flatFrame{doc: d, exit: true})
			children = []doc.Doc{d.Contents}
		case *doc.IfBreak:
			if d.GroupID != 0 {
				// Groups enclosing the referenced one resolve it as flat
				// while they are measured; groups inside it cannot.
				if k, ok := ids[d.GroupID]; ok {
					invalidate(k + 1)
				} else {
					invalidate(0)
				}
			}
			children = []doc.Doc{d.Flat}
		case *doc.Indent:
			children = []doc.Doc{d.Contents}
		case *doc.IndentIfBreak:
			children = []doc.Doc{d.Contents}
		case *doc.Align:
			children = []doc.Doc{d.Contents}
		case *doc.CommentMarker:
			children = []doc.Doc{d.Contents}
		case doc.Line:
			switch d.Kind {
			case doc.LineSpace:
				add(1)
			case doc.LineHard, doc.LineLiteral:
				invalidate(0)
			}
		}

		for i := len(children) - 1; i >= 0; i-- {
			if children[i] != nil {
				stack = append(stack, flatFrame{doc: children[i]})
			}
		}
	}

	return widths
}
