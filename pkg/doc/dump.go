package doc

import (
	"fmt"
	"strings"
)

type dumpFrame struct {
	doc   Doc
	depth int
	label string
}

// Dump renders d as an indented outline for debugging.
func Dump(d Doc) string {
	var sb strings.Builder
	stack := []dumpFrame{{doc: d}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		sb.WriteString(strings.Repeat("  ", f.depth))
		if f.label != "" {
			sb.WriteString(f.label)
			sb.WriteString(": ")
		}

		var children []dumpFrame
		child := func(label string, c Doc) {
			children = append(children, dumpFrame{doc: c, depth: f.depth + 1, label: label})
		}

		switch v := f.doc.(type) {
		case nil:
			sb.WriteString("<nil>")
		case Text:
			fmt.Fprintf(&sb, "%q", string(v))
		case Concat:
			sb.WriteString("Concat")
			for _, c := range v {
				child("", c)
			}
		case Line:
			sb.WriteString(lineName(v))
		case *Group:
			sb.WriteString("Group")
			if v.ID != 0 {
				fmt.Fprintf(&sb, "#%d", v.ID)
			}
			if v.Break {
				sb.WriteString(" break")
			}
			child("", v.Contents)
		case *Fill:
			sb.WriteString("Fill")
			for _, c := range v.Parts {
				child("", c)
			}
		case *IfBreak:
			sb.WriteString("IfBreak")
			if v.GroupID != 0 {
				fmt.Fprintf(&sb, " group=#%d", v.GroupID)
			}
			child("break", v.Break)
			child("flat", v.Flat)
		case *IndentIfBreak:
			fmt.Fprintf(&sb, "IndentIfBreak group=#%d", v.GroupID)
			child("", v.Contents)
		case *Indent:
			sb.WriteString("Indent")
			child("", v.Contents)
		case *Align:
			fmt.Fprintf(&sb, "Align %d", v.Width)
			child("", v.Contents)
		case *CommentMarker:
			fmt.Fprintf(&sb, "Comment #%d", v.ID)
			child("", v.Contents)
		case *EndOfLineComment:
			fmt.Fprintf(&sb, "EndOfLineComment #%d", v.ID)
			child("", v.Contents)
		case BreakParent:
			sb.WriteString("BreakParent")
		default:
			fmt.Fprintf(&sb, "%T", v)
		}
		sb.WriteByte('\n')

		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func lineName(l Line) string {
	var name string
	switch l.Kind {
	case LineSoft:
		name = "SoftLine"
	case LineSpace:
		name = "Line"
	case LineHard:
		name = "HardLine"
	case LineLiteral:
		name = "LiteralLine"
	default:
		name = "UnknownLine"
	}
	if l.Squash {
		name += " squash"
	}
	return name
}
