package doc

import "strings"

// Common line documents.
var (
	SoftLine       Doc = Line{Kind: LineSoft}
	SpaceLine      Doc = Line{Kind: LineSpace}
	HardLine       Doc = Line{Kind: LineHard}
	HardLineSquash Doc = Line{Kind: LineHard, Squash: true}
	LiteralLine    Doc = Line{Kind: LineLiteral}
	Empty          Doc = Text("")
	Space          Doc = Text(" ")
	ForceBreak     Doc = BreakParent{}
)

// IDs allocates group ids. Each build owns its allocator; ids are never
// shared between invocations.
type IDs struct {
	next GroupID
}

// Next returns a fresh group id.
func (g *IDs) Next() GroupID {
	g.next++
	return g.next
}

// Cat concatenates parts, dropping nils and flattening nested sequences of
// a single element.
func Cat(parts ...Doc) Doc {
	out := make(Concat, 0, len(parts))
	for _, p := range parts {
		if p != nil {
			out = append(out, p)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

// Join places sep between each of parts.
func Join(sep Doc, parts []Doc) Doc {
	out := make(Concat, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return out
}

// NewGroup groups contents.
func NewGroup(contents ...Doc) *Group {
	return &Group{Contents: Cat(contents...)}
}

// NewGroupWithID groups contents under id.
func NewGroupWithID(id GroupID, contents ...Doc) *Group {
	return &Group{Contents: Cat(contents...), ID: id}
}

// ForceGroup groups contents and always breaks.
func ForceGroup(contents ...Doc) *Group {
	return &Group{Contents: Cat(contents...), Break: true}
}

// NewFill builds a fill from alternating content and separator parts.
func NewFill(parts ...Doc) *Fill {
	return &Fill{Parts: parts}
}

// Indented indents contents one level.
func Indented(contents ...Doc) *Indent {
	return &Indent{Contents: Cat(contents...)}
}

// Aligned aligns contents by width columns.
func Aligned(width int, contents ...Doc) *Align {
	return &Align{Width: width, Contents: Cat(contents...)}
}

// IfBroken chooses between breakDoc and flatDoc based on the enclosing
// group.
func IfBroken(breakDoc, flatDoc Doc) *IfBreak {
	return &IfBreak{Break: breakDoc, Flat: flatDoc}
}

// IfGroupBroken chooses between breakDoc and flatDoc based on the group
// named id, which must be printed first.
func IfGroupBroken(id GroupID, breakDoc, flatDoc Doc) *IfBreak {
	return &IfBreak{Break: breakDoc, Flat: flatDoc, GroupID: id}
}

// IndentIfGroupBroken indents contents only when the group named id is
// broken.
func IndentIfGroupBroken(id GroupID, contents ...Doc) *IndentIfBreak {
	return &IndentIfBreak{Contents: Cat(contents...), GroupID: id}
}

// Comment marks contents as the rendering of comment group id.
func Comment(id int, contents Doc) *CommentMarker {
	return &CommentMarker{ID: id, Contents: contents}
}

// TrailingComment defers contents, the rendering of comment group id, to
// the end of the line.
func TrailingComment(id int, contents Doc) *EndOfLineComment {
	return &EndOfLineComment{ID: id, Contents: contents}
}

// Verbatim renders text with embedded newlines as literal lines, so that
// continuation lines keep their original columns.
func Verbatim(text string) Doc {
	if !strings.Contains(text, "\n") {
		return Text(text)
	}
	lines := strings.Split(text, "\n")
	parts := make([]Doc, len(lines))
	for i, line := range lines {
		parts[i] = Text(line)
	}
	return Join(LiteralLine, parts)
}
