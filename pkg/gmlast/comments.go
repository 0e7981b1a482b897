package gmlast

import (
	"fmt"
	"strings"
)

// CommentGroup is a maximal run of comment tokens separated only by
// whitespace on the same line. Groups partition every comment token of a
// source file.
type CommentGroup struct {
	// ID is the group's stable sequential identity within one parse.
	ID int

	// Text is the source text of the group, trimmed of trailing whitespace.
	Text string

	// Span is the byte range of the group in the source.
	Span Span

	// EndsWithLineComment is true when the last token is a // comment,
	// meaning nothing may follow the group on the same line.
	EndsWithLineComment bool
}

func (g *CommentGroup) String() string {
	return fmt.Sprintf("#%d %s %q", g.ID, g.Span, g.Text)
}

// IsMultiline reports whether the group text spans several lines.
func (g *CommentGroup) IsMultiline() bool {
	return strings.Contains(g.Text, "\n")
}

// Placement describes where an attached comment is printed relative to
// its node.
type Placement int

const (
	Leading Placement = iota
	Trailing
	Dangling
)

func (p Placement) String() string {
	switch p {
	case Leading:
		return "leading"
	case Trailing:
		return "trailing"
	case Dangling:
		return "dangling"
	}
	return "unknown"
}

// Attachment binds a comment group to a node.
type Attachment struct {
	Group     *CommentGroup
	Placement Placement

	// OwnLine is true when only whitespace precedes the group on its line.
	OwnLine bool

	// EndOfLine is true when only whitespace follows the group on its line.
	EndOfLine bool

	// BlankLineAfter is true when the source has an empty line between the
	// group and the code it leads.
	BlankLineAfter bool
}

// CommentMap holds the comment attachments of a tree.
type CommentMap struct {
	byNode map[Node][]*Attachment
	groups []*CommentGroup
}

// NewCommentMap returns an empty map over the given groups.
func NewCommentMap(groups []*CommentGroup) *CommentMap {
	return &CommentMap{
		byNode: make(map[Node][]*Attachment),
		groups: groups,
	}
}

// Attach records a as belonging to n.
func (m *CommentMap) Attach(n Node, a *Attachment) {
	m.byNode[n] = append(m.byNode[n], a)
}

// Groups returns every comment group in source order.
func (m *CommentMap) Groups() []*CommentGroup {
	return m.groups
}

// Has reports whether any comment is attached to n.
func (m *CommentMap) Has(n Node) bool {
	return len(m.byNode[n]) > 0
}

// Get returns the attachments of n with the given placement, in source order.
func (m *CommentMap) Get(n Node, p Placement) []*Attachment {
	var out []*Attachment
	for _, a := range m.byNode[n] {
		if a.Placement == p {
			out = append(out, a)
		}
	}
	return out
}

// Nodes returns the number of nodes carrying comments.
func (m *CommentMap) Nodes() int {
	return len(m.byNode)
}
