// Package doc defines the document intermediate representation used to
// describe layout independently of concrete text, together with the
// combinators used to build it.
//
// A document is a tree of layout commands: text, sequences, line breaks
// that may or may not be taken, groups whose break decision is made as a
// unit, and indentation changes. The printer package renders documents to
// text for a given width.
package doc

// Doc is implemented by every document variant.
type Doc interface {
	isDoc()
}

// GroupID names a group so that IfBreak documents elsewhere can depend on
// its break decision. The zero value means no id.
type GroupID int

// LineKind selects how a Line renders.
type LineKind int

const (
	// LineSoft renders nothing when flat and a newline when broken.
	LineSoft LineKind = iota

	// LineSpace renders a space when flat and a newline when broken.
	LineSpace

	// LineHard always renders a newline and breaks every enclosing group.
	LineHard

	// LineLiteral always renders a newline without indentation.
	LineLiteral
)

// Text is literal output. It must not contain line breaks unless it is
// verbatim content whose lines are never re-indented.
type Text string

// Concat is a sequence of documents.
type Concat []Doc

// Line is a potential line break.
type Line struct {
	Kind LineKind

	// Squash makes a hard line a no-op when the output is already at the
	// start of a fresh line, so that consecutive requests for a new line
	// never produce an empty one.
	Squash bool
}

// Group renders Contents flat if it fits in the remaining width and
// contains no forced break; otherwise every line in it breaks.
type Group struct {
	Contents Doc
	Break    bool
	ID       GroupID
}

// Fill renders alternating content and separator parts, breaking a
// separator only when the content after it does not fit.
type Fill struct {
	Parts []Doc
}

// IfBreak renders Break when the enclosing group (or the group named by
// GroupID) is broken and Flat otherwise.
type IfBreak struct {
	Break   Doc
	Flat    Doc
	GroupID GroupID
}

// IndentIfBreak indents Contents only when the group named GroupID is
// broken.
type IndentIfBreak struct {
	Contents Doc
	GroupID  GroupID
}

// Indent renders Contents one indentation level deeper.
type Indent struct {
	Contents Doc
}

// Align renders Contents with Width extra columns of alignment.
type Align struct {
	Width    int
	Contents Doc
}

// CommentMarker wraps a rendered comment group so that the printer can
// account for it.
type CommentMarker struct {
	ID       int
	Contents Doc
}

// EndOfLineComment is a comment group deferred to the end of the current
// output line. Its contents are flushed right before the next newline or at
// the end of output.
type EndOfLineComment struct {
	ID       int
	Contents Doc
}

// BreakParent forces every enclosing group to break.
type BreakParent struct{}

func (Text) isDoc()              {}
func (Concat) isDoc()            {}
func (Line) isDoc()              {}
func (*Group) isDoc()            {}
func (*Fill) isDoc()             {}
func (*IfBreak) isDoc()          {}
func (*IndentIfBreak) isDoc()    {}
func (*Indent) isDoc()           {}
func (*Align) isDoc()            {}
func (*CommentMarker) isDoc()    {}
func (*EndOfLineComment) isDoc() {}
func (BreakParent) isDoc()       {}
