// Package printer renders documents from package doc to text.
//
// The engine walks the document with an explicit command stack instead of
// recursion, so deeply nested documents never grow the goroutine stack.
// Groups are printed flat when a bounded look-ahead shows that they fit in
// the remaining width, and broken otherwise.
package printer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gmlfmt/pkg/doc"
)

// ErrUnresolvedGroup is returned when an IfBreak refers to a group that
// has not been printed yet.
var ErrUnresolvedGroup = errors.New("reference to unresolved group")

// Options configures rendering.
type Options struct {
	// Width is the target maximum line width.
	Width int

	// TabWidth is the width of one indentation level.
	TabWidth int

	// UseTabs indents with tab characters instead of spaces.
	UseTabs bool
}

// Result is the rendered output.
type Result struct {
	Output string

	// CommentsPrinted counts how many times each comment id was printed.
	CommentsPrinted map[int]int
}

type mode int

const (
	modeBreak mode = iota
	modeFlat
)

type command struct {
	ind  *indentation
	mode mode
	doc  doc.Doc
}

type printer struct {
	opts     Options
	indenter indenter

	broken     map[*doc.Group]bool
	flat       map[*doc.Group]int
	groupModes map[doc.GroupID]mode

	out        []byte
	pos        int
	lineSuffix []command
	comments   map[int]int
}

// Print renders d.
func Print(d doc.Doc, opts Options) (*Result, error) {
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}

	broken := propagateBreaks(d)
	p := &printer{
		opts:       opts,
		indenter:   indenter{useTabs: opts.UseTabs, tabWidth: opts.TabWidth},
		broken:     broken,
		flat:       flatWidths(d, broken),
		groupModes: make(map[doc.GroupID]mode),
		comments:   make(map[int]int),
	}

	if err := p.run(d); err != nil {
		return nil, err
	}

	p.trimTrailingWhitespace()
	return &Result{Output: string(p.out), CommentsPrinted: p.comments}, nil
}

func (p *printer) isBroken(g *doc.Group) bool {
	return g.Break || p.broken[g]
}

func (p *printer) run(root doc.Doc) error {
	cmds := []command{{ind: p.indenter.root(), mode: modeBreak, doc: root}}
	shouldRemeasure := false

	for len(cmds) > 0 {
		cmd := cmds[len(cmds)-1]
		cmds = cmds[:len(cmds)-1]

		switch d := cmd.doc.(type) {
		case nil:

		case doc.Text:
			p.write(string(d))

		case doc.Concat:
			for i := len(d) - 1; i >= 0; i-- {
				cmds = append(cmds, command{ind: cmd.ind, mode: cmd.mode, doc: d[i]})
			}

		case *doc.Indent:
			cmds = append(cmds, command{ind: p.indenter.indent(cmd.ind), mode: cmd.mode, doc: d.Contents})

		case *doc.Align:
			cmds = append(cmds, command{ind: p.indenter.align(cmd.ind, d.Width), mode: cmd.mode, doc: d.Contents})

		case *doc.Group:
			next := command{ind: cmd.ind, mode: modeBreak, doc: d.Contents}
			switch {
			case cmd.mode == modeFlat && !shouldRemeasure:
				if !p.isBroken(d) {
					next.mode = modeFlat
				}
			default:
				shouldRemeasure = false
				flat := command{ind: cmd.ind, mode: modeFlat, doc: d.Contents}
				if !p.isBroken(d) && p.fits(flat, cmds, p.opts.Width-p.pos, len(p.lineSuffix) > 0, false) {
					next = flat
				}
			}
			cmds = append(cmds, next)
			if d.ID != 0 {
				p.groupModes[d.ID] = next.mode
			}

		case *doc.Fill:
			cmds = p.fill(cmds, cmd, d)

		case *doc.IfBreak:
			groupMode := cmd.mode
			if d.GroupID != 0 {
				m, ok := p.groupModes[d.GroupID]
				if !ok {
					return fmt.Errorf("%w: #%d", ErrUnresolvedGroup, d.GroupID)
				}
				groupMode = m
			}
			contents := d.Flat
			if groupMode == modeBreak {
				contents = d.Break
			}
			cmds = append(cmds, command{ind: cmd.ind, mode: cmd.mode, doc: contents})

		case *doc.IndentIfBreak:
			m, ok := p.groupModes[d.GroupID]
			if !ok {
				return fmt.Errorf("%w: #%d", ErrUnresolvedGroup, d.GroupID)
			}
			ind := cmd.ind
			if m == modeBreak {
				ind = p.indenter.indent(ind)
			}
			cmds = append(cmds, command{ind: ind, mode: cmd.mode, doc: d.Contents})

		case *doc.CommentMarker:
			p.comments[d.ID]++
			cmds = append(cmds, command{ind: cmd.ind, mode: cmd.mode, doc: d.Contents})

		case *doc.EndOfLineComment:
			p.comments[d.ID]++
			p.lineSuffix = append(p.lineSuffix, command{ind: cmd.ind, mode: cmd.mode, doc: d.Contents})

		case doc.BreakParent:

		case doc.Line:
			if cmd.mode == modeFlat {
				if d.Kind == doc.LineSoft {
					break
				}
				if d.Kind == doc.LineSpace {
					p.write(" ")
					break
				}
				// A hard line in flat mode: the enclosing group was
				// measured as flat, so later groups must be re-measured.
				shouldRemeasure = true
			}

			if len(p.lineSuffix) > 0 {
				cmds = append(cmds, cmd)
				cmds = p.flushLineSuffix(cmds)
				break
			}

			switch {
			case d.Kind == doc.LineLiteral:
				p.out = append(p.out, '\n')
				p.pos = 0
			case d.Squash && p.atLineStart():
				p.trimTrailingWhitespace()
				p.writeIndent(cmd.ind)
			default:
				p.trimTrailingWhitespace()
				p.out = append(p.out, '\n')
				p.writeIndent(cmd.ind)
			}

		default:
			return fmt.Errorf("unknown document type %T", d)
		}

		if len(cmds) == 0 && len(p.lineSuffix) > 0 {
			cmds = p.flushLineSuffix(cmds)
		}
	}

	return nil
}

func (p *printer) flushLineSuffix(cmds []command) []command {
	for i := len(p.lineSuffix) - 1; i >= 0; i-- {
		cmds = append(cmds, p.lineSuffix[i])
	}
	p.lineSuffix = p.lineSuffix[:0]
	return cmds
}

// fill implements word-wrap: each content part is measured together with
// the next one, and a separator breaks only when they cannot share a line.
func (p *printer) fill(cmds []command, cmd command, f *doc.Fill) []command {
	parts := f.Parts
	if len(parts) == 0 {
		return cmds
	}

	rem := p.opts.Width - p.pos
	hasSuffix := len(p.lineSuffix) > 0

	content := parts[0]
	contentFlat := command{ind: cmd.ind, mode: modeFlat, doc: content}
	contentBreak := command{ind: cmd.ind, mode: modeBreak, doc: content}
	contentFits := p.fits(contentFlat, nil, rem, hasSuffix, true)

	if len(parts) == 1 {
		if contentFits {
			return append(cmds, contentFlat)
		}
		return append(cmds, contentBreak)
	}

	sep := parts[1]
	sepFlat := command{ind: cmd.ind, mode: modeFlat, doc: sep}
	sepBreak := command{ind: cmd.ind, mode: modeBreak, doc: sep}

	if len(parts) == 2 {
		if contentFits {
			return append(cmds, sepFlat, contentFlat)
		}
		return append(cmds, sepBreak, contentBreak)
	}

	rest := command{ind: cmd.ind, mode: cmd.mode, doc: &doc.Fill{Parts: parts[2:]}}
	pair := command{ind: cmd.ind, mode: modeFlat, doc: doc.Concat{content, sep, parts[2]}}
	pairFits := p.fits(pair, nil, rem, hasSuffix, true)

	switch {
	case pairFits:
		return append(cmds, rest, sepFlat, contentFlat)
	case contentFits:
		return append(cmds, rest, sepBreak, contentFlat)
	default:
		return append(cmds, rest, sepBreak, contentBreak)
	}
}

// fits reports whether next, followed by the remaining commands up to
// their first line break, renders within width columns.
func (p *printer) fits(next command, rest []command, width int, hasLineSuffix, mustBeFlat bool) bool {
	restIdx := len(rest)
	stack := []command{next}

	for width >= 0 {
		if len(stack) == 0 {
			if restIdx == 0 {
				return true
			}
			restIdx--
			stack = append(stack, rest[restIdx])
			continue
		}

		cmd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch d := cmd.doc.(type) {
		case nil:
		case doc.Text:
			text := string(d)
			if i := strings.IndexByte(text, '\n'); i >= 0 {
				return width-runewidth.StringWidth(text[:i]) >= 0
			}
			width -= runewidth.StringWidth(text)
		case doc.Concat:
			for i := len(d) - 1; i >= 0; i-- {
				stack = append(stack, command{ind: cmd.ind, mode: cmd.mode, doc: d[i]})
			}
		case *doc.Fill:
			for i := len(d.Parts) - 1; i >= 0; i-- {
				stack = append(stack, command{ind: cmd.ind, mode: cmd.mode, doc: d.Parts[i]})
			}
		case *doc.Indent:
			stack = append(stack, command{ind: cmd.ind, mode: cmd.mode, doc: d.Contents})
		case *doc.Align:
			stack = append(stack, command{ind: cmd.ind, mode: cmd.mode, doc: d.Contents})
		case *doc.IndentIfBreak:
			stack = append(stack, command{ind: cmd.ind, mode: cmd.mode, doc: d.Contents})
		case *doc.CommentMarker:
			stack = append(stack, command{ind: cmd.ind, mode: cmd.mode, doc: d.Contents})
		case *doc.EndOfLineComment:
			hasLineSuffix = true
		case *doc.Group:
			broken := p.isBroken(d)
			if mustBeFlat && broken {
				return false
			}
			m := cmd.mode
			if broken {
				m = modeBreak
			}
			if w, ok := p.flat[d]; ok && m == modeFlat {
				width -= w
				continue
			}
			stack = append(stack, command{ind: cmd.ind, mode: m, doc: d.Contents})
		case *doc.IfBreak:
			m := cmd.mode
			if d.GroupID != 0 {
				m = modeFlat
				if resolved, ok := p.groupModes[d.GroupID]; ok {
					m = resolved
				}
			}
			contents := d.Flat
			if m == modeBreak {
				contents = d.Break
			}
			stack = append(stack, command{ind: cmd.ind, mode: cmd.mode, doc: contents})
		case doc.Line:
			if cmd.mode == modeBreak || d.Kind == doc.LineHard || d.Kind == doc.LineLiteral {
				return true
			}
			if d.Kind == doc.LineSpace {
				width--
			}
		case doc.BreakParent:
		}
	}

	return false
}

func (p *printer) write(text string) {
	p.out = append(p.out, text...)
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		p.pos = runewidth.StringWidth(text[i+1:])
		return
	}
	p.pos += runewidth.StringWidth(text)
}

func (p *printer) writeIndent(ind *indentation) {
	p.out = append(p.out, ind.value...)
	p.pos = ind.length
}

// atLineStart reports whether nothing but indentation has been written
// since the last newline.
func (p *printer) atLineStart() bool {
	for i := len(p.out) - 1; i >= 0; i-- {
		switch p.out[i] {
		case ' ', '\t':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

func (p *printer) trimTrailingWhitespace() {
	n := len(p.out)
	for n > 0 && (p.out[n-1] == ' ' || p.out[n-1] == '\t') {
		n--
	}
	p.out = p.out[:n]
}
