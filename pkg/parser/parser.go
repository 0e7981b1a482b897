// Package parser implements a recursive-descent parser for GameMaker
// Language source. It produces an immutable gmlast tree together with the
// source's comment groups and their attachments.
//
// Parsing is fail-fast: the first malformed construct aborts the parse with
// a single *SyntaxError.
package parser

import (
	"slices"

	"github.com/yaklabco/gmlfmt/pkg/gmlast"
)

// DefaultMaxDepth bounds statement and expression nesting. Every link of a
// member, call or binary operator chain counts as one level.
const DefaultMaxDepth = 1024

// Result is the output of a successful parse.
type Result struct {
	// Root is the parsed document.
	Root *gmlast.Document

	// Comments holds every comment group and its attachment to the tree.
	Comments *gmlast.CommentMap

	// Source is the text that was parsed.
	Source string
}

// Option configures a parse.
type Option func(*options)

type options struct {
	maxDepth int
}

// WithMaxDepth overrides the nesting limit. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// Parse parses src into a syntax tree.
func Parse(src string, opts ...Option) (*Result, error) {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	p := &parser{
		src:      src,
		lex:      NewLexer(src),
		maxDepth: o.maxDepth,
	}
	p.advance()

	root, err := p.document()
	if err != nil {
		return nil, err
	}

	return &Result{
		Root:     root,
		Comments: attachComments(src, root, p.groups),
		Source:   src,
	}, nil
}

// parser holds the state of one parse. It is never shared.
type parser struct {
	src string
	lex *Lexer

	// tok is the current raw token, possibly trivia.
	tok Token

	// prev is the last accepted token.
	prev Token

	// err is a sticky lexer error. Once set the current token is
	// TokenInvalid and every production fails with err.
	err error

	pending []Token
	groups  []*gmlast.CommentGroup
	inMacro bool

	depth    int
	maxDepth int
}

func (p *parser) advance() {
	if p.err != nil {
		return
	}
	tok, err := p.lex.Next()
	if err != nil {
		p.err = err
		p.tok = tok
		return
	}
	p.tok = tok
	p.process(tok)
}

// process feeds a newly current token to the comment grouper.
func (p *parser) process(tok Token) {
	switch tok.Kind {
	case TokenWhitespace:
		if len(p.pending) > 0 && !p.inMacro {
			p.pending = append(p.pending, tok)
		}
	case TokenSingleLineComment, TokenMultiLineComment:
		if !p.inMacro {
			p.pending = append(p.pending, tok)
		}
	default:
		p.flushComments()
	}
}

func (p *parser) flushComments() {
	if len(p.pending) == 0 {
		return
	}

	group := p.pending
	for len(group) > 0 && group[len(group)-1].Kind == TokenWhitespace {
		group = group[:len(group)-1]
	}

	first, last := group[0], group[len(group)-1]
	p.groups = append(p.groups, &gmlast.CommentGroup{
		ID:                  len(p.groups) + 1,
		Text:                p.src[first.Start:last.End],
		Span:                gmlast.Span{Start: first.Start, End: last.End},
		EndsWithLineComment: last.Kind == TokenSingleLineComment,
	})
	p.pending = p.pending[:0]
}

func (p *parser) skipTrivia() {
	for p.tok.Kind.IsTrivia() {
		p.advance()
	}
}

// at reports whether the next significant token has one of the kinds.
func (p *parser) at(kinds ...TokenKind) bool {
	p.skipTrivia()
	return slices.Contains(kinds, p.tok.Kind)
}

// accept consumes the next significant token if it has one of the kinds.
func (p *parser) accept(kinds ...TokenKind) bool {
	if !p.at(kinds...) {
		return false
	}
	p.prev = p.tok
	p.advance()
	return true
}

// acceptRaw consumes the current token without skipping trivia.
func (p *parser) acceptRaw(kind TokenKind) bool {
	if p.tok.Kind != kind {
		return false
	}
	p.prev = p.tok
	p.advance()
	return true
}

func (p *parser) expect(kind TokenKind) error {
	if p.accept(kind) {
		return nil
	}
	return p.unexpected()
}

// unexpected reports the current significant token as a syntax error.
func (p *parser) unexpected() error {
	p.skipTrivia()
	if p.err != nil {
		return p.err
	}
	return unexpectedToken(p.tok)
}

// require turns a non-matching production into a syntax error.
func (p *parser) require(n gmlast.Node, err error) (gmlast.Node, error) {
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, p.unexpected()
	}
	return n, nil
}

// start returns the offset of the next significant token.
func (p *parser) start() int {
	p.skipTrivia()
	return p.tok.Start
}

// spanFrom returns the span from start to the end of the last accepted token.
func (p *parser) spanFrom(start int) gmlast.Span {
	return gmlast.Span{Start: start, End: p.prev.End}
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		p.skipTrivia()
		return errorAt(p.tok, MessageNestingTooDeep)
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) document() (*gmlast.Document, error) {
	statements, err := p.statementList()
	if err != nil {
		return nil, err
	}

	if !p.at(TokenEOF) {
		return nil, p.unexpected()
	}

	return &gmlast.Document{
		Base:       gmlast.At(gmlast.Span{Start: 0, End: len(p.src)}),
		Statements: statements,
	}, nil
}
