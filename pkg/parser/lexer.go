package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Mode selects how the lexer interprets the next characters.
type Mode int

const (
	// ModeDefault tokenizes language syntax.
	ModeDefault Mode = iota

	// ModeTemplate tokenizes the raw text following the closing brace of a
	// template string interpolation, up to the next '{' or the closing quote.
	ModeTemplate
)

// Lexer produces tokens one at a time from a source string.
// Trivia (whitespace, line breaks and comments) are returned as tokens.
type Lexer struct {
	src  string
	pos  int
	line int
	col  int
	mode Mode

	// prev is the kind of the last non-trivia token, used to tell accessor
	// brackets such as "[$" apart from an array literal holding "$FF".
	prev TokenKind

	// expectName is set after #region, #endregion and #define: the rest of
	// the line is a single name token.
	expectName bool
}

// NewLexer returns a lexer positioned at the start of src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1, prev: TokenInvalid}
}

// SetMode switches the lexer mode for the next token.
func (l *Lexer) SetMode(m Mode) {
	l.mode = m
}

// Mode returns the current lexer mode.
func (l *Lexer) Mode() Mode {
	return l.mode
}

// Tokenize lexes the whole of src in default mode. Template strings with
// interpolations cannot be fully tokenized without a parser driving the
// mode switches; their tail is returned as ordinary tokens.
func Tokenize(src string) ([]Token, error) {
	lex := NewLexer(src)
	var out []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return out, err
		}
		out = append(out, tok)
		if tok.Kind == TokenEOF {
			return out, nil
		}
	}
}

// Next returns the next token. At the end of input it returns a TokenEOF
// token, repeatedly if called again.
func (l *Lexer) Next() (Token, error) {
	tok, err := l.scan()
	if err != nil {
		return Token{Kind: TokenInvalid, Start: l.pos, End: l.pos, Line: l.line, Column: l.col}, err
	}
	if !tok.Kind.IsTrivia() {
		l.prev = tok.Kind
	}
	return tok, nil
}

func (l *Lexer) scan() (Token, error) {
	if l.pos >= len(l.src) {
		return Token{Kind: TokenEOF, Start: len(l.src), End: len(l.src), Line: l.line, Column: l.col}, nil
	}

	if l.mode == ModeTemplate {
		return l.scanTemplateText(l.pos, TokenTemplateMiddle, TokenTemplateEnd)
	}

	c := l.src[l.pos]

	if l.expectName {
		switch {
		case isHorizontalSpace(c):
			return l.scanWhitespace(), nil
		case c == '\n' || c == '\r':
			l.expectName = false
		default:
			l.expectName = false
			return l.scanRegionName(), nil
		}
	}

	switch {
	case isHorizontalSpace(c):
		return l.scanWhitespace(), nil
	case c == '\n':
		return l.emit(TokenLineBreak, l.pos+1), nil
	case c == '\r':
		if l.peekByte(1) == '\n' {
			return l.emit(TokenLineBreak, l.pos+2), nil
		}
		return l.emit(TokenLineBreak, l.pos+1), nil
	case c == '/' && l.peekByte(1) == '/':
		end := strings.IndexAny(l.src[l.pos:], "\r\n")
		if end < 0 {
			return l.emit(TokenSingleLineComment, len(l.src)), nil
		}
		return l.emit(TokenSingleLineComment, l.pos+end), nil
	case c == '/' && l.peekByte(1) == '*':
		end := strings.Index(l.src[l.pos+2:], "*/")
		if end < 0 {
			return Token{}, l.errorHere("unterminated multi-line comment")
		}
		return l.emit(TokenMultiLineComment, l.pos+2+end+2), nil
	case c == '"':
		return l.scanString()
	case c == '@' && (l.peekByte(1) == '"' || l.peekByte(1) == '\''):
		return l.scanVerbatimString()
	case c == '$' && l.peekByte(1) == '"':
		return l.scanTemplateText(l.pos+2, TokenTemplateStart, TokenSimpleTemplateString)
	case c == '$' && isHexDigit(l.peekByte(1)):
		return l.emit(TokenHexIntegerLiteral, l.scanWhile(l.pos+1, isHexDigitOrSep)), nil
	case c == '#':
		return l.scanHash()
	case isDigit(c) || (c == '.' && isDigit(l.peekByte(1))):
		return l.scanNumber(), nil
	}

	if r, _ := utf8.DecodeRuneInString(l.src[l.pos:]); isIdentStart(r) {
		return l.scanIdentifier(), nil
	}

	rest := l.src[l.pos:]
	for _, op := range operators {
		if !strings.HasPrefix(rest, op.text) {
			continue
		}
		if len(op.text) == 2 && op.text[0] == '[' && !endsOperand(l.prev) {
			continue
		}
		return l.emit(op.kind, l.pos+len(op.text)), nil
	}

	r, _ := utf8.DecodeRuneInString(rest)
	return Token{}, l.errorHere("unexpected character %q", r)
}

// emit builds a token from the current position to end and advances.
func (l *Lexer) emit(kind TokenKind, end int) Token {
	tok := Token{
		Kind:   kind,
		Text:   l.src[l.pos:end],
		Start:  l.pos,
		End:    end,
		Line:   l.line,
		Column: l.col,
	}
	l.advanceTo(end)
	return tok
}

func (l *Lexer) advanceTo(end int) {
	for l.pos < end {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		l.pos += size
		switch {
		case r == '\n':
			l.line++
			l.col = 1
		case r == '\r' && (l.pos >= len(l.src) || l.src[l.pos] != '\n'):
			l.line++
			l.col = 1
		case r == '\r':
			// Counted with the following \n.
		default:
			l.col++
		}
	}
}

func (l *Lexer) errorHere(format string, args ...any) *SyntaxError {
	return errorAt(Token{Start: l.pos, Line: l.line, Column: l.col}, format, args...)
}

func (l *Lexer) peekByte(offset int) byte {
	if l.pos+offset < len(l.src) {
		return l.src[l.pos+offset]
	}
	return 0
}

func (l *Lexer) scanWhile(from int, pred func(byte) bool) int {
	i := from
	for i < len(l.src) && pred(l.src[i]) {
		i++
	}
	return i
}

func (l *Lexer) scanWhitespace() Token {
	return l.emit(TokenWhitespace, l.scanWhile(l.pos, isHorizontalSpace))
}

func (l *Lexer) scanRegionName() Token {
	end := strings.IndexAny(l.src[l.pos:], "\r\n")
	if end < 0 {
		end = len(l.src) - l.pos
	}
	text := strings.TrimRightFunc(l.src[l.pos:l.pos+end], unicode.IsSpace)
	return l.emit(TokenRegionName, l.pos+len(text))
}

func (l *Lexer) scanString() (Token, error) {
	i := l.pos + 1
	for i < len(l.src) {
		switch l.src[i] {
		case '\\':
			i += 2
			continue
		case '"':
			return l.emit(TokenStringLiteral, i+1), nil
		case '\n', '\r':
			return Token{}, l.errorHere("unterminated string literal")
		}
		i++
	}
	return Token{}, l.errorHere("unterminated string literal")
}

func (l *Lexer) scanVerbatimString() (Token, error) {
	quote := l.src[l.pos+1]
	end := strings.IndexByte(l.src[l.pos+2:], quote)
	if end < 0 {
		return Token{}, l.errorHere("unterminated verbatim string literal")
	}
	return l.emit(TokenVerbatimStringLiteral, l.pos+2+end+1), nil
}

// scanTemplateText scans template text from 'from' up to an opening brace
// (producing open) or the closing quote (producing closed).
func (l *Lexer) scanTemplateText(from int, open, closed TokenKind) (Token, error) {
	i := from
	for i < len(l.src) {
		switch l.src[i] {
		case '\\':
			i += 2
			continue
		case '{':
			return l.emit(open, i+1), nil
		case '"':
			return l.emit(closed, i+1), nil
		case '\n', '\r':
			return Token{}, l.errorHere("unterminated template string")
		}
		i++
	}
	return Token{}, l.errorHere("unterminated template string")
}

func (l *Lexer) scanHash() (Token, error) {
	wordEnd := l.scanWhile(l.pos+1, isIdentByte)
	word := l.src[l.pos+1 : wordEnd]

	if kind, ok := directives[word]; ok {
		if kind != TokenMacro {
			l.expectName = true
		}
		return l.emit(kind, wordEnd), nil
	}

	// #RRGGBB colour literal.
	hexEnd := l.scanWhile(l.pos+1, isHexDigit)
	if hexEnd-l.pos-1 == 6 && hexEnd == wordEnd {
		return l.emit(TokenHexIntegerLiteral, hexEnd), nil
	}

	return Token{}, l.errorHere("unknown directive '#%s'", word)
}

func (l *Lexer) scanNumber() Token {
	c := l.src[l.pos]
	next := l.peekByte(1)

	if c == '0' && (next == 'x' || next == 'X') && isHexDigit(l.peekByte(2)) {
		return l.emit(TokenHexIntegerLiteral, l.scanWhile(l.pos+2, isHexDigitOrSep))
	}
	if c == '0' && (next == 'b' || next == 'B') && isBinaryDigit(l.peekByte(2)) {
		return l.emit(TokenBinaryLiteral, l.scanWhile(l.pos+2, func(b byte) bool {
			return isBinaryDigit(b) || b == '_'
		}))
	}

	i := l.scanWhile(l.pos, isDigitOrSep)
	if i < len(l.src) && l.src[i] == '.' {
		after := byte(0)
		if i+1 < len(l.src) {
			after = l.src[i+1]
		}
		// "5.x" is a member access on 5, "5." and "5.25" are decimals.
		if isDigit(after) || !isIdentByte(after) {
			i = l.scanWhile(i+1, isDigitOrSep)
			return l.emit(TokenDecimalLiteral, i)
		}
	}
	return l.emit(TokenIntegerLiteral, i)
}

func (l *Lexer) scanIdentifier() Token {
	i := l.pos
	for i < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[i:])
		if !isIdentPart(r) {
			break
		}
		i += size
	}
	word := l.src[l.pos:i]
	if kind, ok := keywords[word]; ok {
		return l.emit(kind, i)
	}
	return l.emit(TokenIdentifier, i)
}

// endsOperand reports whether a token of kind k can end an operand, in
// which case a following '[' opens an accessor rather than an array.
func endsOperand(k TokenKind) bool {
	switch k {
	case TokenIdentifier, TokenCloseParen, TokenCloseBracket,
		TokenIntegerLiteral, TokenDecimalLiteral, TokenHexIntegerLiteral, TokenBinaryLiteral,
		TokenStringLiteral, TokenVerbatimStringLiteral, TokenBooleanLiteral,
		TokenUndefined, TokenNoone, TokenSimpleTemplateString, TokenTemplateEnd:
		return true
	}
	return false
}

func isHorizontalSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isDigitOrSep(c byte) bool { return isDigit(c) || c == '_' }

func isBinaryDigit(c byte) bool { return c == '0' || c == '1' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isHexDigitOrSep(c byte) bool { return isHexDigit(c) || c == '_' }

func isIdentByte(c byte) bool {
	return c == '_' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
