package parser

import (
	"errors"
	"fmt"
)

// ErrSyntax is matched by every *SyntaxError through errors.Is.
var ErrSyntax = errors.New("syntax error")

// MessageNestingTooDeep is the diagnostic used when source nesting exceeds
// the parser's depth limit.
const MessageNestingTooDeep = "nesting too deep"

// SyntaxError reports the first malformed construct in the input. Parsing
// stops at the first error; there is no recovery.
type SyntaxError struct {
	// Line and Column are 1-based positions of the offending token.
	Line   int
	Column int

	// Offset is the byte offset of the offending token.
	Offset int

	// Message describes what was expected or found, e.g.
	// "unexpected ')' [CloseParen]".
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// Is lets errors.Is(err, ErrSyntax) match any syntax error.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

func errorAt(tok Token, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Line:    tok.Line,
		Column:  tok.Column,
		Offset:  tok.Start,
		Message: fmt.Sprintf(format, args...),
	}
}

func unexpectedToken(tok Token) *SyntaxError {
	if tok.Kind == TokenEOF {
		return errorAt(tok, "unexpected end of file")
	}
	return errorAt(tok, "unexpected '%s' [%s]", tok.Text, tok.Kind)
}

func expectedSymbol(tok Token, symbol string) *SyntaxError {
	return errorAt(tok, "expected '%s'", symbol)
}
