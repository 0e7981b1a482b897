package parser

import (
	"slices"

	"github.com/yaklabco/gmlfmt/pkg/gmlast"
)

// expression parses a function expression or a conditional expression.
// It returns nil without error when no expression starts here.
func (p *parser) expression() (gmlast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if p.at(TokenFunction) {
		return p.functionDeclaration()
	}
	return p.conditional()
}

func (p *parser) conditional() (gmlast.Node, error) {
	start := p.start()
	test, err := p.bitXor()
	if err != nil || test == nil {
		return nil, err
	}

	if !p.accept(TokenQuestionMark) {
		return test, nil
	}

	consequent, err := p.require(p.expression())
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	alternate, err := p.require(p.expression())
	if err != nil {
		return nil, err
	}

	return &gmlast.ConditionalExpression{
		Base:       gmlast.At(p.spanFrom(start)),
		Test:       test,
		Consequent: consequent,
		Alternate:  alternate,
	}, nil
}

// binary parses a left-associative chain of next separated by any of the
// operator kinds.
func (p *parser) binary(next func() (gmlast.Node, error), kinds ...TokenKind) (gmlast.Node, error) {
	start := p.start()
	left, err := next()
	if err != nil || left == nil {
		return nil, err
	}

	links := 0
	defer func() { p.depth -= links }()

	for p.accept(kinds...) {
		// Each link nests the tree one level deeper.
		links++
		if err := p.enter(); err != nil {
			return nil, err
		}
		operator := binaryOperator(p.prev)
		right, err := p.require(next())
		if err != nil {
			return nil, err
		}
		left = &gmlast.BinaryExpression{
			Base:     gmlast.At(p.spanFrom(start)),
			Operator: operator,
			Left:     left,
			Right:    right,
		}
	}

	return left, nil
}

// The precedence ladder, lowest first.

func (p *parser) bitXor() (gmlast.Node, error) {
	return p.binary(p.bitOr, TokenBitXor)
}

func (p *parser) bitOr() (gmlast.Node, error) {
	return p.binary(p.bitAnd, TokenBitOr)
}

func (p *parser) bitAnd() (gmlast.Node, error) {
	return p.binary(p.nullCoalescing, TokenBitAnd)
}

func (p *parser) nullCoalescing() (gmlast.Node, error) {
	return p.binary(p.logicalXor, TokenNullCoalesce)
}

func (p *parser) logicalXor() (gmlast.Node, error) {
	return p.binary(p.logicalAnd, TokenXor)
}

func (p *parser) logicalAnd() (gmlast.Node, error) {
	return p.binary(p.logicalOr, TokenAnd)
}

func (p *parser) logicalOr() (gmlast.Node, error) {
	return p.binary(p.equality, TokenOr)
}

func (p *parser) equality() (gmlast.Node, error) {
	return p.binary(p.relational, TokenEquals, TokenAssign, TokenNotEquals)
}

func (p *parser) relational() (gmlast.Node, error) {
	return p.binary(p.shift, TokenLessThan, TokenGreaterThan, TokenLessThanEquals, TokenGreaterThanEquals)
}

func (p *parser) shift() (gmlast.Node, error) {
	return p.binary(p.additive, TokenLeftShift, TokenRightShift)
}

func (p *parser) additive() (gmlast.Node, error) {
	return p.binary(p.multiplicative, TokenPlus, TokenMinus)
}

func (p *parser) multiplicative() (gmlast.Node, error) {
	return p.binary(p.unary, TokenMultiply, TokenDivide, TokenModulo, TokenIntegerDivide)
}

// binaryOperator returns the canonical spelling of a binary operator token.
func binaryOperator(tok Token) string {
	switch tok.Kind {
	case TokenAnd:
		return "&&"
	case TokenOr:
		return "||"
	case TokenXor:
		return "^^"
	case TokenModulo:
		return "%"
	case TokenIntegerDivide:
		return "div"
	case TokenNotEquals:
		return "!="
	case TokenEquals, TokenAssign:
		return "=="
	}
	return tok.Text
}

func (p *parser) unary() (gmlast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	start := p.start()
	if !p.accept(TokenPlus, TokenMinus, TokenNot, TokenBitNot, TokenPlusPlus, TokenMinusMinus) {
		return p.primary()
	}
	op := p.prev

	var (
		arg gmlast.Node
		err error
	)
	if op.Kind == TokenPlusPlus || op.Kind == TokenMinusMinus {
		// Increment and decrement must touch their operand.
		if p.tok.Kind == TokenWhitespace || p.tok.Kind == TokenLineBreak {
			return nil, unexpectedToken(op)
		}
		arg, err = p.require(p.primary())
	} else {
		arg, err = p.require(p.unary())
	}
	if err != nil {
		return nil, err
	}

	operator := op.Text
	if op.Kind == TokenNot {
		operator = "!"
	}

	return &gmlast.UnaryExpression{
		Base:     gmlast.At(p.spanFrom(start)),
		Operator: operator,
		Argument: arg,
		Prefix:   true,
	}, nil
}

var accessorKinds = []TokenKind{
	TokenOpenBracket,
	TokenListAccessor,
	TokenMapAccessor,
	TokenGridAccessor,
	TokenArrayAccessor,
	TokenStructAccessor,
}

// suffixKinds start a member, index or call suffix.
var suffixKinds = append(slices.Clone(accessorKinds), TokenDot, TokenOpenParen)

// primary parses a primary expression followed by any chain of member,
// index and call suffixes, and at most one postfix increment.
func (p *parser) primary() (gmlast.Node, error) {
	start := p.start()
	object, err := p.primaryStart()
	if err != nil || object == nil {
		return nil, err
	}

	links := 0
	defer func() { p.depth -= links }()

	for !p.at(TokenEOF) {
		// Postfix operators only bind when adjacent to the operand.
		if p.prev.End == p.tok.Start && (p.acceptRaw(TokenPlusPlus) || p.acceptRaw(TokenMinusMinus)) {
			return &gmlast.UnaryExpression{
				Base:     gmlast.At(p.spanFrom(start)),
				Operator: p.prev.Text,
				Argument: object,
			}, nil
		}

		if p.at(suffixKinds...) {
			links++
			if err := p.enter(); err != nil {
				return nil, err
			}
		}

		switch {
		case p.accept(accessorKinds...):
			accessor := p.prev.Text[1:]
			indices, err := p.indexList()
			if err != nil {
				return nil, err
			}
			object = &gmlast.MemberIndexExpression{
				Base:     gmlast.At(p.spanFrom(start)),
				Object:   object,
				Accessor: accessor,
				Indices:  indices,
			}
		case p.accept(TokenDot):
			property := p.identifier()
			if property == nil {
				return nil, p.unexpected()
			}
			object = &gmlast.MemberDotExpression{
				Base:     gmlast.At(p.spanFrom(start)),
				Object:   object,
				Property: property,
			}
		case p.at(TokenOpenParen):
			args, err := p.argumentList()
			if err != nil {
				return nil, err
			}
			object = &gmlast.CallExpression{
				Base:   gmlast.At(p.spanFrom(start)),
				Callee: object,
				Args:   args,
			}
		default:
			return object, nil
		}
	}

	return object, nil
}

func (p *parser) indexList() ([]gmlast.Node, error) {
	first, err := p.require(p.expression())
	if err != nil {
		return nil, err
	}
	indices := []gmlast.Node{first}

	for {
		switch {
		case p.accept(TokenComma):
			next, err := p.require(p.expression())
			if err != nil {
				return nil, err
			}
			indices = append(indices, next)
		case p.accept(TokenCloseBracket):
			return indices, nil
		default:
			return nil, p.unexpected()
		}
	}
}

func (p *parser) primaryStart() (gmlast.Node, error) {
	start := p.start()

	lit, err := p.literal()
	if err != nil || lit != nil {
		return lit, err
	}

	if id := p.identifier(); id != nil {
		return id, nil
	}

	if p.accept(TokenNew) {
		expr := &gmlast.NewExpression{Callee: p.identifier()}
		if expr.Args, err = p.argumentList(); err != nil {
			return nil, err
		}
		if expr.Args == nil {
			return nil, p.unexpected()
		}
		expr.Loc = p.spanFrom(start)
		return expr, nil
	}

	if p.accept(TokenOpenParen) {
		inner, err := p.require(p.expression())
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenCloseParen); err != nil {
			return nil, err
		}
		return &gmlast.ParenthesizedExpression{Base: gmlast.At(p.spanFrom(start)), Expr: inner}, nil
	}

	return nil, nil
}

// identifier accepts an identifier. The constructor keyword doubles as an
// identifier in expression position.
func (p *parser) identifier() *gmlast.Identifier {
	if !p.accept(TokenIdentifier, TokenConstructor) {
		return nil
	}
	return &gmlast.Identifier{Base: gmlast.At(p.spanFrom(p.prev.Start)), Name: p.prev.Text}
}

func (p *parser) argumentList() (*gmlast.ArgumentList, error) {
	start := p.start()
	if !p.accept(TokenOpenParen) {
		return nil, nil
	}

	list := &gmlast.ArgumentList{}
	if p.accept(TokenCloseParen) {
		list.Loc = p.spanFrom(start)
		return list, nil
	}

	// An omitted argument, as in f(, 1) or f(1, , 2), reads as undefined.
	afterSeparator := true
	omitted := func() gmlast.Node {
		pos := p.prev.Start
		return &gmlast.UndefinedArgument{Base: gmlast.At(gmlast.Span{Start: pos, End: pos})}
	}

	for !p.at(TokenEOF) {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		if arg != nil {
			if !afterSeparator {
				p.skipTrivia()
				return nil, expectedSymbol(p.tok, ",")
			}
			afterSeparator = false
			list.Args = append(list.Args, arg)
		}

		switch {
		case p.accept(TokenComma):
			if afterSeparator {
				list.Args = append(list.Args, omitted())
			}
			afterSeparator = true
		case p.accept(TokenCloseParen):
			if afterSeparator && len(list.Args) > 0 {
				list.Args = append(list.Args, omitted())
			}
			list.Loc = p.spanFrom(start)
			return list, nil
		default:
			return nil, p.unexpected()
		}
	}

	return nil, p.unexpected()
}
