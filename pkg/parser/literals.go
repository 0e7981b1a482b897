package parser

import (
	"strings"

	"github.com/yaklabco/gmlfmt/pkg/gmlast"
)

var scalarLiterals = map[TokenKind]gmlast.LiteralKind{
	TokenIntegerLiteral:        gmlast.LiteralInteger,
	TokenDecimalLiteral:        gmlast.LiteralDecimal,
	TokenHexIntegerLiteral:     gmlast.LiteralHex,
	TokenBinaryLiteral:         gmlast.LiteralBinary,
	TokenStringLiteral:         gmlast.LiteralString,
	TokenVerbatimStringLiteral: gmlast.LiteralVerbatimString,
	TokenBooleanLiteral:        gmlast.LiteralBoolean,
	TokenUndefined:             gmlast.LiteralUndefined,
	TokenNoone:                 gmlast.LiteralNoone,
}

func (p *parser) literal() (gmlast.Node, error) {
	p.skipTrivia()

	if kind, ok := scalarLiterals[p.tok.Kind]; ok {
		p.accept(p.tok.Kind)
		return newLiteral(p.prev, kind), nil
	}

	switch p.tok.Kind {
	case TokenSimpleTemplateString, TokenTemplateStart:
		return p.templateLiteral()
	case TokenOpenBracket:
		return p.arrayLiteral()
	case TokenOpenBrace:
		return p.structLiteral()
	}

	return nil, nil
}

// newLiteral builds a literal node, normalizing its text.
func newLiteral(tok Token, kind gmlast.LiteralKind) *gmlast.Literal {
	value := tok.Text
	switch kind {
	case gmlast.LiteralDecimal:
		value = NormalizeDecimal(value)
	case gmlast.LiteralString:
		value = value[1 : len(value)-1]
	}
	return &gmlast.Literal{
		Base:  gmlast.At(gmlast.Span{Start: tok.Start, End: tok.End}),
		Kind:  kind,
		Value: value,
	}
}

// NormalizeDecimal strips redundant leading zeros from a decimal literal,
// keeping one digit on each side of the point: "007.50" becomes "7.50",
// ".5" becomes "0.5" and "5." becomes "5.0". Trailing zeros are kept.
func NormalizeDecimal(text string) string {
	out := strings.TrimLeft(text, "0")
	if out == "" || strings.HasPrefix(out, ".") {
		out = "0" + out
	}
	if strings.HasSuffix(out, ".") {
		out += "0"
	}
	return out
}

func (p *parser) templateLiteral() (gmlast.Node, error) {
	start := p.start()

	if p.accept(TokenSimpleTemplateString) {
		tok := p.prev
		text := &gmlast.TemplateText{
			Base: gmlast.At(gmlast.Span{Start: tok.Start + 2, End: tok.End - 1}),
			Text: tok.Text[2 : len(tok.Text)-1],
		}
		return &gmlast.TemplateLiteral{Base: gmlast.At(p.spanFrom(start)), Parts: []gmlast.Node{text}}, nil
	}

	if !p.accept(TokenTemplateStart) {
		return nil, nil
	}

	head := p.prev
	parts := []gmlast.Node{&gmlast.TemplateText{
		Base: gmlast.At(gmlast.Span{Start: head.Start + 2, End: head.End - 1}),
		Text: head.Text[2 : len(head.Text)-1],
	}}
	exprStart := head.End - 1

	for {
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}

		// The closing brace is consumed in template mode so that the lexer
		// reads the following text as template text.
		p.skipTrivia()
		p.lex.SetMode(ModeTemplate)
		closed := p.accept(TokenCloseBrace)
		p.lex.SetMode(ModeDefault)
		if !closed {
			return nil, p.unexpected()
		}

		if expr != nil {
			parts = append(parts, &gmlast.TemplateExpression{
				Base: gmlast.At(gmlast.Span{Start: exprStart, End: p.prev.End}),
				Expr: expr,
			})
		}

		switch {
		case p.acceptRaw(TokenTemplateMiddle):
			tok := p.prev
			parts = append(parts, &gmlast.TemplateText{
				Base: gmlast.At(gmlast.Span{Start: tok.Start, End: tok.End - 1}),
				Text: tok.Text[:len(tok.Text)-1],
			})
			exprStart = tok.End - 1
		case p.acceptRaw(TokenTemplateEnd):
			tok := p.prev
			parts = append(parts, &gmlast.TemplateText{
				Base: gmlast.At(gmlast.Span{Start: tok.Start, End: tok.End - 1}),
				Text: tok.Text[:len(tok.Text)-1],
			})
			return &gmlast.TemplateLiteral{
				Base:  gmlast.At(p.spanFrom(start)),
				Parts: trimEmptyText(parts),
			}, nil
		default:
			return nil, p.unexpected()
		}
	}
}

// trimEmptyText drops empty text runs at either end of a template.
func trimEmptyText(parts []gmlast.Node) []gmlast.Node {
	isEmpty := func(n gmlast.Node) bool {
		t, ok := n.(*gmlast.TemplateText)
		return ok && t.Text == ""
	}
	if len(parts) > 0 && isEmpty(parts[0]) {
		parts = parts[1:]
	}
	if len(parts) > 0 && isEmpty(parts[len(parts)-1]) {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// delimited parses "item (, item)* ,? close" after the opening token has
// been consumed. An immediate close yields no items.
func (p *parser) delimited(close TokenKind, symbol string, item func() (gmlast.Node, error)) ([]gmlast.Node, error) {
	var items []gmlast.Node
	if p.accept(close) {
		return items, nil
	}

	expectComma := false
	for !p.at(TokenEOF) {
		if expectComma {
			if err := p.expect(TokenComma); err != nil {
				return nil, err
			}
		} else {
			n, err := p.require(item())
			if err != nil {
				return nil, err
			}
			items = append(items, n)
		}
		expectComma = !expectComma

		if p.accept(close) {
			return items, nil
		}
	}

	p.skipTrivia()
	return nil, expectedSymbol(p.tok, symbol)
}

func (p *parser) arrayLiteral() (gmlast.Node, error) {
	start := p.start()
	if !p.accept(TokenOpenBracket) {
		return nil, nil
	}

	elements, err := p.delimited(TokenCloseBracket, "]", p.expression)
	if err != nil {
		return nil, err
	}

	return &gmlast.ArrayExpression{Base: gmlast.At(p.spanFrom(start)), Elements: elements}, nil
}

func (p *parser) structLiteral() (gmlast.Node, error) {
	start := p.start()
	if !p.accept(TokenOpenBrace) {
		return nil, nil
	}

	items, err := p.delimited(TokenCloseBrace, "}", p.structProperty)
	if err != nil {
		return nil, err
	}

	props := make([]*gmlast.StructProperty, 0, len(items))
	for _, item := range items {
		props = append(props, item.(*gmlast.StructProperty))
	}

	return &gmlast.StructExpression{Base: gmlast.At(p.spanFrom(start)), Properties: props}, nil
}

func (p *parser) structProperty() (gmlast.Node, error) {
	start := p.start()

	var name gmlast.Node
	switch {
	case p.accept(TokenIdentifier, TokenConstructor, TokenNoone):
		name = &gmlast.Identifier{Base: gmlast.At(p.spanFrom(p.prev.Start)), Name: p.prev.Text}
	case p.accept(TokenStringLiteral):
		name = newLiteral(p.prev, gmlast.LiteralString)
	default:
		return nil, nil
	}

	if err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	value, err := p.require(p.expression())
	if err != nil {
		return nil, err
	}

	return &gmlast.StructProperty{Base: gmlast.At(p.spanFrom(start)), Name: name, Value: value}, nil
}
