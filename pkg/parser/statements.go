package parser

import (
	"strings"
	"unicode"

	"github.com/yaklabco/gmlfmt/pkg/gmlast"
)

func (p *parser) statementList() ([]gmlast.Node, error) {
	var statements []gmlast.Node

	for !p.at(TokenEOF) {
		if p.accept(TokenSemiColon) {
			continue
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		if stmt == nil {
			break
		}
		statements = append(statements, stmt)
	}

	return statements, nil
}

// statement parses one statement. It returns nil without error when the
// next token cannot start a statement.
func (p *parser) statement() (gmlast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	p.skipTrivia()
	switch p.tok.Kind {
	case TokenOpenBrace:
		return p.block()
	case TokenVar, TokenStatic, TokenGlobalVar:
		return p.variableDeclarationList()
	case TokenIf:
		return p.ifStatement()
	case TokenFunction:
		return p.functionDeclaration()
	case TokenDo:
		return p.doStatement()
	case TokenWhile:
		return p.whileStatement()
	case TokenWith:
		return p.withStatement()
	case TokenRepeat:
		return p.repeatStatement()
	case TokenFor:
		return p.forStatement()
	case TokenThrow, TokenReturn, TokenDelete:
		return p.argumentStatement()
	case TokenContinue, TokenBreak, TokenExit:
		return p.keywordStatement()
	case TokenRegion, TokenEndRegion:
		return p.regionStatement()
	case TokenSwitch:
		return p.switchStatement()
	case TokenTry:
		return p.tryStatement()
	case TokenDefine:
		return p.defineStatement()
	case TokenEnum:
		return p.enumDeclaration()
	case TokenMacro:
		return p.macroDeclaration()
	}

	return p.assignmentOrExpressionStatement()
}

// body parses a required statement, such as the body of a loop.
func (p *parser) body() (gmlast.Node, error) {
	return p.require(p.statement())
}

func (p *parser) block() (gmlast.Node, error) {
	start := p.start()
	if !p.accept(TokenOpenBrace) {
		return nil, nil
	}

	statements, err := p.statementList()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenCloseBrace); err != nil {
		return nil, err
	}

	return &gmlast.Block{Base: gmlast.At(p.spanFrom(start)), Statements: statements}, nil
}

func (p *parser) variableDeclarationList() (gmlast.Node, error) {
	start := p.start()
	if !p.accept(TokenVar, TokenStatic, TokenGlobalVar) {
		return nil, nil
	}
	modifier := p.prev.Text

	// "var var x" collapses to a single modifier.
	for p.accept(TokenVar) {
	}

	var decls []*gmlast.VariableDeclarator
	for {
		decl, err := p.variableDeclarator()
		if err != nil {
			return nil, err
		}
		if decl == nil {
			return nil, p.unexpected()
		}
		decls = append(decls, decl)

		if !p.accept(TokenComma) {
			break
		}
	}

	return &gmlast.VariableDeclarationList{
		Base:         gmlast.At(p.spanFrom(start)),
		Modifier:     modifier,
		Declarations: decls,
	}, nil
}

func (p *parser) variableDeclarator() (*gmlast.VariableDeclarator, error) {
	start := p.start()
	name := p.identifier()
	if name == nil {
		return nil, nil
	}

	var init gmlast.Node
	if p.accept(TokenAssign) {
		var err error
		if init, err = p.require(p.expression()); err != nil {
			return nil, err
		}
	}

	return &gmlast.VariableDeclarator{Base: gmlast.At(p.spanFrom(start)), Name: name, Init: init}, nil
}

var assignmentOperators = []TokenKind{
	TokenAssign,
	TokenMultiplyAssign,
	TokenDivideAssign,
	TokenPlusAssign,
	TokenMinusAssign,
	TokenModulusAssign,
	TokenLeftShiftAssign,
	TokenRightShiftAssign,
	TokenBitAndAssign,
	TokenBitXorAssign,
	TokenBitOrAssign,
	TokenNullCoalesceAssign,
}

func (p *parser) assignmentOrExpressionStatement() (gmlast.Node, error) {
	start := p.start()
	left, err := p.unary()
	if err != nil || left == nil {
		return nil, err
	}

	// Calls and increments stand alone as statements.
	switch v := left.(type) {
	case *gmlast.CallExpression:
		return left, nil
	case *gmlast.UnaryExpression:
		if v.Operator == "++" || v.Operator == "--" {
			return left, nil
		}
	}

	if !p.accept(assignmentOperators...) {
		p.skipTrivia()
		if p.err != nil {
			return nil, p.err
		}
		return nil, errorAt(p.tok, "unexpected expression")
	}
	operator := p.prev.Text

	right, err := p.require(p.expression())
	if err != nil {
		return nil, err
	}

	return &gmlast.AssignmentExpression{
		Base:     gmlast.At(p.spanFrom(start)),
		Operator: operator,
		Left:     left,
		Right:    right,
	}, nil
}

// condition parses the controlling expression of a statement. One level of
// parentheses around it is dropped; the printer always supplies them.
func (p *parser) condition() (gmlast.Node, error) {
	expr, err := p.require(p.expression())
	if err != nil {
		return nil, err
	}
	if paren, ok := expr.(*gmlast.ParenthesizedExpression); ok {
		return paren.Expr, nil
	}
	return expr, nil
}

func (p *parser) ifStatement() (gmlast.Node, error) {
	start := p.start()
	if !p.accept(TokenIf) {
		return nil, nil
	}

	test, err := p.condition()
	if err != nil {
		return nil, err
	}
	p.accept(TokenThen)

	consequent, err := p.body()
	if err != nil {
		return nil, err
	}

	var alternate gmlast.Node
	if p.accept(TokenElse) {
		if alternate, err = p.body(); err != nil {
			return nil, err
		}
	}

	return &gmlast.IfStatement{
		Base:       gmlast.At(p.spanFrom(start)),
		Test:       test,
		Consequent: consequent,
		Alternate:  alternate,
	}, nil
}

func (p *parser) doStatement() (gmlast.Node, error) {
	start := p.start()
	if !p.accept(TokenDo) {
		return nil, nil
	}

	body, err := p.body()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenUntil); err != nil {
		return nil, err
	}
	test, err := p.condition()
	if err != nil {
		return nil, err
	}

	return &gmlast.DoStatement{Base: gmlast.At(p.spanFrom(start)), Body: body, Test: test}, nil
}

func (p *parser) whileStatement() (gmlast.Node, error) {
	start := p.start()
	if !p.accept(TokenWhile) {
		return nil, nil
	}

	test, err := p.condition()
	if err != nil {
		return nil, err
	}
	body, err := p.body()
	if err != nil {
		return nil, err
	}

	return &gmlast.WhileStatement{Base: gmlast.At(p.spanFrom(start)), Test: test, Body: body}, nil
}

func (p *parser) repeatStatement() (gmlast.Node, error) {
	start := p.start()
	if !p.accept(TokenRepeat) {
		return nil, nil
	}

	count, err := p.condition()
	if err != nil {
		return nil, err
	}
	body, err := p.body()
	if err != nil {
		return nil, err
	}

	return &gmlast.RepeatStatement{Base: gmlast.At(p.spanFrom(start)), Count: count, Body: body}, nil
}

func (p *parser) withStatement() (gmlast.Node, error) {
	start := p.start()
	if !p.accept(TokenWith) {
		return nil, nil
	}

	object, err := p.condition()
	if err != nil {
		return nil, err
	}
	body, err := p.body()
	if err != nil {
		return nil, err
	}

	return &gmlast.WithStatement{Base: gmlast.At(p.spanFrom(start)), Object: object, Body: body}, nil
}

func (p *parser) forStatement() (gmlast.Node, error) {
	start := p.start()
	if !p.accept(TokenFor) {
		return nil, nil
	}
	if err := p.expect(TokenOpenParen); err != nil {
		return nil, err
	}

	init, err := p.statement()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenSemiColon); err != nil {
		return nil, err
	}

	test, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenSemiColon); err != nil {
		return nil, err
	}

	update, err := p.statement()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenCloseParen); err != nil {
		return nil, err
	}

	body, err := p.body()
	if err != nil {
		return nil, err
	}

	return &gmlast.ForStatement{
		Base:   gmlast.At(p.spanFrom(start)),
		Init:   init,
		Test:   test,
		Update: update,
		Body:   body,
	}, nil
}

func (p *parser) switchStatement() (gmlast.Node, error) {
	start := p.start()
	if !p.accept(TokenSwitch) {
		return nil, nil
	}

	discriminant, err := p.condition()
	if err != nil {
		return nil, err
	}

	blockStart := p.start()
	if err := p.expect(TokenOpenBrace); err != nil {
		return nil, err
	}

	var cases []*gmlast.SwitchCase
	for !p.at(TokenEOF) {
		c, err := p.switchCase()
		if err != nil {
			return nil, err
		}
		if c == nil {
			break
		}
		cases = append(cases, c)
	}

	if err := p.expect(TokenCloseBrace); err != nil {
		return nil, err
	}

	return &gmlast.SwitchStatement{
		Base:         gmlast.At(p.spanFrom(start)),
		Discriminant: discriminant,
		Cases:        &gmlast.SwitchBlock{Base: gmlast.At(p.spanFrom(blockStart)), Cases: cases},
	}, nil
}

func (p *parser) switchCase() (*gmlast.SwitchCase, error) {
	start := p.start()

	var test gmlast.Node
	switch {
	case p.accept(TokenCase):
		var err error
		if test, err = p.require(p.expression()); err != nil {
			return nil, err
		}
	case p.accept(TokenDefault):
	default:
		return nil, nil
	}

	if err := p.expect(TokenColon); err != nil {
		return nil, err
	}

	body, err := p.statementList()
	if err != nil {
		return nil, err
	}

	return &gmlast.SwitchCase{Base: gmlast.At(p.spanFrom(start)), Test: test, Body: body}, nil
}

func (p *parser) keywordStatement() (gmlast.Node, error) {
	switch {
	case p.accept(TokenContinue):
		return &gmlast.ContinueStatement{Base: gmlast.At(p.spanFrom(p.prev.Start))}, nil
	case p.accept(TokenBreak):
		return &gmlast.BreakStatement{Base: gmlast.At(p.spanFrom(p.prev.Start))}, nil
	case p.accept(TokenExit):
		return &gmlast.ExitStatement{Base: gmlast.At(p.spanFrom(p.prev.Start))}, nil
	}
	return nil, nil
}

// argumentStatement parses return, throw and delete, each of which takes an
// optional expression.
func (p *parser) argumentStatement() (gmlast.Node, error) {
	start := p.start()
	if !p.accept(TokenReturn, TokenThrow, TokenDelete) {
		return nil, nil
	}
	keyword := p.prev.Kind

	arg, err := p.expression()
	if err != nil {
		return nil, err
	}

	base := gmlast.At(p.spanFrom(start))
	switch keyword {
	case TokenThrow:
		return &gmlast.ThrowStatement{Base: base, Argument: arg}, nil
	case TokenDelete:
		return &gmlast.DeleteStatement{Base: base, Argument: arg}, nil
	default:
		return &gmlast.ReturnStatement{Base: base, Argument: arg}, nil
	}
}

func (p *parser) regionStatement() (gmlast.Node, error) {
	start := p.start()
	if !p.accept(TokenRegion, TokenEndRegion) {
		return nil, nil
	}
	isEnd := p.prev.Kind == TokenEndRegion

	var name string
	if p.accept(TokenRegionName) {
		name = p.prev.Text
	}

	return &gmlast.RegionStatement{Base: gmlast.At(p.spanFrom(start)), Name: name, IsEnd: isEnd}, nil
}

func (p *parser) defineStatement() (gmlast.Node, error) {
	start := p.start()
	if !p.accept(TokenDefine) {
		return nil, nil
	}

	var name string
	if p.accept(TokenRegionName) {
		name = p.prev.Text
	}

	return &gmlast.DefineStatement{Base: gmlast.At(p.spanFrom(start)), Name: name}, nil
}

// macroDeclaration parses #macro NAME body. The body runs to the end of the
// line, or further when lines end in a backslash, and is kept verbatim.
// Comments inside it are part of the body, not comment groups.
func (p *parser) macroDeclaration() (gmlast.Node, error) {
	start := p.start()
	if !p.accept(TokenMacro) {
		return nil, nil
	}

	p.inMacro = true
	defer func() { p.inMacro = false }()

	if err := p.expect(TokenIdentifier); err != nil {
		return nil, err
	}
	name := p.prev.Text
	end := p.prev.End

	p.acceptRaw(TokenWhitespace)
	bodyStart := p.tok.Start

	continued := false
	for p.tok.Kind != TokenEOF {
		if p.err != nil {
			return nil, p.err
		}
		if p.tok.Kind == TokenLineBreak && !continued {
			break
		}

		switch p.tok.Kind {
		case TokenBackslash:
			continued = true
		case TokenWhitespace, TokenLineBreak:
			if p.tok.Kind == TokenLineBreak {
				continued = false
			}
		default:
			continued = false
		}

		p.prev = p.tok
		if p.tok.Kind != TokenWhitespace && p.tok.Kind != TokenLineBreak {
			end = p.tok.End
		}
		p.advance()
	}
	if p.err != nil {
		return nil, p.err
	}

	body := ""
	if end > bodyStart {
		body = strings.TrimRightFunc(p.src[bodyStart:end], unicode.IsSpace)
	}

	return &gmlast.MacroDeclaration{
		Base: gmlast.At(gmlast.Span{Start: start, End: end}),
		Name: name,
		Body: body,
	}, nil
}

func (p *parser) tryStatement() (gmlast.Node, error) {
	start := p.start()
	if !p.accept(TokenTry) {
		return nil, nil
	}

	body, err := p.body()
	if err != nil {
		return nil, err
	}

	stmt := &gmlast.TryStatement{Body: body}

	catchStart := p.start()
	if p.accept(TokenCatch) {
		handler := &gmlast.CatchClause{}
		if p.accept(TokenOpenParen) {
			if handler.Param = p.identifier(); handler.Param == nil {
				return nil, p.unexpected()
			}
			if err := p.expect(TokenCloseParen); err != nil {
				return nil, err
			}
		}
		if handler.Body, err = p.body(); err != nil {
			return nil, err
		}
		handler.Loc = p.spanFrom(catchStart)
		stmt.Handler = handler
	}

	finallyStart := p.start()
	if p.accept(TokenFinally) {
		finalBody, err := p.body()
		if err != nil {
			return nil, err
		}
		stmt.Finalizer = &gmlast.FinallyClause{Base: gmlast.At(p.spanFrom(finallyStart)), Body: finalBody}
	}

	stmt.Loc = p.spanFrom(start)
	return stmt, nil
}

func (p *parser) enumDeclaration() (gmlast.Node, error) {
	start := p.start()
	if !p.accept(TokenEnum) {
		return nil, nil
	}

	name := p.identifier()
	if name == nil {
		return nil, p.unexpected()
	}

	blockStart := p.start()
	if err := p.expect(TokenOpenBrace); err != nil {
		return nil, err
	}

	items, err := p.delimited(TokenCloseBrace, "}", func() (gmlast.Node, error) {
		member, err := p.enumMember()
		if member == nil {
			return nil, err
		}
		return member, err
	})
	if err != nil {
		return nil, err
	}

	members := make([]*gmlast.EnumMember, 0, len(items))
	for _, item := range items {
		members = append(members, item.(*gmlast.EnumMember))
	}

	return &gmlast.EnumDeclaration{
		Base:    gmlast.At(p.spanFrom(start)),
		Name:    name,
		Members: &gmlast.EnumBlock{Base: gmlast.At(p.spanFrom(blockStart)), Members: members},
	}, nil
}

func (p *parser) enumMember() (*gmlast.EnumMember, error) {
	start := p.start()
	name := p.identifier()
	if name == nil {
		return nil, nil
	}

	var init gmlast.Node
	if p.accept(TokenAssign) {
		var err error
		if init, err = p.require(p.expression()); err != nil {
			return nil, err
		}
	}

	return &gmlast.EnumMember{Base: gmlast.At(p.spanFrom(start)), Name: name, Init: init}, nil
}

// functionDeclaration parses both function statements and function
// expressions; the name is optional in either position.
func (p *parser) functionDeclaration() (gmlast.Node, error) {
	start := p.start()
	if !p.accept(TokenFunction) {
		return nil, nil
	}

	fn := &gmlast.FunctionDeclaration{Name: p.identifier()}

	params, err := p.parameterList()
	if err != nil {
		return nil, err
	}
	if params == nil {
		return nil, p.unexpected()
	}
	fn.Params = params

	clauseStart := p.start()
	switch {
	case p.accept(TokenColon):
		// The parent name cannot be "constructor".
		if err := p.expect(TokenIdentifier); err != nil {
			return nil, err
		}
		parent := &gmlast.Identifier{Base: gmlast.At(p.spanFrom(p.prev.Start)), Name: p.prev.Text}

		args, err := p.argumentList()
		if err != nil {
			return nil, err
		}
		if args == nil {
			return nil, p.unexpected()
		}
		if err := p.expect(TokenConstructor); err != nil {
			return nil, err
		}
		fn.Constructor = &gmlast.ConstructorClause{
			Base:   gmlast.At(p.spanFrom(clauseStart)),
			Parent: parent,
			Args:   args,
		}
	case p.accept(TokenConstructor):
		fn.Constructor = &gmlast.ConstructorClause{Base: gmlast.At(p.spanFrom(clauseStart))}
	}

	if fn.Body, err = p.body(); err != nil {
		return nil, err
	}

	fn.Loc = p.spanFrom(start)
	return fn, nil
}

func (p *parser) parameterList() (*gmlast.ParameterList, error) {
	start := p.start()
	if !p.accept(TokenOpenParen) {
		return nil, nil
	}

	list := &gmlast.ParameterList{}
	if p.accept(TokenCloseParen) {
		list.Loc = p.spanFrom(start)
		return list, nil
	}

	for {
		param, err := p.parameter()
		if err != nil {
			return nil, err
		}
		if param == nil {
			return nil, p.unexpected()
		}
		list.Params = append(list.Params, param)

		if p.accept(TokenComma) {
			continue
		}
		if p.accept(TokenCloseParen) {
			break
		}
		return nil, p.unexpected()
	}

	list.Loc = p.spanFrom(start)
	return list, nil
}

func (p *parser) parameter() (*gmlast.Parameter, error) {
	start := p.start()
	name := p.identifier()
	if name == nil {
		return nil, nil
	}

	var def gmlast.Node
	if p.accept(TokenAssign) {
		var err error
		if def, err = p.require(p.expression()); err != nil {
			return nil, err
		}
	}

	return &gmlast.Parameter{Base: gmlast.At(p.spanFrom(start)), Name: name, Default: def}, nil
}
