package docbuilder

import (
	"github.com/yaklabco/gmlfmt/pkg/doc"
	"github.com/yaklabco/gmlfmt/pkg/gmlast"
)

// render renders n without its attached comments.
func (b *builder) render(n gmlast.Node) doc.Doc {
	switch n := n.(type) {
	case *gmlast.Document:
		if len(n.Statements) == 0 {
			return b.danglingLines(n)
		}
		return b.lines(n.Statements, semicolon)

	case *gmlast.Block:
		return b.block(n, n.Statements)

	case *gmlast.VariableDeclarationList:
		return b.variableDeclarationList(n)
	case *gmlast.VariableDeclarator:
		if gmlast.IsNil(n.Init) {
			return b.print(n.Name)
		}
		return doc.Cat(b.print(n.Name), doc.Text(" = "), b.print(n.Init))

	case *gmlast.IfStatement:
		return b.ifStatement(n)
	case *gmlast.DoStatement:
		return doc.Cat(
			doc.Text("do"), b.body(n.Body),
			doc.HardLine, doc.Text("until "), b.condition(n.Test),
		)
	case *gmlast.WhileStatement:
		return doc.Cat(doc.Text("while "), b.condition(n.Test), b.body(n.Body))
	case *gmlast.RepeatStatement:
		return doc.Cat(doc.Text("repeat "), b.condition(n.Count), b.body(n.Body))
	case *gmlast.WithStatement:
		return doc.Cat(doc.Text("with "), b.condition(n.Object), b.body(n.Body))
	case *gmlast.ForStatement:
		return b.forStatement(n)

	case *gmlast.SwitchStatement:
		return doc.Cat(doc.Text("switch "), b.condition(n.Discriminant), doc.HardLine, b.print(n.Cases))
	case *gmlast.SwitchBlock:
		cases := make([]gmlast.Node, len(n.Cases))
		for i, c := range n.Cases {
			cases[i] = c
		}
		return b.block(n, cases)
	case *gmlast.SwitchCase:
		return b.switchCase(n)

	case *gmlast.ContinueStatement:
		return doc.Text("continue")
	case *gmlast.BreakStatement:
		return doc.Text("break")
	case *gmlast.ExitStatement:
		return doc.Text("exit")
	case *gmlast.ReturnStatement:
		return b.keywordArgument("return", n.Argument)
	case *gmlast.ThrowStatement:
		return b.keywordArgument("throw", n.Argument)
	case *gmlast.DeleteStatement:
		return b.keywordArgument("delete", n.Argument)

	case *gmlast.RegionStatement:
		directive := "#region"
		if n.IsEnd {
			directive = "#endregion"
		}
		if n.Name == "" {
			return doc.Text(directive)
		}
		return doc.Text(directive + " " + n.Name)
	case *gmlast.DefineStatement:
		if n.Name == "" {
			return doc.Text("#define")
		}
		return doc.Text("#define " + n.Name)
	case *gmlast.MacroDeclaration:
		if n.Body == "" {
			return doc.Text("#macro " + n.Name)
		}
		return doc.Cat(doc.Text("#macro "+n.Name+" "), doc.Verbatim(n.Body))

	case *gmlast.TryStatement:
		parts := []doc.Doc{doc.Text("try"), b.body(n.Body)}
		if n.Handler != nil {
			parts = append(parts, doc.HardLine, b.print(n.Handler))
		}
		if n.Finalizer != nil {
			parts = append(parts, doc.HardLine, b.print(n.Finalizer))
		}
		return doc.Cat(parts...)
	case *gmlast.CatchClause:
		if n.Param == nil {
			return doc.Cat(doc.Text("catch"), b.body(n.Body))
		}
		return doc.Cat(doc.Text("catch ("), b.print(n.Param), doc.Text(")"), b.body(n.Body))
	case *gmlast.FinallyClause:
		return doc.Cat(doc.Text("finally"), b.body(n.Body))

	case *gmlast.EnumDeclaration:
		return doc.Cat(doc.Text("enum "), b.print(n.Name), doc.HardLine, b.print(n.Members))
	case *gmlast.EnumBlock:
		members := make([]gmlast.Node, len(n.Members))
		for i, m := range n.Members {
			members[i] = m
		}
		return b.enumBlock(n, members)
	case *gmlast.EnumMember:
		if gmlast.IsNil(n.Init) {
			return b.print(n.Name)
		}
		return doc.Cat(b.print(n.Name), doc.Text(" = "), b.print(n.Init))

	case *gmlast.FunctionDeclaration:
		return b.functionDeclaration(n)
	case *gmlast.ParameterList:
		params := make([]gmlast.Node, len(n.Params))
		for i, p := range n.Params {
			params[i] = p
		}
		return b.delimited(n, "(", ")", params, false, false)
	case *gmlast.Parameter:
		if gmlast.IsNil(n.Default) {
			return b.print(n.Name)
		}
		return doc.Cat(b.print(n.Name), doc.Text(" = "), b.print(n.Default))
	case *gmlast.ConstructorClause:
		if n.Parent == nil {
			return doc.Text("constructor")
		}
		return doc.Cat(doc.Text(": "), b.print(n.Parent), b.print(n.Args), doc.Text(" constructor"))
	}

	return b.renderExpression(n)
}

func (b *builder) variableDeclarationList(n *gmlast.VariableDeclarationList) doc.Doc {
	if len(n.Declarations) == 1 {
		return doc.Cat(doc.Text(n.Modifier+" "), b.print(n.Declarations[0]))
	}

	parts := make([]doc.Doc, 0, 2*len(n.Declarations))
	for i, d := range n.Declarations {
		var sep doc.Doc
		if i > 0 {
			parts = append(parts, doc.SpaceLine)
		}
		if i < len(n.Declarations)-1 {
			sep = doc.Text(",")
		}
		parts = append(parts, b.printNode(d, sep, exprContext))
	}
	return doc.NewGroup(doc.Text(n.Modifier+" "), doc.Indented(parts...))
}

// condition renders a controlling expression in parentheses. The parser
// strips one level of source parentheses, so they are always added here.
func (b *builder) condition(n gmlast.Node) doc.Doc {
	return doc.Cat(doc.Text("("), b.print(n), doc.Text(")"))
}

func (b *builder) ifStatement(n *gmlast.IfStatement) doc.Doc {
	parts := []doc.Doc{doc.Text("if "), b.condition(n.Test), b.body(n.Consequent)}
	if gmlast.IsNil(n.Alternate) {
		return doc.Cat(parts...)
	}

	parts = append(parts, doc.HardLine, doc.Text("else"))
	if _, ok := n.Alternate.(*gmlast.IfStatement); ok {
		parts = append(parts, doc.Space, b.printNode(n.Alternate, nil, lineContext))
	} else {
		parts = append(parts, b.body(n.Alternate))
	}
	return doc.Cat(parts...)
}

func (b *builder) forStatement(n *gmlast.ForStatement) doc.Doc {
	parts := []doc.Doc{doc.Text("for (")}
	if !gmlast.IsNil(n.Init) {
		parts = append(parts, b.print(n.Init))
	}
	parts = append(parts, doc.Text(";"))
	if !gmlast.IsNil(n.Test) {
		parts = append(parts, doc.Space, b.print(n.Test))
	}
	parts = append(parts, doc.Text(";"))
	if !gmlast.IsNil(n.Update) {
		parts = append(parts, doc.Space, b.print(n.Update))
	}
	parts = append(parts, doc.Text(")"), b.body(n.Body))
	return doc.Cat(parts...)
}

func (b *builder) switchCase(n *gmlast.SwitchCase) doc.Doc {
	var head doc.Doc = doc.Text("default:")
	if !gmlast.IsNil(n.Test) {
		head = doc.Cat(doc.Text("case "), b.print(n.Test), doc.Text(":"))
	}
	if len(n.Body) == 0 {
		return head
	}
	return doc.Cat(head, doc.Indented(doc.HardLine, b.lines(n.Body, semicolon)))
}

func (b *builder) keywordArgument(keyword string, arg gmlast.Node) doc.Doc {
	if gmlast.IsNil(arg) {
		return doc.Text(keyword)
	}
	return doc.Cat(doc.Text(keyword+" "), b.print(arg))
}

// enumBlock always places one member per line, each followed by a comma.
func (b *builder) enumBlock(n gmlast.Node, members []gmlast.Node) doc.Doc {
	var inner doc.Doc
	switch {
	case len(members) > 0:
		inner = b.lines(members, func(gmlast.Node) doc.Doc { return doc.Text(",") })
	default:
		inner = b.danglingLines(n)
	}
	if inner == nil {
		return doc.Cat(doc.Text("{"), doc.HardLine, doc.Text("}"))
	}
	return doc.Cat(doc.Text("{"), doc.Indented(doc.HardLine, inner), doc.HardLine, doc.Text("}"))
}

func (b *builder) functionDeclaration(n *gmlast.FunctionDeclaration) doc.Doc {
	parts := []doc.Doc{doc.Text("function")}
	if n.Name != nil {
		parts = append(parts, doc.Space, b.print(n.Name))
	}
	parts = append(parts, b.print(n.Params))
	if n.Constructor != nil {
		parts = append(parts, doc.Space, b.print(n.Constructor))
	}
	parts = append(parts, b.body(n.Body))
	return doc.Cat(parts...)
}
