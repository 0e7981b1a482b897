package docbuilder

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gmlfmt/pkg/doc"
	"github.com/yaklabco/gmlfmt/pkg/gmlast"
)

func (b *builder) renderExpression(n gmlast.Node) doc.Doc {
	switch n := n.(type) {
	case *gmlast.AssignmentExpression:
		return doc.Cat(b.print(n.Left), doc.Text(" "+n.Operator+" "), b.print(n.Right))

	case *gmlast.ConditionalExpression:
		return doc.NewGroup(
			b.print(n.Test),
			doc.Indented(
				doc.SpaceLine, doc.Text("? "), b.print(n.Consequent),
				doc.SpaceLine, doc.Text(": "), b.print(n.Alternate),
			),
		)

	case *gmlast.BinaryExpression:
		return doc.NewGroup(
			b.print(n.Left),
			doc.Text(" "+n.Operator),
			doc.Indented(doc.SpaceLine, b.print(n.Right)),
		)

	case *gmlast.UnaryExpression:
		if !n.Prefix {
			return doc.Cat(b.print(n.Argument), doc.Text(n.Operator))
		}
		if needsUnarySpace(n) {
			return doc.Cat(doc.Text(n.Operator+" "), b.print(n.Argument))
		}
		return doc.Cat(doc.Text(n.Operator), b.print(n.Argument))

	case *gmlast.CallExpression:
		return doc.Cat(b.print(n.Callee), b.print(n.Args))
	case *gmlast.ArgumentList:
		return b.argumentList(n)
	case *gmlast.UndefinedArgument:
		return doc.Empty

	case *gmlast.MemberDotExpression:
		return doc.Cat(b.print(n.Object), doc.Text("."), b.print(n.Property))
	case *gmlast.MemberIndexExpression:
		return b.memberIndex(n)
	case *gmlast.NewExpression:
		if n.Callee == nil {
			return doc.Cat(doc.Text("new"), b.print(n.Args))
		}
		return doc.Cat(doc.Text("new "), b.print(n.Callee), b.print(n.Args))

	case *gmlast.ParenthesizedExpression:
		return doc.Cat(doc.Text("("), b.print(n.Expr), doc.Text(")"))
	case *gmlast.Identifier:
		return doc.Text(n.Name)
	case *gmlast.Literal:
		return literal(n)

	case *gmlast.ArrayExpression:
		return b.delimited(n, "[", "]", n.Elements, true, false)
	case *gmlast.StructExpression:
		props := make([]gmlast.Node, len(n.Properties))
		for i, p := range n.Properties {
			props[i] = p
		}
		return b.delimited(n, "{", "}", props, true, true)
	case *gmlast.StructProperty:
		return doc.Cat(b.print(n.Name), doc.Text(": "), b.print(n.Value))

	case *gmlast.TemplateLiteral:
		parts := []doc.Doc{doc.Text(`$"`)}
		for _, part := range n.Parts {
			parts = append(parts, b.print(part))
		}
		parts = append(parts, doc.Text(`"`))
		return doc.Cat(parts...)
	case *gmlast.TemplateText:
		return doc.Text(n.Text)
	case *gmlast.TemplateExpression:
		return doc.Cat(doc.Text("{"), b.print(n.Expr), doc.Text("}"))
	}

	panic(fmt.Sprintf("docbuilder: unhandled node %T", n))
}

func literal(n *gmlast.Literal) doc.Doc {
	switch n.Kind {
	case gmlast.LiteralString:
		return doc.Text(`"` + n.Value + `"`)
	case gmlast.LiteralVerbatimString:
		return doc.Verbatim(n.Value)
	}
	return doc.Text(n.Value)
}

// needsUnarySpace reports whether printing the operator of n directly
// before its operand would fuse two tokens, as in "- -x" or "+ ++x".
func needsUnarySpace(n *gmlast.UnaryExpression) bool {
	inner, ok := n.Argument.(*gmlast.UnaryExpression)
	if !ok || !inner.Prefix {
		return false
	}
	switch n.Operator {
	case "+", "-":
		return strings.HasPrefix(inner.Operator, n.Operator)
	}
	return false
}

func (b *builder) argumentList(n *gmlast.ArgumentList) doc.Doc {
	if b.canHugLast(n) {
		parts := make([]doc.Doc, 0, 2*len(n.Args))
		for i, arg := range n.Args {
			if i > 0 {
				parts = append(parts, doc.Text(", "))
			}
			parts = append(parts, b.print(arg))
		}
		return doc.Cat(doc.Text("("), doc.Cat(parts...), doc.Text(")"))
	}
	return b.delimited(n, "(", ")", n.Args, false, false)
}

// canHugLast reports whether the last argument is a function or struct
// that may open on the call's own line, with every earlier argument short
// and uncommented.
func (b *builder) canHugLast(n *gmlast.ArgumentList) bool {
	if len(n.Args) == 0 || b.comments.Has(n) {
		return false
	}

	last := n.Args[len(n.Args)-1]
	switch last.(type) {
	case *gmlast.FunctionDeclaration, *gmlast.StructExpression:
	default:
		return false
	}
	if b.comments.Has(last) {
		return false
	}

	for _, arg := range n.Args[:len(n.Args)-1] {
		if b.comments.Has(arg) {
			return false
		}
		switch arg.(type) {
		case *gmlast.Identifier, *gmlast.Literal, *gmlast.MemberDotExpression:
		default:
			return false
		}
	}
	return true
}

func (b *builder) memberIndex(n *gmlast.MemberIndexExpression) doc.Doc {
	open := "["
	if n.Accessor != "" {
		open += n.Accessor + " "
	}

	parts := make([]doc.Doc, 0, 2*len(n.Indices))
	for i, idx := range n.Indices {
		if i > 0 {
			parts = append(parts, doc.Text(", "))
		}
		parts = append(parts, b.print(idx))
	}
	return doc.Cat(b.print(n.Object), doc.Text(open), doc.Cat(parts...), doc.Text("]"))
}
