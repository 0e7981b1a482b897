package gmlast

import (
	"fmt"
	"strings"
)

// DumpOptions controls tree dumps.
type DumpOptions struct {
	// Canonical wraps non-block statement bodies in a synthetic Block line
	// so that trees differing only in optional braces dump identically.
	Canonical bool

	// Spans appends each node's span to its line.
	Spans bool
}

// KindName returns the variant name of n.
func KindName(n Node) string {
	switch n.(type) {
	case *Document:
		return "Document"
	case *Block:
		return "Block"
	case *VariableDeclarationList:
		return "VariableDeclarationList"
	case *VariableDeclarator:
		return "VariableDeclarator"
	case *AssignmentExpression:
		return "AssignmentExpression"
	case *IfStatement:
		return "IfStatement"
	case *DoStatement:
		return "DoStatement"
	case *WhileStatement:
		return "WhileStatement"
	case *RepeatStatement:
		return "RepeatStatement"
	case *WithStatement:
		return "WithStatement"
	case *ForStatement:
		return "ForStatement"
	case *SwitchStatement:
		return "SwitchStatement"
	case *SwitchBlock:
		return "SwitchBlock"
	case *SwitchCase:
		return "SwitchCase"
	case *ContinueStatement:
		return "ContinueStatement"
	case *BreakStatement:
		return "BreakStatement"
	case *ExitStatement:
		return "ExitStatement"
	case *ReturnStatement:
		return "ReturnStatement"
	case *ThrowStatement:
		return "ThrowStatement"
	case *DeleteStatement:
		return "DeleteStatement"
	case *RegionStatement:
		return "RegionStatement"
	case *DefineStatement:
		return "DefineStatement"
	case *MacroDeclaration:
		return "MacroDeclaration"
	case *TryStatement:
		return "TryStatement"
	case *CatchClause:
		return "CatchClause"
	case *FinallyClause:
		return "FinallyClause"
	case *EnumDeclaration:
		return "EnumDeclaration"
	case *EnumBlock:
		return "EnumBlock"
	case *EnumMember:
		return "EnumMember"
	case *FunctionDeclaration:
		return "FunctionDeclaration"
	case *ParameterList:
		return "ParameterList"
	case *Parameter:
		return "Parameter"
	case *ConstructorClause:
		return "ConstructorClause"
	case *ConditionalExpression:
		return "ConditionalExpression"
	case *BinaryExpression:
		return "BinaryExpression"
	case *UnaryExpression:
		return "UnaryExpression"
	case *CallExpression:
		return "CallExpression"
	case *ArgumentList:
		return "ArgumentList"
	case *UndefinedArgument, *Literal:
		return "Literal"
	case *MemberDotExpression:
		return "MemberDotExpression"
	case *MemberIndexExpression:
		return "MemberIndexExpression"
	case *NewExpression:
		return "NewExpression"
	case *ParenthesizedExpression:
		return "ParenthesizedExpression"
	case *Identifier:
		return "Identifier"
	case *ArrayExpression:
		return "ArrayExpression"
	case *StructExpression:
		return "StructExpression"
	case *StructProperty:
		return "StructProperty"
	case *TemplateLiteral:
		return "TemplateLiteral"
	case *TemplateText:
		return "TemplateText"
	case *TemplateExpression:
		return "TemplateExpression"
	}
	return fmt.Sprintf("%T", n)
}

// attributes returns the non-child payload of n as it appears in dumps.
func attributes(n Node) string {
	switch v := n.(type) {
	case *VariableDeclarationList:
		return v.Modifier
	case *AssignmentExpression:
		return v.Operator
	case *BinaryExpression:
		return v.Operator
	case *UnaryExpression:
		if v.Prefix {
			return v.Operator + " prefix"
		}
		return v.Operator + " postfix"
	case *MemberIndexExpression:
		return fmt.Sprintf("%q", "["+v.Accessor)
	case *Identifier:
		return fmt.Sprintf("%q", v.Name)
	case *Literal:
		return fmt.Sprintf("%s %q", v.Kind, v.Value)
	case *UndefinedArgument:
		return fmt.Sprintf("%s %q", LiteralUndefined, "undefined")
	case *RegionStatement:
		if v.IsEnd {
			return fmt.Sprintf("end %q", v.Name)
		}
		return fmt.Sprintf("%q", v.Name)
	case *DefineStatement:
		return fmt.Sprintf("%q", v.Name)
	case *MacroDeclaration:
		return fmt.Sprintf("%q %q", v.Name, v.Body)
	case *TemplateText:
		return fmt.Sprintf("%q", v.Text)
	case *SwitchCase:
		if IsNil(v.Test) {
			return "default"
		}
	}
	return ""
}

// IsBodySlot reports whether child occupies a statement-body position of
// parent: the part printed as a braced block.
func IsBodySlot(parent, child Node) bool {
	switch v := parent.(type) {
	case *IfStatement:
		if child == v.Alternate {
			_, elseIf := child.(*IfStatement)
			return !elseIf
		}
		return child == v.Consequent
	case *DoStatement:
		return child == v.Body
	case *WhileStatement:
		return child == v.Body
	case *RepeatStatement:
		return child == v.Body
	case *WithStatement:
		return child == v.Body
	case *ForStatement:
		return child == v.Body
	case *TryStatement:
		return child == v.Body
	case *CatchClause:
		return child == v.Body
	case *FinallyClause:
		return child == v.Body
	case *FunctionDeclaration:
		return child == v.Body
	}
	return false
}

type dumpEntry struct {
	node  Node
	depth int
}

// Dump renders the tree rooted at n as an indented outline, one node per line.
func Dump(n Node, opts DumpOptions) string {
	if IsNil(n) {
		return ""
	}

	var sb strings.Builder
	stack := []dumpEntry{{node: n}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if cur.node == nil {
			// Synthetic block wrapper emitted for canonical dumps.
			writeLine(&sb, cur.depth, "Block", "", Span{}, false)
			continue
		}

		writeLine(&sb, cur.depth, KindName(cur.node), attributes(cur.node), cur.node.Span(), opts.Spans)

		children := Children(cur.node)
		for i := len(children) - 1; i >= 0; i-- {
			child := children[i]
			if opts.Canonical && IsBodySlot(cur.node, child) {
				if _, isBlock := child.(*Block); !isBlock {
					stack = append(stack, dumpEntry{node: child, depth: cur.depth + 2})
					stack = append(stack, dumpEntry{node: nil, depth: cur.depth + 1})
					continue
				}
			}
			stack = append(stack, dumpEntry{node: child, depth: cur.depth + 1})
		}
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func writeLine(sb *strings.Builder, depth int, kind, attrs string, span Span, withSpan bool) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(kind)
	if attrs != "" {
		sb.WriteByte(' ')
		sb.WriteString(attrs)
	}
	if withSpan {
		sb.WriteByte(' ')
		sb.WriteString(span.String())
	}
	sb.WriteByte('\n')
}
