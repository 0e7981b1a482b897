package gmlast

// Children returns the direct children of n in source order.
// Absent optional children are omitted.
func Children(n Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, c := range nodes {
			if !IsNil(c) {
				out = append(out, c)
			}
		}
	}

	switch v := n.(type) {
	case *Document:
		add(v.Statements...)
	case *Block:
		add(v.Statements...)
	case *VariableDeclarationList:
		for _, d := range v.Declarations {
			add(d)
		}
	case *VariableDeclarator:
		add(v.Name, v.Init)
	case *AssignmentExpression:
		add(v.Left, v.Right)
	case *IfStatement:
		add(v.Test, v.Consequent, v.Alternate)
	case *DoStatement:
		add(v.Body, v.Test)
	case *WhileStatement:
		add(v.Test, v.Body)
	case *RepeatStatement:
		add(v.Count, v.Body)
	case *WithStatement:
		add(v.Object, v.Body)
	case *ForStatement:
		add(v.Init, v.Test, v.Update, v.Body)
	case *SwitchStatement:
		add(v.Discriminant, v.Cases)
	case *SwitchBlock:
		for _, c := range v.Cases {
			add(c)
		}
	case *SwitchCase:
		add(v.Test)
		add(v.Body...)
	case *ReturnStatement:
		add(v.Argument)
	case *ThrowStatement:
		add(v.Argument)
	case *DeleteStatement:
		add(v.Argument)
	case *TryStatement:
		add(v.Body, v.Handler, v.Finalizer)
	case *CatchClause:
		add(v.Param, v.Body)
	case *FinallyClause:
		add(v.Body)
	case *EnumDeclaration:
		add(v.Name, v.Members)
	case *EnumBlock:
		for _, m := range v.Members {
			add(m)
		}
	case *EnumMember:
		add(v.Name, v.Init)
	case *FunctionDeclaration:
		add(v.Name, v.Params, v.Constructor, v.Body)
	case *ParameterList:
		for _, p := range v.Params {
			add(p)
		}
	case *Parameter:
		add(v.Name, v.Default)
	case *ConstructorClause:
		add(v.Parent, v.Args)
	case *ConditionalExpression:
		add(v.Test, v.Consequent, v.Alternate)
	case *BinaryExpression:
		add(v.Left, v.Right)
	case *UnaryExpression:
		add(v.Argument)
	case *CallExpression:
		add(v.Callee, v.Args)
	case *ArgumentList:
		add(v.Args...)
	case *MemberDotExpression:
		add(v.Object, v.Property)
	case *MemberIndexExpression:
		add(v.Object)
		add(v.Indices...)
	case *NewExpression:
		add(v.Callee, v.Args)
	case *ParenthesizedExpression:
		add(v.Expr)
	case *ArrayExpression:
		add(v.Elements...)
	case *StructExpression:
		for _, p := range v.Properties {
			add(p)
		}
	case *StructProperty:
		add(v.Name, v.Value)
	case *TemplateLiteral:
		add(v.Parts...)
	case *TemplateExpression:
		add(v.Expr)
	}

	return out
}
