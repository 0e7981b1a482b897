package gmlast

// LiteralKind distinguishes the lexical forms a Literal can take.
type LiteralKind int

const (
	LiteralInteger LiteralKind = iota
	LiteralDecimal
	LiteralHex
	LiteralBinary
	LiteralString
	LiteralVerbatimString
	LiteralBoolean
	LiteralUndefined
	LiteralNoone
)

var literalKindNames = [...]string{
	LiteralInteger:        "Integer",
	LiteralDecimal:        "Decimal",
	LiteralHex:            "Hex",
	LiteralBinary:         "Binary",
	LiteralString:         "String",
	LiteralVerbatimString: "VerbatimString",
	LiteralBoolean:        "Boolean",
	LiteralUndefined:      "Undefined",
	LiteralNoone:          "Noone",
}

func (k LiteralKind) String() string {
	if int(k) < len(literalKindNames) {
		return literalKindNames[k]
	}
	return "Unknown"
}

// Document is the root of every tree.
type Document struct {
	Base
	Statements []Node
}

// Block is a braced statement list. begin/end blocks parse to the same node.
type Block struct {
	Base
	Statements []Node
}

// VariableDeclarationList is a var, static or globalvar statement.
type VariableDeclarationList struct {
	Base
	Modifier     string
	Declarations []*VariableDeclarator
}

// VariableDeclarator is one name with an optional initializer.
type VariableDeclarator struct {
	Base
	Name *Identifier
	Init Node
}

// AssignmentExpression assigns Right to Left using Operator (=, +=, ...).
type AssignmentExpression struct {
	Base
	Operator string
	Left     Node
	Right    Node
}

// IfStatement is an if with an optional else branch.
type IfStatement struct {
	Base
	Test       Node
	Consequent Node
	Alternate  Node
}

// DoStatement is a do ... until loop.
type DoStatement struct {
	Base
	Body Node
	Test Node
}

// WhileStatement is a while loop.
type WhileStatement struct {
	Base
	Test Node
	Body Node
}

// RepeatStatement is a repeat (count) loop.
type RepeatStatement struct {
	Base
	Count Node
	Body  Node
}

// WithStatement is a with (object) block.
type WithStatement struct {
	Base
	Object Node
	Body   Node
}

// ForStatement is a C-style for loop. Init, Test and Update may be nil.
type ForStatement struct {
	Base
	Init   Node
	Test   Node
	Update Node
	Body   Node
}

// SwitchStatement is a switch over Discriminant.
type SwitchStatement struct {
	Base
	Discriminant Node
	Cases        *SwitchBlock
}

// SwitchBlock holds the braced case list of a switch.
type SwitchBlock struct {
	Base
	Cases []*SwitchCase
}

// SwitchCase is a case clause; Test is nil for default.
type SwitchCase struct {
	Base
	Test Node
	Body []Node
}

// ContinueStatement is a continue keyword.
type ContinueStatement struct{ Base }

// BreakStatement is a break keyword.
type BreakStatement struct{ Base }

// ExitStatement is an exit keyword.
type ExitStatement struct{ Base }

// ReturnStatement returns an optional Argument.
type ReturnStatement struct {
	Base
	Argument Node
}

// ThrowStatement throws an optional Argument.
type ThrowStatement struct {
	Base
	Argument Node
}

// DeleteStatement deletes an optional Argument.
type DeleteStatement struct {
	Base
	Argument Node
}

// RegionStatement is a #region or #endregion directive.
type RegionStatement struct {
	Base
	Name  string
	IsEnd bool
}

// DefineStatement is a legacy #define script separator.
type DefineStatement struct {
	Base
	Name string
}

// MacroDeclaration is a #macro directive. Body is kept verbatim.
type MacroDeclaration struct {
	Base
	Name string
	Body string
}

// TryStatement is try with optional catch and finally clauses.
type TryStatement struct {
	Base
	Body      Node
	Handler   *CatchClause
	Finalizer *FinallyClause
}

// CatchClause is the catch part of a try statement.
type CatchClause struct {
	Base
	Param *Identifier
	Body  Node
}

// FinallyClause is the finally part of a try statement.
type FinallyClause struct {
	Base
	Body Node
}

// EnumDeclaration declares a named enum.
type EnumDeclaration struct {
	Base
	Name    *Identifier
	Members *EnumBlock
}

// EnumBlock holds the braced member list of an enum.
type EnumBlock struct {
	Base
	Members []*EnumMember
}

// EnumMember is one enum entry with an optional value.
type EnumMember struct {
	Base
	Name *Identifier
	Init Node
}

// FunctionDeclaration is a named or anonymous function, optionally a
// constructor.
type FunctionDeclaration struct {
	Base
	Name        *Identifier
	Params      *ParameterList
	Constructor *ConstructorClause
	Body        Node
}

// ParameterList is the parenthesized parameter list of a function.
type ParameterList struct {
	Base
	Params []*Parameter
}

// Parameter is a function parameter with an optional default value.
type Parameter struct {
	Base
	Name    *Identifier
	Default Node
}

// ConstructorClause marks a function as a constructor, optionally
// inheriting from Parent called with Args.
type ConstructorClause struct {
	Base
	Parent *Identifier
	Args   *ArgumentList
}

// ConditionalExpression is the ternary Test ? Consequent : Alternate.
type ConditionalExpression struct {
	Base
	Test       Node
	Consequent Node
	Alternate  Node
}

// BinaryExpression applies a normalized binary Operator.
type BinaryExpression struct {
	Base
	Operator string
	Left     Node
	Right    Node
}

// UnaryExpression applies Operator before (Prefix) or after its Argument.
type UnaryExpression struct {
	Base
	Operator string
	Argument Node
	Prefix   bool
}

// CallExpression calls Callee with Args.
type CallExpression struct {
	Base
	Callee Node
	Args   *ArgumentList
}

// ArgumentList is the parenthesized argument list of a call.
type ArgumentList struct {
	Base
	Args []Node
}

// UndefinedArgument is an omitted argument such as the first one in f(, 1).
type UndefinedArgument struct{ Base }

// MemberDotExpression is Object.Property.
type MemberDotExpression struct {
	Base
	Object   Node
	Property *Identifier
}

// MemberIndexExpression is Object[...] with an optional accessor symbol
// (|, ?, #, @, $).
type MemberIndexExpression struct {
	Base
	Object   Node
	Accessor string
	Indices  []Node
}

// NewExpression is new Callee(Args). Callee may be nil.
type NewExpression struct {
	Base
	Callee *Identifier
	Args   *ArgumentList
}

// ParenthesizedExpression keeps explicit grouping parentheses.
type ParenthesizedExpression struct {
	Base
	Expr Node
}

// Identifier is a name reference.
type Identifier struct {
	Base
	Name string
}

// Literal is a scalar literal. Value holds the normalized text: decimals
// without redundant leading zeros and strings without their quotes.
type Literal struct {
	Base
	Kind  LiteralKind
	Value string
}

// ArrayExpression is an array literal.
type ArrayExpression struct {
	Base
	Elements []Node
}

// StructExpression is a struct literal.
type StructExpression struct {
	Base
	Properties []*StructProperty
}

// StructProperty is Name: Value inside a struct literal. Name is an
// Identifier or a string Literal.
type StructProperty struct {
	Base
	Name  Node
	Value Node
}

// TemplateLiteral is a $"..." string with interpolated expressions.
type TemplateLiteral struct {
	Base
	Parts []Node
}

// TemplateText is a raw text run of a template literal.
type TemplateText struct {
	Base
	Text string
}

// TemplateExpression is an interpolated {expr} of a template literal.
type TemplateExpression struct {
	Base
	Expr Node
}
