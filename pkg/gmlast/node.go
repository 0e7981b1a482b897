// Package gmlast defines the syntax tree produced by the GML parser.
//
// The tree is a closed set of node variants. Every node owns its children
// exclusively and carries the source span it was parsed from. Trees are
// built once per format invocation and are never mutated afterwards.
package gmlast

// Node is implemented by every syntax tree variant.
type Node interface {
	// Span returns the half-open byte range the node was parsed from.
	Span() Span

	node()
}

// Base carries the span shared by every node. It is embedded in each
// concrete node type.
type Base struct {
	Loc Span
}

// At returns a Base positioned at span.
func At(span Span) Base {
	return Base{Loc: span}
}

// Span implements Node.
func (b *Base) Span() Span { return b.Loc }

func (*Base) node() {}

// IsNil reports whether n is absent, including typed nil pointers.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *Identifier:
		return v == nil
	case *ArgumentList:
		return v == nil
	case *ParameterList:
		return v == nil
	case *ConstructorClause:
		return v == nil
	case *CatchClause:
		return v == nil
	case *FinallyClause:
		return v == nil
	case *SwitchBlock:
		return v == nil
	case *EnumBlock:
		return v == nil
	case *Block:
		return v == nil
	}
	return false
}
