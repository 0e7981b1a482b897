package gmlast

import "fmt"

// Walk visits n and its descendants in pre-order. If fn returns false the
// children of the current node are skipped. The traversal uses an explicit
// stack, so arbitrarily deep trees do not grow the goroutine stack.
func Walk(n Node, fn func(Node) bool) {
	if IsNil(n) {
		return
	}

	stack := []Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(cur) {
			continue
		}

		children := Children(cur)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	total := 0
	Walk(n, func(Node) bool {
		total++
		return true
	})
	return total
}

// CheckSpans verifies that every node's span contains the spans of its
// children and that non-empty sibling spans follow each other without
// overlapping. It returns an error describing the first violation.
func CheckSpans(root Node) error {
	var err error
	Walk(root, func(n Node) bool {
		if err != nil {
			return false
		}
		parent := n.Span()
		var prev Node
		for _, c := range Children(n) {
			if _, ok := c.(*UndefinedArgument); ok {
				continue
			}
			if !parent.Contains(c.Span()) {
				err = fmt.Errorf("%s span %s does not contain child %s span %s",
					KindName(n), parent, KindName(c), c.Span())
				return false
			}
			if c.Span().IsEmpty() {
				continue
			}
			if prev != nil && c.Span().Start < prev.Span().End {
				err = fmt.Errorf("%s child %s span %s overlaps %s span %s",
					KindName(n), KindName(c), c.Span(), KindName(prev), prev.Span())
				return false
			}
			prev = c
		}
		return true
	})
	return err
}
