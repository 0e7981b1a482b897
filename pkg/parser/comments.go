package parser

import (
	"sort"
	"strings"

	"github.com/yaklabco/gmlfmt/pkg/gmlast"
)

// attachComments binds every comment group to a node of the tree.
//
// For each group the enclosing node is the smallest node whose span
// contains it; the preceding and following nodes are the enclosing node's
// children immediately before and after it. Own-line groups lead the
// following node, end-of-line groups trail the preceding node, and inline
// groups lead whichever code comes next. Groups with no neighbours dangle
// on the enclosing node.
func attachComments(src string, root gmlast.Node, groups []*gmlast.CommentGroup) *gmlast.CommentMap {
	comments := gmlast.NewCommentMap(groups)
	locator := newCommentLocator(root)

	for _, group := range groups {
		enclosing, preceding, following := locator.locate(group.Span)

		a := &gmlast.Attachment{
			Group:     group,
			OwnLine:   startsLine(src, group.Span.Start),
			EndOfLine: endsLine(src, group.Span.End),
		}

		var target gmlast.Node
		switch {
		case a.OwnLine && following != nil:
			a.Placement, target = gmlast.Leading, following
		case a.OwnLine && preceding != nil:
			a.Placement, target = gmlast.Trailing, preceding
		case !a.OwnLine && a.EndOfLine && preceding != nil:
			a.Placement, target = gmlast.Trailing, preceding
		case following != nil:
			a.Placement, target = gmlast.Leading, following
		case preceding != nil:
			a.Placement, target = gmlast.Trailing, preceding
		default:
			a.Placement, target = gmlast.Dangling, enclosing
		}

		if a.Placement == gmlast.Leading {
			a.BlankLineAfter = countNewlines(src, group.Span.End, target.Span().Start) > 1
		}

		comments.Attach(target, a)
	}

	return comments
}

// commentLocator finds the nodes around comment spans. Children lists are
// built once per node and searched by binary search, as children never
// overlap and come in source order.
type commentLocator struct {
	root     gmlast.Node
	children map[gmlast.Node][]gmlast.Node
}

func newCommentLocator(root gmlast.Node) *commentLocator {
	return &commentLocator{root: root, children: make(map[gmlast.Node][]gmlast.Node)}
}

// spanned returns the children of n that cover at least one byte.
// Zero-width nodes never take comments.
func (l *commentLocator) spanned(n gmlast.Node) []gmlast.Node {
	if kids, ok := l.children[n]; ok {
		return kids
	}
	var kids []gmlast.Node
	for _, child := range gmlast.Children(n) {
		if !child.Span().IsEmpty() {
			kids = append(kids, child)
		}
	}
	l.children[n] = kids
	return kids
}

// locate finds the enclosing, preceding and following nodes of a comment
// span.
func (l *commentLocator) locate(span gmlast.Span) (enclosing, preceding, following gmlast.Node) {
	enclosing = l.root
	for {
		kids := l.spanned(enclosing)

		// First child that ends after the comment starts.
		i := sort.Search(len(kids), func(i int) bool { return kids[i].Span().End > span.Start })
		if i < len(kids) && kids[i].Span().Contains(span) {
			enclosing = kids[i]
			continue
		}

		preceding, following = nil, nil
		if i > 0 {
			preceding = kids[i-1]
		}
		if j := i + sort.Search(len(kids)-i, func(j int) bool { return kids[i+j].Span().Start >= span.End }); j < len(kids) {
			following = kids[j]
		}
		return enclosing, preceding, following
	}
}

// startsLine reports whether only horizontal whitespace precedes offset on
// its line.
func startsLine(src string, offset int) bool {
	for i := offset - 1; i >= 0; i-- {
		switch src[i] {
		case ' ', '\t', '\v', '\f':
			continue
		case '\n', '\r':
			return true
		default:
			return false
		}
	}
	return true
}

// endsLine reports whether only horizontal whitespace follows offset on its
// line.
func endsLine(src string, offset int) bool {
	for i := offset; i < len(src); i++ {
		switch src[i] {
		case ' ', '\t', '\v', '\f':
			continue
		case '\n', '\r':
			return true
		default:
			return false
		}
	}
	return true
}

func countNewlines(src string, from, to int) int {
	if from < 0 {
		from = 0
	}
	if to > len(src) {
		to = len(src)
	}
	if from >= to {
		return 0
	}
	return strings.Count(src[from:to], "\n")
}
