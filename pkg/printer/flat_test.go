package printer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gmlfmt/pkg/doc"
)

func TestFlatWidths(t *testing.T) {
	t.Parallel()

	inner := doc.NewGroup(doc.Text("a"), doc.SpaceLine, doc.Text("bc"))
	outer := doc.NewGroup(inner, doc.Text(" +"), doc.Indented(doc.SpaceLine, doc.Text("d")))

	forced := doc.ForceGroup(doc.Text("x"))
	hard := doc.NewGroup(doc.Text("x"), doc.HardLine, doc.Text("y"))
	multiline := doc.NewGroup(doc.Text("a\nb"))

	ids := &doc.IDs{}
	listID := ids.Next()
	trailing := doc.NewGroup(doc.Text("e"), doc.IfGroupBroken(listID, doc.Text(","), doc.Empty))
	list := doc.NewGroupWithID(listID, doc.Text("["), trailing, doc.Text("]"))

	root := doc.Cat(outer, forced, hard, multiline, list)
	widths := flatWidths(root, propagateBreaks(root))

	assert.Equal(t, 4, widths[inner])
	assert.Equal(t, 8, widths[outer])
	assert.NotContains(t, widths, forced)
	assert.NotContains(t, widths, hard)
	assert.NotContains(t, widths, multiline)
	assert.NotContains(t, widths, trailing, "refers to an enclosing group")
	assert.Equal(t, 3, widths[list])
}
