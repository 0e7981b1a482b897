package doc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gmlfmt/pkg/doc"
)

func TestCat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, doc.Text("a"), doc.Cat(nil, doc.Text("a"), nil))
	assert.Equal(t, doc.Concat{doc.Text("a"), doc.Text("b")}, doc.Cat(doc.Text("a"), doc.Text("b")))
	assert.Empty(t, doc.Cat())
}

func TestJoin(t *testing.T) {
	t.Parallel()

	got := doc.Join(doc.Text(", "), []doc.Doc{doc.Text("a"), doc.Text("b"), doc.Text("c")})
	assert.Equal(t, doc.Concat{
		doc.Text("a"), doc.Text(", "), doc.Text("b"), doc.Text(", "), doc.Text("c"),
	}, got)
}

func TestIDs(t *testing.T) {
	t.Parallel()

	var a, b doc.IDs
	assert.Equal(t, doc.GroupID(1), a.Next())
	assert.Equal(t, doc.GroupID(2), a.Next())
	assert.Equal(t, doc.GroupID(1), b.Next())
}

func TestVerbatim(t *testing.T) {
	t.Parallel()

	assert.Equal(t, doc.Text("one"), doc.Verbatim("one"))
	assert.Equal(t, doc.Concat{doc.Text("/* a"), doc.LiteralLine, doc.Text("   b */")}, doc.Verbatim("/* a\n   b */"))
}

func TestDump(t *testing.T) {
	t.Parallel()

	d := doc.NewGroupWithID(2,
		doc.Text("f("),
		doc.IndentIfGroupBroken(2, doc.SoftLine, doc.Text("x")),
		doc.IfGroupBroken(2, doc.Text(","), nil),
		doc.SoftLine,
		doc.Comment(1, doc.Text("/* c */")),
		doc.HardLineSquash,
		doc.Text(")"),
	)

	want := `Group#2
  Concat
    "f("
    IndentIfBreak group=#2
      Concat
        SoftLine
        "x"
    IfBreak group=#2
      break: ","
      flat: <nil>
    SoftLine
    Comment #1
      "/* c */"
    HardLine squash
    ")"`
	assert.Equal(t, want, doc.Dump(d))
}
