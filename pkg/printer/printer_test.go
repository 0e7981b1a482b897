package printer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gmlfmt/pkg/doc"
	"github.com/yaklabco/gmlfmt/pkg/printer"
)

func call(args ...doc.Doc) doc.Doc {
	parts := make([]doc.Doc, 0, 2*len(args))
	for i, a := range args {
		if i > 0 {
			parts = append(parts, doc.Text(","), doc.SpaceLine)
		}
		parts = append(parts, a)
	}
	return doc.NewGroup(
		doc.Text("foo("),
		doc.Indented(doc.SoftLine, doc.Cat(parts...)),
		doc.SoftLine,
		doc.Text(")"),
	)
}

func TestPrint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  doc.Doc
		opts printer.Options
		want string
	}{
		{
			name: "group fits flat",
			doc:  call(doc.Text("a"), doc.Text("b")),
			opts: printer.Options{Width: 80, UseTabs: true},
			want: "foo(a, b)",
		},
		{
			name: "group breaks when too wide",
			doc:  call(doc.Text("a"), doc.Text("b")),
			opts: printer.Options{Width: 5, UseTabs: true},
			want: "foo(\n\ta,\n\tb\n)",
		},
		{
			name: "spaces indentation",
			doc:  doc.Indented(doc.HardLine, doc.Text("x")),
			opts: printer.Options{TabWidth: 2},
			want: "\n  x",
		},
		{
			name: "hard line breaks enclosing groups",
			doc: doc.NewGroup(
				doc.Text("x"), doc.SpaceLine,
				doc.NewGroup(doc.Text("y"), doc.HardLine, doc.Text("z")),
			),
			opts: printer.Options{Width: 80},
			want: "x\ny\nz",
		},
		{
			name: "break parent forces break",
			doc:  doc.NewGroup(doc.Text("a"), doc.SpaceLine, doc.Text("b"), doc.ForceBreak),
			opts: printer.Options{Width: 80},
			want: "a\nb",
		},
		{
			name: "squashed hard line at line start",
			doc:  doc.Cat(doc.Text("a"), doc.HardLine, doc.HardLineSquash, doc.Text("b")),
			want: "a\nb",
		},
		{
			name: "squashed hard line mid line",
			doc:  doc.Cat(doc.Text("a"), doc.HardLineSquash, doc.Text("b")),
			want: "a\nb",
		},
		{
			name: "trailing whitespace trimmed",
			doc:  doc.Cat(doc.Text("a  "), doc.HardLine, doc.Text("b ")),
			want: "a\nb",
		},
		{
			name: "literal line ignores indentation",
			doc:  doc.Indented(doc.Text("a"), doc.LiteralLine, doc.Text("  b")),
			opts: printer.Options{UseTabs: true},
			want: "a\n  b",
		},
		{
			name: "wide runes measured by display width",
			doc:  doc.NewGroup(doc.Text("日本"), doc.SpaceLine, doc.Text("語")),
			opts: printer.Options{Width: 5},
			want: "日本\n語",
		},
		{
			name: "fill wraps only where needed",
			doc: doc.NewFill(
				doc.Text("aaa"), doc.SpaceLine,
				doc.Text("bbb"), doc.SpaceLine,
				doc.Text("ccc"),
			),
			opts: printer.Options{Width: 7},
			want: "aaa bbb\nccc",
		},
		{
			name: "tabs and alignment",
			doc:  doc.Indented(doc.Indented(doc.Aligned(2, doc.HardLine, doc.Text("x")))),
			opts: printer.Options{UseTabs: true, TabWidth: 4},
			want: "\n\t\t  x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := printer.Print(tt.doc, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Output)
		})
	}
}

func TestPrintGroupReferences(t *testing.T) {
	t.Parallel()

	build := func() doc.Doc {
		return doc.Cat(
			doc.NewGroupWithID(1, doc.Text("["), doc.Indented(doc.SoftLine, doc.Text("a")), doc.SoftLine, doc.Text("]")),
			doc.IfGroupBroken(1, doc.Text("B"), doc.Text("F")),
		)
	}

	res, err := printer.Print(build(), printer.Options{Width: 80, UseTabs: true})
	require.NoError(t, err)
	assert.Equal(t, "[a]F", res.Output)

	res, err = printer.Print(build(), printer.Options{Width: 2, UseTabs: true})
	require.NoError(t, err)
	assert.Equal(t, "[\n\ta\n]B", res.Output)
}

func TestPrintIndentIfGroupBroken(t *testing.T) {
	t.Parallel()

	build := func() doc.Doc {
		return doc.NewGroupWithID(3,
			doc.Text("("),
			doc.IndentIfGroupBroken(3, doc.SoftLine, doc.Text("a")),
			doc.SoftLine,
			doc.Text(")"),
		)
	}

	res, err := printer.Print(build(), printer.Options{Width: 80, UseTabs: true})
	require.NoError(t, err)
	assert.Equal(t, "(a)", res.Output)

	res, err = printer.Print(build(), printer.Options{Width: 2, UseTabs: true})
	require.NoError(t, err)
	assert.Equal(t, "(\n\ta\n)", res.Output)
}

func TestPrintUnresolvedGroup(t *testing.T) {
	t.Parallel()

	_, err := printer.Print(doc.IfGroupBroken(7, doc.Text("x"), doc.Text("y")), printer.Options{})
	require.ErrorIs(t, err, printer.ErrUnresolvedGroup)

	_, err = printer.Print(doc.IndentIfGroupBroken(8, doc.Text("x")), printer.Options{})
	require.ErrorIs(t, err, printer.ErrUnresolvedGroup)
}

func TestPrintComments(t *testing.T) {
	t.Parallel()

	t.Run("line suffix flushed before newline", func(t *testing.T) {
		t.Parallel()

		d := doc.Cat(
			doc.Text("x"),
			doc.TrailingComment(1, doc.Text(" // c")),
			doc.Text(";"),
			doc.HardLine,
			doc.Text("y"),
		)
		res, err := printer.Print(d, printer.Options{})
		require.NoError(t, err)
		assert.Equal(t, "x; // c\ny", res.Output)
		assert.Equal(t, map[int]int{1: 1}, res.CommentsPrinted)
	})

	t.Run("line suffix flushed at end", func(t *testing.T) {
		t.Parallel()

		d := doc.Cat(doc.Text("x"), doc.TrailingComment(2, doc.Text(" // c")))
		res, err := printer.Print(d, printer.Options{})
		require.NoError(t, err)
		assert.Equal(t, "x // c", res.Output)
	})

	t.Run("markers counted once per print", func(t *testing.T) {
		t.Parallel()

		d := doc.Cat(
			doc.Comment(1, doc.Text("/* a */")),
			doc.Space,
			doc.Comment(2, doc.Text("/* b */")),
		)
		res, err := printer.Print(d, printer.Options{})
		require.NoError(t, err)
		assert.Equal(t, "/* a */ /* b */", res.Output)
		assert.Equal(t, map[int]int{1: 1, 2: 1}, res.CommentsPrinted)
	})
}

// chain builds left-nested binary groups the way operator chains are
// rendered.
func chain(terms ...string) doc.Doc {
	left := doc.Doc(doc.Text(terms[0]))
	for _, term := range terms[1:] {
		left = doc.NewGroup(left, doc.Text(" +"), doc.Indented(doc.SpaceLine, doc.Text(term)))
	}
	return left
}

func TestPrintLeftNestedChain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		width int
		want  string
	}{
		{name: "fits", width: 80, want: "a + b + c"},
		{name: "outer breaks", width: 7, want: "a + b +\n\tc"},
		{name: "all break", width: 4, want: "a +\n\tb +\n\tc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := printer.Print(chain("a", "b", "c"), printer.Options{Width: tt.width, UseTabs: true})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Output)
		})
	}

	t.Run("long", func(t *testing.T) {
		t.Parallel()

		terms := make([]string, 5000)
		for i := range terms {
			terms[i] = "1"
		}
		res, err := printer.Print(chain(terms...), printer.Options{Width: 80, TabWidth: 4})
		require.NoError(t, err)

		assert.Equal(t, 5000, strings.Count(res.Output, "1"))
		for _, line := range strings.Split(res.Output, "\n") {
			assert.LessOrEqual(t, len(line), 80)
		}
	})
}
