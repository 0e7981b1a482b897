package diff_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gmlfmt/pkg/diff"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("equal inputs", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, diff.Generate("a.gml", "x = 1;\n", "x = 1;\n"))
		assert.Empty(t, diff.Unified("a.gml", "", ""))
	})

	t.Run("single line change", func(t *testing.T) {
		t.Parallel()

		d := diff.Generate("scripts/a.gml", "x=1\ny = 2;\n", "x = 1;\ny = 2;\n")
		require.NotNil(t, d)
		assert.True(t, d.HasChanges())
		assert.Equal(t, 1, d.Additions)
		assert.Equal(t, 1, d.Deletions)

		want := "--- a/scripts/a.gml\n+++ b/scripts/a.gml\n@@ -1,2 +1,2 @@\n-x=1\n+x = 1;\n y = 2;\n"
		assert.Equal(t, want, d.String())
		assert.True(t, strings.HasPrefix(d.FullString(), "diff --git a/scripts/a.gml b/scripts/a.gml\n"))
	})

	t.Run("distant changes split into hunks", func(t *testing.T) {
		t.Parallel()

		var orig, mod []string
		for i := range 20 {
			line := strings.Repeat("a", i+1)
			orig = append(orig, line)
			if i == 0 || i == 19 {
				line += "!"
			}
			mod = append(mod, line)
		}

		d := diff.Generate("f", strings.Join(orig, "\n"), strings.Join(mod, "\n"))
		require.NotNil(t, d)
		require.Len(t, d.Hunks, 2)
		assert.Equal(t, 1, d.Hunks[0].OriginalStart)
		assert.Equal(t, 17, d.Hunks[1].OriginalStart)
	})

	t.Run("insertion", func(t *testing.T) {
		t.Parallel()

		d := diff.Generate("f", "a\nc\n", "a\nb\nc\n")
		require.NotNil(t, d)
		assert.Equal(t, 1, d.Additions)
		assert.Equal(t, 0, d.Deletions)
	})
}

func TestFirstDifference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want diff.Position
		ok   bool
	}{
		{"equal", "abc", "abc", diff.Position{}, false},
		{"first line", "abc", "abd", diff.Position{Line: 1, Column: 3}, true},
		{"later line", "a\nbc\nd", "a\nbx\nd", diff.Position{Line: 2, Column: 2}, true},
		{"prefix", "a\n", "a\nb", diff.Position{Line: 2, Column: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := diff.FirstDifference(tt.a, tt.b)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarker(t *testing.T) {
	t.Parallel()

	got := diff.Marker("Document\n  Identifier \"a\"", "Document\n  Identifier \"b\"")
	want := "first difference at line 2, column 15\n" +
		"-   Identifier \"a\"\n" +
		"+   Identifier \"b\"\n" +
		"                ^"
	assert.Equal(t, want, got)
	assert.Empty(t, diff.Marker("x", "x"))
}
