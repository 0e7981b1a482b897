package pretty_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gmlfmt/internal/ui/pretty"
	"github.com/yaklabco/gmlfmt/pkg/format"
	"github.com/yaklabco/gmlfmt/pkg/parser"
)

func TestFormatSyntaxError(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	src := []byte("a = 1;\n\tx = );\n")

	_, err := parser.Parse(string(src))
	require.Error(t, err)

	var syntaxErr *parser.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)

	got := styles.FormatSyntaxError("scr_move.gml", syntaxErr, src)
	assert.Equal(t,
		"  scr_move.gml:2:6  syntax error  unexpected ')' [CloseParen]\n"+
			"        \tx = );\n"+
			"        \t    ^\n",
		got)
}

func TestFormatFileError(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	t.Run("syntax error without source", func(t *testing.T) {
		t.Parallel()

		err := &parser.SyntaxError{Line: 3, Column: 1, Message: "unexpected end of file"}
		got := styles.FormatFileError("a.gml", err, nil)
		assert.Equal(t, "  a.gml:3:1  syntax error  unexpected end of file\n", got)
	})

	t.Run("validation error", func(t *testing.T) {
		t.Parallel()

		err := &format.ValidationError{Kind: format.ValidationTree, Difference: "first difference at line 1, column 1"}
		got := styles.FormatFileError("a.gml", err, nil)
		assert.Contains(t, got, "a.gml  internal error  tree check failed")
		assert.Contains(t, got, "first difference at line 1, column 1")
		assert.Contains(t, got, "left unchanged")
	})

	t.Run("other error", func(t *testing.T) {
		t.Parallel()

		got := styles.FormatFileError("a.gml", errors.New("permission denied"), nil)
		assert.Equal(t, "  a.gml  error  permission denied\n", got)
	})
}

func TestFormatSourceContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		line   string
		column int
		want   string
	}{
		{"caret", "x = );", 5, "        x = );\n            ^\n"},
		{"zero column", "x", 0, "        x\n"},
		{"wide runes", "s = \"日本\" +;", 10, "        s = \"日本\" +;\n" + strings.Repeat(" ", 19) + "^\n"},
		{"past end of line", "if (", 6, "        if (\n" + strings.Repeat(" ", 13) + "^\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, styles.FormatSourceContext(tt.line, tt.column))
		})
	}
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "a.gml (not formatted)", styles.FormatFileHeader("a.gml", "not formatted"))
}
