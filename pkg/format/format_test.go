package format_test

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gmlfmt/pkg/config"
	"github.com/yaklabco/gmlfmt/pkg/format"
	"github.com/yaklabco/gmlfmt/pkg/parser"
)

func defaults() config.FormatOptions {
	return config.DefaultFormatOptions()
}

func TestFormat(t *testing.T) {
	t.Parallel()

	long := "foo(" + strings.Repeat("a", 30) + ", " + strings.Repeat("b", 30) + ", " + strings.Repeat("c", 30) + ");"

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "variable declaration spacing",
			input: "var x=1;",
			want:  "var x = 1;",
		},
		{
			name:  "end of line comment stays on its line",
			input: "foo(1,2) // hi",
			want:  "foo(1, 2); // hi",
		},
		{
			name:  "too wide call breaks one argument per line",
			input: long,
			want: "foo(\n" +
				"\t" + strings.Repeat("a", 30) + ",\n" +
				"\t" + strings.Repeat("b", 30) + ",\n" +
				"\t" + strings.Repeat("c", 30) + "\n" +
				");",
		},
		{
			name:  "decimal literals normalized",
			input: "a = 007.50;\nb = .5;\nc = 5.;",
			want:  "a = 7.50;\nb = 0.5;\nc = 5.0;",
		},
		{
			name:  "word operators normalized",
			input: "x = a and not b or c mod 2 <> 1;",
			want:  "x = a && !b || c % 2 != 1;",
		},
		{
			name:  "blank lines collapse to one",
			input: "a = 1;\n\n\n\nb = 2;",
			want:  "a = 1;\n\nb = 2;",
		},
		{
			name:  "control body becomes a block",
			input: "if (x) y = 1;",
			want:  "if (x)\n{\n\ty = 1;\n}",
		},
		{
			name:  "condition parentheses added",
			input: "while x < 10 x++;",
			want:  "while (x < 10)\n{\n\tx++;\n}",
		},
		{
			name:  "else if chain",
			input: "if (a) { b(); } else if (c) { d(); } else { e(); }",
			want:  "if (a)\n{\n\tb();\n}\nelse if (c)\n{\n\td();\n}\nelse\n{\n\te();\n}",
		},
		{
			name:  "for loop",
			input: "for(var i=0;i<10;i++){show_debug_message(i)}",
			want:  "for (var i = 0; i < 10; i++)\n{\n\tshow_debug_message(i);\n}",
		},
		{
			name:  "empty block",
			input: "function f(){}",
			want:  "function f()\n{\n}",
		},
		{
			name:  "own line comment leads statement",
			input: "// setup\n\nx = 1;",
			want:  "// setup\n\nx = 1;",
		},
		{
			name:  "comment at end of block",
			input: "{\nx = 1;\n// done\n}",
			want:  "{\n\tx = 1;\n\t// done\n}",
		},
		{
			name:  "only comments",
			input: "// a\n\n/* b */",
			want:  "// a\n\n/* b */",
		},
		{
			name:  "enum members one per line",
			input: "enum Color {Red, Green = 2}",
			want:  "enum Color\n{\n\tRed,\n\tGreen = 2,\n}",
		},
		{
			name:  "region directives",
			input: "#region Movement  \nx = 1;\n#endregion",
			want:  "#region Movement\nx = 1;\n#endregion",
		},
		{
			name:  "macro body kept verbatim",
			input: "#macro   SPEED   4 *  2",
			want:  "#macro SPEED 4 *  2",
		},
		{
			name:  "template string",
			input: "s = $\"hp: {hp+1}!\";",
			want:  "s = $\"hp: {hp + 1}!\";",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "crlf normalized",
			input: "var x=1;\r\nvar y=2;\r\n",
			want:  "var x = 1;\nvar y = 2;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := format.Format(tt.input, defaults())
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Output)
		})
	}
}

func TestFormatSpaces(t *testing.T) {
	t.Parallel()

	opts := defaults()
	opts.UseTabs = false
	opts.TabWidth = 2

	res, err := format.Format("repeat(3){x+=1}", opts)
	require.NoError(t, err)
	assert.Equal(t, "repeat (3)\n{\n  x += 1;\n}", res.Output)
}

func TestFormatIdempotent(t *testing.T) {
	t.Parallel()

	sources := []string{
		"var a=1,b=2;\nif a>b {show_debug_message(\"a\")}else{show_debug_message(\"b\")}",
		"function Player(_hp=100):Entity(1,2)constructor{hp=_hp;static heal=function(n){hp+=n;return hp}}",
		"switch(state){case 0:x++;break;case 1:default:y--;}",
		"try{risky()}catch(e){show_debug_message(e)}finally{cleanup()}",
		"arr=[1,2,3];\ns={a:1,b:\"two\"};\nv=arr[@ 0]+ds_map[? \"k\"]+grid[# 1,2];",
		"do{i++}until(i>10)",
		"with(obj_enemy){hp-=1}",
		"x = a ? b : c; // pick\n/* block */ y = -(-z);",
		"callback(function(){return 1;});",
		"long_function_name(argument_number_one, argument_number_two, argument_number_three, argument_four);",
		"enum E{A,B,C}\n#macro TWO 2\nvalue = E.A + TWO;",
		"delete inst;\nthrow \"oops\";\nexit;",
		"s = @\"verbatim\n  text\";",
		"n = new Vector2(1, 2);\nm = new Vector2();",
	}

	for _, src := range sources {
		first, err := format.Format(src, defaults())
		require.NoError(t, err, src)

		second, err := format.Format(first.Output, defaults())
		require.NoError(t, err, first.Output)
		assert.Equal(t, first.Output, second.Output, "not idempotent for %q", src)

		canonical, err := format.Check(first.Output, defaults())
		require.NoError(t, err)
		assert.True(t, canonical, first.Output)
	}
}

func TestFormatDeterministic(t *testing.T) {
	t.Parallel()

	src := "x = [1, 2, 3]; // list\ny = {a: 1};"
	first, err := format.Format(src, defaults())
	require.NoError(t, err)

	for range 5 {
		again, err := format.Format(src, defaults())
		require.NoError(t, err)
		assert.Equal(t, first.Output, again.Output)
	}
}

func TestFormatWidth(t *testing.T) {
	t.Parallel()

	opts := defaults()
	opts.PrintWidth = 40

	res, err := format.Format("result = compute(alpha, beta, gamma, delta, epsilon);", opts)
	require.NoError(t, err)
	for _, line := range strings.Split(res.Output, "\n") {
		assert.LessOrEqual(t, len(line), 40, line)
	}
}

func TestFormatLongChains(t *testing.T) {
	t.Parallel()

	opts := defaults()
	opts.PrintWidth = 60

	tests := []struct {
		name  string
		src   string
		count string
		terms int
	}{
		{name: "concatenation", src: `s = "ab"` + strings.Repeat(` + "ab"`, 799) + ";", count: `"ab"`, terms: 800},
		{name: "member chain", src: "x = a" + strings.Repeat(".b", 800) + ";", count: ".b", terms: 800},
		{name: "call chain", src: "f" + strings.Repeat("(1)", 800) + ";", count: "1", terms: 800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := format.Format(tt.src, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.terms, strings.Count(res.Output, tt.count))

			again, err := format.Format(res.Output, opts)
			require.NoError(t, err)
			assert.Equal(t, res.Output, again.Output)
		})
	}
}

// formatTime returns the fastest of three runs.
func formatTime(t *testing.T, src string) time.Duration {
	t.Helper()

	best := time.Duration(math.MaxInt64)
	for range 3 {
		start := time.Now()
		_, err := format.Format(src, defaults())
		require.NoError(t, err)
		best = min(best, time.Since(start))
	}
	return best
}

func TestFormatScalesLinearly(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}

	commented := func(n int) string {
		var b strings.Builder
		for i := range n {
			fmt.Fprintf(&b, "var v%d = foo(a, b, c) + %d; // c%d\n", i, i, i)
		}
		return b.String()
	}
	chain := func(n int) string {
		return "x = 1" + strings.Repeat(" + 1", n-1) + ";"
	}

	tests := []struct {
		name  string
		input func(n int) string
		small int
	}{
		{name: "commented statements", input: commented, small: 1000},
		{name: "binary chain", input: chain, small: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			small := formatTime(t, tt.input(tt.small))
			large := formatTime(t, tt.input(8*tt.small))

			// Eight times the input may cost at most about three times
			// eight; quadratic work would cost sixty-four.
			limit := 24*small + 50*time.Millisecond
			assert.Less(t, large, limit, "small %v, large %v", small, large)
		})
	}
}

func TestFormatErrors(t *testing.T) {
	t.Parallel()

	t.Run("syntax error", func(t *testing.T) {
		t.Parallel()

		_, err := format.Format("var = ;", defaults())
		require.Error(t, err)
		assert.ErrorIs(t, err, format.ErrSyntax)

		var syntaxErr *parser.SyntaxError
		require.ErrorAs(t, err, &syntaxErr)
		assert.Equal(t, 1, syntaxErr.Line)
	})

	t.Run("bare expression statement", func(t *testing.T) {
		t.Parallel()

		_, err := format.Format("x + 1;", defaults())
		assert.ErrorIs(t, err, format.ErrSyntax)
	})

	t.Run("nesting too deep", func(t *testing.T) {
		t.Parallel()

		src := "x = " + strings.Repeat("(", 1000) + "1" + strings.Repeat(")", 1000) + ";"
		_, err := format.Format(src, defaults())

		var syntaxErr *parser.SyntaxError
		require.ErrorAs(t, err, &syntaxErr)
		assert.Equal(t, parser.MessageNestingTooDeep, syntaxErr.Message)
	})

	t.Run("long member chain", func(t *testing.T) {
		t.Parallel()

		src := "x = " + strings.Repeat("a.", 200000) + "a;"
		_, err := format.Format(src, defaults())

		var syntaxErr *parser.SyntaxError
		require.ErrorAs(t, err, &syntaxErr)
		assert.Equal(t, parser.MessageNestingTooDeep, syntaxErr.Message)
	})

	t.Run("long binary chain", func(t *testing.T) {
		t.Parallel()

		src := "x = 1" + strings.Repeat("+1", 200000) + ";"
		_, err := format.Format(src, defaults())
		assert.ErrorIs(t, err, format.ErrSyntax)
	})

	t.Run("invalid options", func(t *testing.T) {
		t.Parallel()

		opts := defaults()
		opts.TabWidth = 0
		_, err := format.Format("x = 1;", opts)
		assert.ErrorIs(t, err, config.ErrInvalidOptions)
		assert.False(t, errors.Is(err, format.ErrSyntax))
	})
}

func TestCheck(t *testing.T) {
	t.Parallel()

	ok, err := format.Check("var x = 1;", defaults())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = format.Check("var x=1;", defaults())
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = format.Check("var x = 1;\r\n", defaults())
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = format.Check("var = ;", defaults())
	assert.ErrorIs(t, err, format.ErrSyntax)
}

func TestFormatDebugInfo(t *testing.T) {
	t.Parallel()

	opts := defaults()
	opts.DebugInfo = true

	res, err := format.Format("x = 1;", opts)
	require.NoError(t, err)
	assert.Contains(t, res.Tree, "Document")
	assert.Contains(t, res.Tree, "AssignmentExpression")
	assert.NotEmpty(t, res.Doc)
	require.NotNil(t, res.Timings)
	assert.GreaterOrEqual(t, res.Timings.Total, res.Timings.Parse)
	assert.Contains(t, res.String(), "--- PRINTED OUTPUT ---\nx = 1;")

	plain, err := format.Format("x = 1;", defaults())
	require.NoError(t, err)
	assert.Empty(t, plain.Tree)
	assert.Nil(t, plain.Timings)
}
