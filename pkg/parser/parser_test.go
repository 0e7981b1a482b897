package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gmlfmt/pkg/gmlast"
	"github.com/yaklabco/gmlfmt/pkg/parser"
)

func dump(t *testing.T, src string) string {
	t.Helper()

	res, err := parser.Parse(src)
	require.NoError(t, err, src)
	require.NoError(t, gmlast.CheckSpans(res.Root))
	return gmlast.Dump(res.Root, gmlast.DumpOptions{})
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "assignment",
			src:  "x = 1;",
			want: "Document\n  AssignmentExpression =\n    Identifier \"x\"\n    Literal Integer \"1\"",
		},
		{
			name: "precedence",
			src:  "x = a + b * c;",
			want: "Document\n  AssignmentExpression =\n    Identifier \"x\"\n" +
				"    BinaryExpression +\n      Identifier \"a\"\n" +
				"      BinaryExpression *\n        Identifier \"b\"\n        Identifier \"c\"",
		},
		{
			name: "word operators",
			src:  "x = not a;",
			want: "Document\n  AssignmentExpression =\n    Identifier \"x\"\n" +
				"    UnaryExpression ! prefix\n      Identifier \"a\"",
		},
		{
			name: "equality written as assignment",
			src:  "if a = 1 exit",
			want: "Document\n  IfStatement\n    BinaryExpression ==\n      Identifier \"a\"\n" +
				"      Literal Integer \"1\"\n    ExitStatement",
		},
		{
			name: "postfix increment",
			src:  "i++;",
			want: "Document\n  UnaryExpression ++ postfix\n    Identifier \"i\"",
		},
		{
			name: "string stored without quotes",
			src:  "s = \"hi\";",
			want: "Document\n  AssignmentExpression =\n    Identifier \"s\"\n    Literal String \"hi\"",
		},
		{
			name: "decimal normalized",
			src:  "d = 00.5;",
			want: "Document\n  AssignmentExpression =\n    Identifier \"d\"\n    Literal Decimal \"0.5\"",
		},
		{
			name: "omitted argument",
			src:  "f(,1);",
			want: "Document\n  CallExpression\n    Identifier \"f\"\n    ArgumentList\n" +
				"      UndefinedArgument Undefined \"undefined\"\n      Literal Integer \"1\"",
		},
		{
			name: "accessor",
			src:  "v = m[? \"k\"];",
			want: "Document\n  AssignmentExpression =\n    Identifier \"v\"\n" +
				"    MemberIndexExpression \"[?\"\n      Identifier \"m\"\n      Literal String \"k\"",
		},
		{
			name: "macro",
			src:  "#macro N 1 + \\\n 2 // note\nx = N;",
			want: "Document\n  MacroDeclaration \"N\" \"1 + \\\\\\n 2 // note\"\n" +
				"  AssignmentExpression =\n    Identifier \"x\"\n    Identifier \"N\"",
		},
		{
			name: "template",
			src:  "s = $\"a{b}c\";",
			want: "Document\n  AssignmentExpression =\n    Identifier \"s\"\n    TemplateLiteral\n" +
				"      TemplateText \"a\"\n      TemplateExpression\n        Identifier \"b\"\n      TemplateText \"c\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, dump(t, tt.src))
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		line    int
		column  int
		message string
	}{
		{"unexpected token", "x = );", 1, 5, "unexpected ')' [CloseParen]"},
		{"unexpected end", "if (", 1, 5, "unexpected end of file"},
		{"bare expression", "\nx + 1;", 2, 3, "unexpected expression"},
		{"detached increment", "x ++;", 1, 3, ""},
		{"unterminated string", "s = \"abc", 1, 5, ""},
		{"unknown directive", "#bogus", 1, 1, "unknown directive '#bogus'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := parser.Parse(tt.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, parser.ErrSyntax)

			var syntaxErr *parser.SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, tt.line, syntaxErr.Line)
			assert.Equal(t, tt.column, syntaxErr.Column)
			if tt.message != "" {
				assert.Equal(t, tt.message, syntaxErr.Message)
			}
		})
	}
}

func TestParseDepthLimit(t *testing.T) {
	t.Parallel()

	deep := "x = " + strings.Repeat("- ", 100) + "1;"

	_, err := parser.Parse(deep)
	require.NoError(t, err)

	_, err = parser.Parse(deep, parser.WithMaxDepth(50))
	var syntaxErr *parser.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, parser.MessageNestingTooDeep, syntaxErr.Message)

	nested := strings.Repeat("{", 10000) + strings.Repeat("}", 10000)
	_, err = parser.Parse(nested)
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, parser.MessageNestingTooDeep, syntaxErr.Message)
}

func TestParseChainDepthLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		tooDeep bool
	}{
		{name: "member chain", src: "x = " + strings.Repeat("a.", 500) + "a;"},
		{name: "call chain", src: "f" + strings.Repeat("()", 500) + ";"},
		{name: "binary chain", src: "x = 1" + strings.Repeat(" + 1", 500) + ";"},
		{name: "long member chain", src: "x = " + strings.Repeat("a.", 300000) + "a;", tooDeep: true},
		{name: "long call chain", src: "f" + strings.Repeat("()", 300000) + ";", tooDeep: true},
		{name: "long index chain", src: "x = a" + strings.Repeat("[0]", 300000) + ";", tooDeep: true},
		{name: "long binary chain", src: "x = 1" + strings.Repeat(" + 1", 300000) + ";", tooDeep: true},
		{name: "long logical chain", src: "x = a" + strings.Repeat(" && a", 300000) + ";", tooDeep: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := parser.Parse(tt.src)
			if !tt.tooDeep {
				require.NoError(t, err)
				return
			}
			var syntaxErr *parser.SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, parser.MessageNestingTooDeep, syntaxErr.Message)
		})
	}

	_, err := parser.Parse("x = "+strings.Repeat("a.", 100)+"a;", parser.WithMaxDepth(50))
	var syntaxErr *parser.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, parser.MessageNestingTooDeep, syntaxErr.Message)
}

func TestParseCommentsManyStatements(t *testing.T) {
	t.Parallel()

	var src strings.Builder
	for i := range 5000 {
		src.WriteString("var v = foo(a, b) + 1; // c\n")
		if i%100 == 0 {
			src.WriteString("// section\n")
		}
	}

	res, err := parser.Parse(src.String())
	require.NoError(t, err)
	require.NoError(t, gmlast.CheckSpans(res.Root))

	require.Len(t, res.Comments.Groups(), 5050)

	seen := make(map[int]gmlast.Placement)
	gmlast.Walk(res.Root, func(n gmlast.Node) bool {
		for _, p := range []gmlast.Placement{gmlast.Leading, gmlast.Trailing, gmlast.Dangling} {
			for _, a := range res.Comments.Get(n, p) {
				seen[a.Group.ID] = p
			}
		}
		return true
	})
	require.Len(t, seen, 5050)

	trailing := 0
	for _, p := range seen {
		if p == gmlast.Trailing {
			trailing++
		}
	}
	assert.Equal(t, 5000, trailing)
}

func TestParseComments(t *testing.T) {
	t.Parallel()

	src := "// lead\nx = 1; /* a */ // b\n\n{\n}\n/* tail */"
	res, err := parser.Parse(src)
	require.NoError(t, err)

	groups := res.Comments.Groups()
	require.Len(t, groups, 3)

	assert.Equal(t, "// lead", groups[0].Text)
	assert.True(t, groups[0].EndsWithLineComment)
	assert.Equal(t, "/* a */ // b", groups[1].Text)
	assert.Equal(t, "/* tail */", groups[2].Text)
	assert.False(t, groups[2].EndsWithLineComment)

	for i, g := range groups {
		assert.Equal(t, i+1, g.ID)
		assert.Equal(t, g.Text, g.Span.Text(src))
	}

	assign := res.Root.Statements[0]
	block := res.Root.Statements[1]

	leading := res.Comments.Get(assign, gmlast.Leading)
	require.Len(t, leading, 1)
	assert.Same(t, groups[0], leading[0].Group)
	assert.True(t, leading[0].OwnLine)

	trailing := res.Comments.Get(assign, gmlast.Trailing)
	require.Len(t, trailing, 1)
	assert.Same(t, groups[1], trailing[0].Group)
	assert.False(t, trailing[0].OwnLine)

	tail := res.Comments.Get(block, gmlast.Trailing)
	require.Len(t, tail, 1)
	assert.Same(t, groups[2], tail[0].Group)
}

func TestParseDanglingComment(t *testing.T) {
	t.Parallel()

	res, err := parser.Parse("f(/* none */);")
	require.NoError(t, err)

	call := res.Root.Statements[0].(*gmlast.CallExpression)
	dangling := res.Comments.Get(call.Args, gmlast.Dangling)
	require.Len(t, dangling, 1)
	assert.Equal(t, "/* none */", dangling[0].Group.Text)
}

func TestParseMacroCommentsNotGrouped(t *testing.T) {
	t.Parallel()

	res, err := parser.Parse("#macro A 1 // one\n// two\n")
	require.NoError(t, err)

	groups := res.Comments.Groups()
	require.Len(t, groups, 1)
	assert.Equal(t, "// two", groups[0].Text)
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	toks, err := parser.Tokenize("x = $FF + #A0B0C0; // c")
	require.NoError(t, err)

	kinds := make([]parser.TokenKind, 0, len(toks))
	for _, tok := range toks {
		if !tok.Kind.IsTrivia() {
			kinds = append(kinds, tok.Kind)
		}
	}
	assert.Equal(t, []parser.TokenKind{
		parser.TokenIdentifier,
		parser.TokenAssign,
		parser.TokenHexIntegerLiteral,
		parser.TokenPlus,
		parser.TokenHexIntegerLiteral,
		parser.TokenSemiColon,
		parser.TokenEOF,
	}, kinds)

	last := toks[len(toks)-2]
	assert.Equal(t, parser.TokenSingleLineComment, last.Kind)
	assert.Equal(t, "// c", last.Text)
}

func TestNormalizeDecimal(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"007.50": "7.50",
		".5":     "0.5",
		"5.":     "5.0",
		"0.25":   "0.25",
		"10.0":   "10.0",
	}
	for in, want := range tests {
		assert.Equal(t, want, parser.NormalizeDecimal(in), in)
	}
}
