package mdblocks_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gmlfmt/pkg/config"
	"github.com/yaklabco/gmlfmt/pkg/format"
	"github.com/yaklabco/gmlfmt/pkg/mdblocks"
)

func TestFind(t *testing.T) {
	t.Parallel()

	src := "# Movement\n\n```gml\nx+=1;\n```\n\n```js\nlet a=1;\n```\n\n```\nshow_debug_message(\"hi\");\n```\n"
	blocks := mdblocks.Find([]byte(src))
	require.Len(t, blocks, 2)

	assert.Equal(t, "gml", blocks[0].Info)
	assert.Equal(t, 4, blocks[0].Line)
	assert.Equal(t, "x+=1;\n", blocks[0].Code)
	assert.Equal(t, "x+=1;\n", src[blocks[0].Start:blocks[0].End])

	assert.Empty(t, blocks[1].Info)
	assert.Equal(t, "show_debug_message(\"hi\");\n", blocks[1].Code)
}

func TestFormat(t *testing.T) {
	t.Parallel()

	opts := config.DefaultFormatOptions()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "tagged block",
			src:  "Intro\n\n```gml\nvar x=1;\nif (x) y=2;\n```\n\nOutro\n",
			want: "Intro\n\n```gml\nvar x = 1;\nif (x)\n{\n\ty = 2;\n}\n```\n\nOutro\n",
		},
		{
			name: "other languages untouched",
			src:  "```js\nvar x=1;\n```\n",
			want: "```js\nvar x=1;\n```\n",
		},
		{
			name: "blockquote prefix kept",
			src:  "> ```gml\n> a=1;\n> ```\n",
			want: "> ```gml\n> a = 1;\n> ```\n",
		},
		{
			name: "no blocks",
			src:  "just text\n",
			want: "just text\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, errs := mdblocks.Format([]byte(tt.src), opts)
			assert.Empty(t, errs)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestFormatKeepsBrokenBlocks(t *testing.T) {
	t.Parallel()

	src := "```gml\nif (\n```\n\n```gml\nx=1;\n```\n"
	got, errs := mdblocks.Format([]byte(src), config.DefaultFormatOptions())

	require.Len(t, errs, 1)
	assert.Equal(t, 2, errs[0].Line)
	require.ErrorIs(t, errs[0], format.ErrSyntax)
	assert.Contains(t, errs[0].Error(), "code block at line 2")
	assert.Equal(t, "```gml\nif (\n```\n\n```gml\nx = 1;\n```\n", string(got))
}

func TestFormatFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(path, []byte("```gml\nx=1;\n```\n"), 0o644))

	opts := format.FileOptions{Format: config.DefaultFormatOptions(), Write: true}
	res, err := mdblocks.FormatFile(context.Background(), path, opts)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.True(t, res.Written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "```gml\nx = 1;\n```\n", string(data))
}
