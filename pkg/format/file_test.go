package format_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gmlfmt/pkg/format"
	"github.com/yaklabco/gmlfmt/pkg/fsutil"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "obj_player_Step_0.gml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestFormatFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("writes formatted content", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "var x=1;")
		res, err := format.FormatFile(ctx, path, format.FileOptions{Format: defaults(), Write: true})
		require.NoError(t, err)

		assert.True(t, res.Changed)
		assert.True(t, res.Written)
		assert.Equal(t, "formatted", res.Summary())
		assert.Equal(t, "var x = 1;", readFile(t, path))
	})

	t.Run("check only leaves file alone", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "var x=1;")
		res, err := format.FormatFile(ctx, path, format.FileOptions{Format: defaults(), Diff: true})
		require.NoError(t, err)

		assert.True(t, res.Changed)
		assert.False(t, res.Written)
		assert.Equal(t, "not formatted", res.Summary())
		require.NotNil(t, res.Diff)
		assert.Equal(t, 1, res.Diff.Additions)
		assert.Equal(t, "var x=1;", readFile(t, path))
	})

	t.Run("unchanged file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "var x = 1;")
		res, err := format.FormatFile(ctx, path, format.FileOptions{Format: defaults(), Write: true, Diff: true})
		require.NoError(t, err)

		assert.False(t, res.Changed)
		assert.False(t, res.Written)
		assert.Nil(t, res.Diff)
		assert.Equal(t, "unchanged", res.Summary())
	})

	t.Run("backup created before write", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "x=1")
		res, err := format.FormatFile(ctx, path, format.FileOptions{
			Format: defaults(),
			Write:  true,
			Backup: fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar},
		})
		require.NoError(t, err)

		assert.True(t, res.BackupCreated)
		assert.Equal(t, "x=1", readFile(t, path+fsutil.BackupSuffix))
		assert.Equal(t, "x = 1;", readFile(t, path))
	})

	t.Run("syntax error leaves file alone", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "var = ;")
		_, err := format.FormatFile(ctx, path, format.FileOptions{Format: defaults(), Write: true})
		require.ErrorIs(t, err, format.ErrSyntax)
		assert.Equal(t, "var = ;", readFile(t, path))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := format.FormatFile(ctx, filepath.Join(t.TempDir(), "none.gml"), format.FileOptions{Format: defaults()})
		require.ErrorIs(t, err, format.ErrIO)
		assert.ErrorIs(t, err, fsutil.ErrNotFound)

		var ioErr *format.IOError
		require.ErrorAs(t, err, &ioErr)
		assert.Equal(t, "read", ioErr.Op)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := format.FormatFile(cancelled, writeFile(t, "x = 1;"), format.FileOptions{Format: defaults()})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestFormatFileInPlace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("formats", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "if(a)b()")
		require.NoError(t, format.FormatFileInPlace(ctx, path, defaults()))
		assert.Equal(t, "if (a)\n{\n\tb();\n}", readFile(t, path))
	})

	t.Run("swallows syntax errors", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "if (")
		require.NoError(t, format.FormatFileInPlace(ctx, path, defaults()))
		assert.Equal(t, "if (", readFile(t, path))
	})

	t.Run("reports io errors", func(t *testing.T) {
		t.Parallel()

		err := format.FormatFileInPlace(ctx, filepath.Join(t.TempDir(), "missing.gml"), defaults())
		assert.ErrorIs(t, err, format.ErrIO)
	})
}
