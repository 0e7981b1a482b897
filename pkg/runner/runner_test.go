package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gmlfmt/pkg/config"
	"github.com/yaklabco/gmlfmt/pkg/format"
	"github.com/yaklabco/gmlfmt/pkg/runner"
)

func TestNew(t *testing.T) {
	t.Parallel()

	r := runner.New()
	assert.NotNil(t, r.Process)
	assert.NotNil(t, r.ProcessMarkdown)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	res, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, res.Files)
	assert.Equal(t, 0, res.Stats.FilesDiscovered)
	assert.False(t, res.HasChanges())
	assert.False(t, res.HasFailures())
}

func TestRunner_Run_Check(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"clean.gml":  "x = 1;",
		"dirty.gml":  "x=1;",
		"broken.gml": "if (",
	})

	res, err := runner.New().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Config:     config.NewConfig(),
	})
	require.NoError(t, err)
	require.Len(t, res.Files, 3)

	assert.Equal(t, filepath.Join(dir, "broken.gml"), res.Files[0].Path)
	require.Error(t, res.Files[0].Error)
	assert.True(t, format.IsSyntaxError(res.Files[0].Error))

	assert.False(t, res.Files[1].Result.Changed)
	assert.True(t, res.Files[2].Result.Changed)
	assert.False(t, res.Files[2].Result.Written)

	assert.Equal(t, runner.Stats{
		FilesDiscovered: 3,
		FilesProcessed:  2,
		FilesChanged:    1,
		FilesErrored:    1,
		SyntaxErrors:    1,
	}, res.Stats)
	assert.True(t, res.HasChanges())
	assert.True(t, res.HasFailures())

	data, err := os.ReadFile(filepath.Join(dir, "dirty.gml"))
	require.NoError(t, err)
	assert.Equal(t, "x=1;", string(data))
}

func TestRunner_Run_Write(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.gml": "a=1;", "b.gml": "b=2;"})

	cfg := config.NewConfig()
	cfg.Write = true

	res, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Stats.FilesWritten)

	for name, want := range map[string]string{"a.gml": "a = 1;", "b.gml": "b = 2;"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, want, string(data))
	}
}

func TestRunner_Run_Markdown(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"README.md": "```gml\nx=1;\n```\n"})

	res, err := runner.New().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Markdown:   true,
		Config:     config.NewConfig(),
	})
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	require.NoError(t, res.Files[0].Error)
	assert.Equal(t, "```gml\nx = 1;\n```\n", string(res.Files[0].Result.Output))
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := map[string]string{}
	for i := range 20 {
		files[filepath.Join("scripts", string(rune('a'+i))+".gml")] = "v=" + string(rune('0'+i%10)) + ";"
	}
	writeTree(t, dir, files)

	serial, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 1})
	require.NoError(t, err)
	parallel, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 8})
	require.NoError(t, err)

	require.Len(t, parallel.Files, len(serial.Files))
	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
		assert.Equal(t, serial.Files[i].Result.Output, parallel.Files[i].Result.Output)
	}
	assert.Equal(t, serial.Stats, parallel.Stats)
}

func TestRunner_Run_ProcessErrorsDoNotStopBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.gml": "", "b.gml": "", "c.gml": ""})

	var calls atomic.Int32
	r := &runner.Runner{
		Process: func(_ context.Context, path string, _ format.FileOptions) (*format.FileResult, error) {
			calls.Add(1)
			if filepath.Base(path) == "b.gml" {
				return nil, errors.New("boom")
			}
			return &format.FileResult{Path: path}, nil
		},
	}

	res, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 2})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 2, res.Stats.FilesProcessed)
	assert.Equal(t, 1, res.Stats.FilesErrored)
	assert.Equal(t, 0, res.Stats.SyntaxErrors)
	require.EqualError(t, res.Files[1].Error, "boom")
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.gml": ""})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New().Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestResult_HasFailures(t *testing.T) {
	t.Parallel()

	var nilResult *runner.Result
	assert.False(t, nilResult.HasFailures())
	assert.False(t, nilResult.HasChanges())

	assert.True(t, (&runner.Result{Stats: runner.Stats{FilesErrored: 1}}).HasFailures())
	assert.True(t, (&runner.Result{Stats: runner.Stats{FilesChanged: 2}}).HasChanges())
}
