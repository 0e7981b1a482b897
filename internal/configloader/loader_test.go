package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gmlfmt/pkg/config"
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.DefaultFormatOptions(), result.Config.Format)
	assert.Equal(t, []string{".gml"}, result.Config.Extensions)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectConfigName), `
format:
  use_tabs: false
  tab_width: 2
ignore:
  - "extensions/**"
`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	// Keys absent from the file keep their defaults.
	assert.False(t, result.Config.Format.UseTabs)
	assert.Equal(t, 2, result.Config.Format.TabWidth)
	assert.Equal(t, 80, result.Config.Format.PrintWidth)
	assert.True(t, result.Config.Format.ValidateOutput)
	assert.Equal(t, []string{"extensions/**"}, result.Config.Ignore)
	assert.Len(t, result.LoadedFrom, 1)
}

func TestLoad_ProjectConfigSearchesUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".gmlfmt.yaml"), "format:\n  print_width: 120\n")

	nested := filepath.Join(root, "objects", "o_player")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolated(nested))
	require.NoError(t, err)
	assert.Equal(t, 120, result.Config.Format.PrintWidth)
}

func TestFindProjectConfig_StopsAtGameMakerProject(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ProjectConfigName), "format:\n  print_width: 100\n")

	project := filepath.Join(outer, "MyGame")
	writeFile(t, filepath.Join(project, "MyGame.yyp"), "{}")
	scripts := filepath.Join(project, "scripts", "scr_move")
	require.NoError(t, os.MkdirAll(scripts, 0o755))

	path, err := FindProjectConfig(context.Background(), scripts)
	require.NoError(t, err)
	assert.Empty(t, path, "search must not leave the GameMaker project")

	writeFile(t, filepath.Join(project, ".gmlfmt.yaml"), "format:\n  print_width: 90\n")
	path, err = FindProjectConfig(context.Background(), scripts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(project, ".gmlfmt.yaml"), path)
}

func TestLoad_ExplicitConfigWins(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectConfigName), "format:\n  tab_width: 2\n")
	custom := filepath.Join(dir, "custom.yml")
	writeFile(t, custom, "format:\n  tab_width: 8\n")

	opts := isolated(dir)
	opts.ExplicitPath = custom

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 8, result.Config.Format.TabWidth)
	assert.Equal(t, []string{filepath.Join(dir, ProjectConfigName), custom}, result.LoadedFrom)
}

func TestLoad_OverridesWin(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectConfigName), "format:\n  print_width: 100\nignore: [\"a/**\"]\n")

	width := 40
	useTabs := false
	opts := isolated(dir)
	opts.Overrides = &Overrides{PrintWidth: &width, UseTabs: &useTabs, Ignore: []string{"b/**"}}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 40, result.Config.Format.PrintWidth)
	assert.False(t, result.Config.Format.UseTabs)
	assert.Equal(t, []string{"a/**", "b/**"}, result.Config.Ignore)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"zero tab width", "format:\n  tab_width: 0\n", "format.tab_width"},
		{"negative print width", "format:\n  print_width: -1\n", "format.print_width"},
		{"unknown brace style", "format:\n  brace_style: sideways\n", "format.brace_style"},
		{"extension without dot", "extensions: [gml]\n", "extensions[0]"},
		{"bad glob", "ignore: [\"[\"]\n", "ignore[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, ProjectConfigName), tt.content)

			_, err := Load(context.Background(), isolated(dir))
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestLoad_ReservedOptionsWarn(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectConfigName), "format:\n  brace_style: same-line\n  remove_syntax_extensions: true\n")

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	assert.Len(t, result.Warnings, 2)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GMLFMT_USE_TABS", "false")
	t.Setenv("GMLFMT_TAB_WIDTH", "2")
	t.Setenv("GMLFMT_IGNORE", "a/**, b/**")

	cfg := config.NewConfig()
	require.NoError(t, LoadFromEnv(cfg))

	assert.False(t, cfg.Format.UseTabs)
	assert.Equal(t, 2, cfg.Format.TabWidth)
	assert.Equal(t, []string{"a/**", "b/**"}, cfg.Ignore)
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	t.Setenv("GMLFMT_PRINT_WIDTH", "wide")

	err := LoadFromEnv(config.NewConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GMLFMT_PRINT_WIDTH")
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	require.Len(t, vars, len(envMappings))
	for i := 1; i < len(vars); i++ {
		assert.Less(t, vars[i-1].Name, vars[i].Name)
	}
	assert.Equal(t, "GMLFMT_TAB_WIDTH", GetEnvVarName("format.tab_width"))
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ProjectConfigName)
	require.NoError(t, WriteConfig(path, []byte("format: {}\n"), false))
	require.Error(t, WriteConfig(path, []byte("format: {}\n"), false))
	require.NoError(t, WriteConfig(path, []byte("jobs: 2\n"), true))
}
