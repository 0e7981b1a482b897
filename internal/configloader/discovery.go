package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths lists the configuration files of each layer. An empty path
// means the layer has no file.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// ProjectConfigName is the file name written by "gmlfmt init".
const ProjectConfigName = ".gmlfmt.yml"

// projectConfigNames are tried in order in every directory of the upward
// search.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigNames = []string{ProjectConfigName, ".gmlfmt.yaml", "gmlfmt.yml", "gmlfmt.yaml"}

// layerConfigNames are the file names inside the system and user config
// directories.
//
//nolint:gochecknoglobals // Read-only lookup table.
var layerConfigNames = []string{"config.yaml", "config.yml"}

// gameMakerProjectExt marks the root directory of a GameMaker project.
const gameMakerProjectExt = ".yyp"

// DiscoverPaths finds the system, user and project configuration files
// for a run started in workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), layerConfigNames),
		User:    firstFile(userConfigDir(), layerConfigNames),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, "gmlfmt")
	}
	return "/etc/gmlfmt"
}

func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gmlfmt")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gmlfmt")
}

// FindProjectConfig walks from startDir towards the filesystem root and
// returns the first project config file it meets, or "" when there is
// none. The walk ends after the first directory that is a GameMaker
// project root (it holds a .yyp file), a VCS root or the home directory.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if path := firstFile(dir, projectConfigNames); path != "" {
			return path, nil
		}
		if dir == home || isProjectRoot(dir) || isVCSRoot(dir) {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// isProjectRoot reports whether dir holds a GameMaker project file.
func isProjectRoot(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == gameMakerProjectExt {
			return true
		}
	}
	return false
}

func isVCSRoot(dir string) bool {
	for _, marker := range []string{".git", ".hg", ".svn"} {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
