package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/gmlfmt/pkg/fsutil"
	"github.com/yaklabco/gmlfmt/pkg/langdetect"
)

// Discover finds GML files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m, err := newMatcher(workDir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		var found []string
		switch {
		case info.IsDir():
			found, err = m.walk(ctx, absPath)
			if err != nil {
				return nil, err
			}
		case m.explicitFile(absPath):
			found = []string{absPath}
		}

		for _, f := range found {
			if _, ok := seen[f]; !ok {
				seen[f] = struct{}{}
				files = append(files, f)
			}
		}
	}

	sort.Strings(files)

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// matcher holds the compiled selection rules of one discovery.
type matcher struct {
	workDir    string
	extensions []string
	include    []glob.Glob
	exclude    []glob.Glob
	follow     bool
	sniff      bool
}

func newMatcher(workDir string, opts Options) (*matcher, error) {
	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := compileGlobs(opts.effectiveExcludes())
	if err != nil {
		return nil, err
	}

	exts := make([]string, 0, len(opts.effectiveExtensions()))
	for _, e := range opts.effectiveExtensions() {
		exts = append(exts, strings.ToLower(e))
	}

	return &matcher{
		workDir:    workDir,
		extensions: exts,
		include:    include,
		exclude:    exclude,
		follow:     opts.FollowSymlinks,
		sniff:      opts.Sniff,
	}, nil
}

// CompileGlob compiles an ignore or include pattern. Patterns use "/" as
// the separator; "*" stays within one path segment and "**" crosses them.
func CompileGlob(pattern string) (glob.Glob, error) {
	g, err := glob.Compile(filepath.ToSlash(pattern), '/')
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return g, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := CompileGlob(p)
		if err != nil {
			return nil, err
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// rel returns path relative to the working directory with "/" separators.
func (m *matcher) rel(path string) string {
	relPath, err := filepath.Rel(m.workDir, path)
	if err != nil {
		relPath = path
	}
	return filepath.ToSlash(relPath)
}

// anyMatch reports whether one of globs matches the relative path or its
// base name.
func anyMatch(globs []glob.Glob, relPath string) bool {
	base := relPath
	if i := strings.LastIndexByte(relPath, '/'); i >= 0 {
		base = relPath[i+1:]
	}
	for _, g := range globs {
		if g.Match(relPath) || g.Match(base) {
			return true
		}
	}
	return false
}

// excludedDir reports whether a directory is ignored. "dir/**" ignores dir
// itself as well as its contents.
func (m *matcher) excludedDir(path string) bool {
	relPath := m.rel(path)
	return anyMatch(m.exclude, relPath) || anyMatch(m.exclude, relPath+"/")
}

// walk recursively walks a directory and returns matching files.
func (m *matcher) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if path != root && m.excludedDir(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // inaccessible targets are skipped
			}
			if info.IsDir() {
				if !m.follow {
					return nil
				}
				// Walk the target: WalkDir does not descend into a symlinked root.
				sub, err := m.walk(ctx, realPath)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if m.matches(ctx, path, false) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// explicitFile decides whether a path named on the command line is
// processed. Extensionless files are accepted when their content looks
// like GML.
func (m *matcher) explicitFile(path string) bool {
	return m.matches(context.Background(), path, true)
}

// matches checks a file against extensions, globs and, when sniffing,
// its content.
func (m *matcher) matches(ctx context.Context, path string, explicit bool) bool {
	relPath := m.rel(path)

	if anyMatch(m.exclude, relPath) {
		return false
	}
	if len(m.include) > 0 && !anyMatch(m.include, relPath) {
		return false
	}

	ext := strings.ToLower(filepath.Ext(path))
	if isMarkdown(ext) {
		return slices.Contains(m.extensions, ext)
	}

	switch {
	case slices.Contains(m.extensions, ext):
		if !m.sniff {
			return true
		}
	case explicit && ext == "":
	default:
		return false
	}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return false
	}
	return langdetect.IsGMLFile(path, content)
}

// isMarkdown reports whether ext names a Markdown file.
func isMarkdown(ext string) bool {
	return slices.Contains(MarkdownExtensions(), ext)
}
