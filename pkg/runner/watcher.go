package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/gmlfmt/internal/logging"
	"github.com/yaklabco/gmlfmt/pkg/format"
)

// DefaultDebounce is how long a file must stay quiet after a change before
// it is formatted.
const DefaultDebounce = 100 * time.Millisecond

// Watcher formats files in place whenever they change on disk.
type Watcher struct {
	runner   *Runner
	fs       *fsnotify.Watcher
	matcher  *matcher
	roots    []string
	explicit map[string]bool
	fileOpts format.FileOptions
	debounce time.Duration

	// OnOutcome, when set, receives the outcome of every formatting pass.
	// It is called from timer goroutines.
	OnOutcome func(FileOutcome)

	mu      sync.Mutex
	pending map[string]*time.Timer
	closed  bool
	wg      sync.WaitGroup
}

// NewWatcher creates a watcher for opts.Paths. Formatting always writes
// files back, regardless of opts.Config.Write. debounce <= 0 selects
// DefaultDebounce.
func NewWatcher(r *Runner, opts Options, debounce time.Duration) (*Watcher, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m, err := newMatcher(workDir, opts)
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fileOpts := format.FileOptionsFromConfig(opts.Config)
	fileOpts.Write = true
	fileOpts.Diff = false

	w := &Watcher{
		runner:   r,
		matcher:  m,
		explicit: make(map[string]bool),
		fileOpts: fileOpts,
		debounce: debounce,
		pending:  make(map[string]*time.Timer),
	}

	for _, p := range opts.effectivePaths() {
		if !filepath.IsAbs(p) {
			p = filepath.Join(workDir, p)
		}
		w.roots = append(w.roots, filepath.Clean(p))
	}

	return w, nil
}

// Start registers the watched directories and begins handling events in
// the background until ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	w.fs = fsWatcher

	for _, root := range w.roots {
		info, err := os.Stat(root)
		if err != nil {
			_ = fsWatcher.Close()
			return fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			w.explicit[root] = true
			root = filepath.Dir(root)
			if err := fsWatcher.Add(root); err != nil {
				_ = fsWatcher.Close()
				return fmt.Errorf("watch %s: %w", root, err)
			}
			continue
		}
		if err := w.addRecursive(root); err != nil {
			_ = fsWatcher.Close()
			return err
		}
	}

	logging.FromContext(ctx).Debug("watching", logging.FieldPaths, w.fs.WatchList())

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.eventLoop(ctx)
	}()

	return nil
}

// Close stops the watcher and cancels pending formatting passes.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	if w.fs == nil {
		return nil
	}
	err := w.fs.Close()
	w.wg.Wait()
	return err
}

// addRecursive watches root and every directory below it that discovery
// would descend into.
func (w *Watcher) addRecursive(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(entry.Name(), ".") || w.matcher.excludedDir(path)) {
			return filepath.SkipDir
		}
		return w.fs.Add(path)
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	return nil
}

func (w *Watcher) eventLoop(ctx context.Context) {
	logger := logging.FromContext(ctx)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.handleEvent(ctx, event.Name)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error", logging.FieldError, err)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}

	if info.IsDir() {
		if w.underRoot(path) && !strings.HasPrefix(filepath.Base(path), ".") && !w.matcher.excludedDir(path) {
			if err := w.addRecursive(path); err != nil {
				logging.FromContext(ctx).Warn("watch new directory failed",
					logging.FieldPath, path, logging.FieldError, err)
			}
		}
		return
	}

	if !w.wants(ctx, path) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if t, ok := w.pending[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() { w.process(ctx, path) })
}

// wants reports whether a changed file should be formatted.
func (w *Watcher) wants(ctx context.Context, path string) bool {
	if w.explicit[path] {
		return true
	}
	if strings.HasPrefix(filepath.Base(path), ".") || !w.underRoot(path) {
		return false
	}
	return w.matcher.matches(ctx, path, false)
}

// underRoot reports whether path lies inside a watched directory root.
func (w *Watcher) underRoot(path string) bool {
	for _, root := range w.roots {
		if w.explicit[root] {
			continue
		}
		rel, err := filepath.Rel(root, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) process(ctx context.Context, path string) {
	w.mu.Lock()
	delete(w.pending, path)
	closed := w.closed
	w.mu.Unlock()
	if closed || ctx.Err() != nil {
		return
	}

	logger := logging.ForFile(ctx, path)
	outcome := FileOutcome{Path: path}

	res, err := w.runner.processorFor(path)(ctx, path, w.fileOpts)
	switch {
	case err != nil:
		outcome.Error = err
		var ioErr *format.IOError
		if errors.As(err, &ioErr) {
			logger.Error("format failed", logging.FieldError, err)
		} else {
			logger.Warn("left file unformatted", logging.FieldError, err)
		}
	default:
		outcome.Result = res
		if res.Written {
			logger.Info("formatted")
		}
	}

	if w.OnOutcome != nil {
		w.OnOutcome(outcome)
	}
}
