package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/yaklabco/gmlfmt/internal/logging"
	"github.com/yaklabco/gmlfmt/pkg/format"
	"github.com/yaklabco/gmlfmt/pkg/mdblocks"
)

// ProcessFunc formats a single file.
type ProcessFunc func(ctx context.Context, path string, opts format.FileOptions) (*format.FileResult, error)

// Runner formats files concurrently.
type Runner struct {
	// Process handles GML files.
	Process ProcessFunc

	// ProcessMarkdown handles Markdown files when Options.Markdown is set.
	ProcessMarkdown ProcessFunc
}

// New creates a Runner backed by format.FormatFile and mdblocks.FormatFile.
func New() *Runner {
	return &Runner{
		Process:         format.FormatFile,
		ProcessMarkdown: mdblocks.FormatFile,
	}
}

// Run discovers files under opts.Paths and formats them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate
// stats. A file that fails to format is recorded in its outcome and does
// not stop the others.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
	}
	result.Stats.FilesDiscovered = len(files)

	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	fileOpts := format.FileOptionsFromConfig(opts.Config)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, fileOpts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order; index by path and rebuild in file order.
	outcomes := make(map[string]FileOutcome, len(files))

	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesModified, result.Stats.FilesWritten,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
	)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	opts format.FileOptions,
) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := FileOutcome{Path: path}
		logger := logging.ForFile(ctx, path)

		res, err := r.processorFor(path)(ctx, path, opts)
		if err != nil {
			outcome.Error = err
			logger.Debug("format failed", logging.FieldError, err)
		} else {
			outcome.Result = res
			logger.Debug("formatted", logging.FieldOutcome, res.Summary())
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

func (r *Runner) processorFor(path string) ProcessFunc {
	if isMarkdown(strings.ToLower(filepath.Ext(path))) && r.ProcessMarkdown != nil {
		return r.ProcessMarkdown
	}
	if r.Process == nil {
		return format.FormatFile
	}
	return r.Process
}
