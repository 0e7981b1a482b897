package format

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/gmlfmt/internal/logging"
	"github.com/yaklabco/gmlfmt/pkg/config"
	"github.com/yaklabco/gmlfmt/pkg/diff"
	"github.com/yaklabco/gmlfmt/pkg/fsutil"
)

// FileOptions controls FormatFile.
type FileOptions struct {
	// Format holds the layout settings.
	Format config.FormatOptions

	// Write replaces the file when formatting changed it.
	Write bool

	// Diff attaches a unified diff of the change to the result.
	Diff bool

	// Backup configures a copy of the original taken before writing.
	Backup fsutil.BackupConfig
}

// FileOptionsFromConfig derives file options from a resolved configuration.
func FileOptionsFromConfig(cfg *config.Config) FileOptions {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	opts := FileOptions{
		Format: cfg.Format,
		Write:  cfg.Write,
		Diff:   cfg.Output == config.FormatDiff,
	}
	if cfg.Write && cfg.Backups.Enabled && !cfg.NoBackups {
		opts.Backup = fsutil.BackupConfig{
			Enabled: true,
			Mode:    fsutil.BackupMode(cfg.Backups.Mode),
		}
	}
	return opts
}

// FileResult describes what formatting did to one file.
type FileResult struct {
	Path string

	// Changed is true when the formatted output differs from the file.
	Changed bool

	// Output is the formatted content.
	Output []byte

	// Diff is set when requested and the file changed.
	Diff *diff.Diff

	// Written is true when the file was replaced on disk.
	Written bool

	// BackupCreated is true when a backup copy was written first.
	BackupCreated bool

	// Skipped is true when the write was abandoned; SkipReason says why.
	Skipped    bool
	SkipReason string
}

// Summary returns a short human-readable outcome.
func (r *FileResult) Summary() string {
	switch {
	case r.Skipped:
		return "skipped: " + r.SkipReason
	case r.Written && r.BackupCreated:
		return "formatted (backup created)"
	case r.Written:
		return "formatted"
	case r.Changed:
		return "not formatted"
	}
	return "unchanged"
}

// FormatFile formats the file at path.
//
// The file is processed in these steps:
//  1. Read and hash the original content.
//  2. Format it; syntax and validation errors are returned as is.
//  3. Attach a diff when requested.
//  4. When writing, back up the original if enabled.
//  5. Replace the file atomically unless it changed on disk meanwhile,
//     in which case the result is marked skipped.
func FormatFile(ctx context.Context, path string, opts FileOptions) (*FileResult, error) {
	return FormatFileWith(ctx, path, opts, func(src string) (string, error) {
		res, err := Format(src, opts.Format)
		if err != nil {
			return "", err
		}
		return res.Output, nil
	})
}

// Transform produces the formatted form of a file's content.
type Transform func(src string) (string, error)

// FormatFileWith runs FormatFile with a custom transform in place of Format,
// keeping its read, diff, backup and write behaviour.
func FormatFileWith(ctx context.Context, path string, opts FileOptions, transform Transform) (*FileResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("format cancelled: %w", ctx.Err())
	default:
	}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	formatted, err := transform(string(content))
	if err != nil {
		return nil, err
	}

	result := &FileResult{
		Path:    path,
		Output:  []byte(formatted),
		Changed: formatted != string(content),
	}
	if !result.Changed {
		return result, nil
	}

	if opts.Diff {
		result.Diff = diff.Generate(path, string(content), formatted)
	}

	if !opts.Write {
		return result, nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			return nil, &IOError{Op: "backup", Path: path, Err: err}
		}
		result.BackupCreated = created
	}

	if err := fsutil.ReplaceFile(ctx, info, result.Output); err != nil {
		if errors.Is(err, fsutil.ErrModified) {
			result.Skipped = true
			result.SkipReason = "file modified during formatting"
			return result, nil
		}
		return nil, &IOError{Op: "write", Path: path, Err: err}
	}
	result.Written = true

	return result, nil
}

// FormatFileInPlace formats the file at path and writes the result back.
// When the source does not parse or the output fails validation, the file
// is left untouched and nil is returned. Only I/O failures are reported.
func FormatFileInPlace(ctx context.Context, path string, opts config.FormatOptions) error {
	logger := logging.ForFile(ctx, path)

	result, err := FormatFile(ctx, path, FileOptions{Format: opts, Write: true})
	if err != nil {
		var ioErr *IOError
		if errors.As(err, &ioErr) {
			return err
		}
		logger.Debug("left file unformatted", logging.FieldError, err)
		return nil
	}

	logger.Debug("formatted file", logging.FieldOutcome, result.Summary())
	return nil
}
