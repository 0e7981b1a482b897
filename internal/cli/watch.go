package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gmlfmt/internal/configloader"
	"github.com/yaklabco/gmlfmt/internal/logging"
	"github.com/yaklabco/gmlfmt/pkg/runner"
)

type watchFlags struct {
	ignore   []string
	markdown bool
	noBackup bool
	debounce time.Duration
}

func newWatchCommand() *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Format GML files whenever they change",
		Long: `Watch directories and format GML files in place each time they are saved.

Files that fail to parse are reported and left untouched until the next
change. Stop watching with Ctrl-C.

Examples:
  gmlfmt watch                   # Watch the current directory
  gmlfmt watch objects/ scripts/ # Watch selected directories`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, flags)
		},
	}

	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "also format gml code blocks in Markdown files")
	cmd.Flags().BoolVar(&flags.noBackup, "no-backups", false, "disable backup creation when writing")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", runner.DefaultDebounce,
		"quiet period after a change before formatting")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, flags *watchFlags) error {
	overrides := &configloader.Overrides{Ignore: flags.ignore}
	if flags.noBackup {
		overrides.NoBackups = &flags.noBackup
	}

	cfg, workDir, err := loadConfig(cmd, overrides)
	if err != nil {
		return err
	}
	cfg.Markdown = flags.markdown

	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := logging.NewInteractive()
	logger.SetOutput(cmd.ErrOrStderr())
	if logging.Default().GetLevel() == log.DebugLevel {
		logger.SetLevel(log.DebugLevel)
	}
	ctx = logging.WithLogger(ctx, logger)

	w, err := runner.NewWatcher(runner.New(), runner.Options{
		Paths:      args,
		WorkingDir: workDir,
		Markdown:   cfg.Markdown,
		Config:     cfg,
	}, flags.debounce)
	if err != nil {
		return &UsageError{Err: err}
	}

	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	logger.Info("watching for changes", logging.FieldPaths, watchedPaths(args))

	<-ctx.Done()
	logger.Info("stopped watching")
	return nil
}

func watchedPaths(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}
