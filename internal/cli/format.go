package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gmlfmt/internal/configloader"
	"github.com/yaklabco/gmlfmt/internal/logging"
	"github.com/yaklabco/gmlfmt/internal/ui/pretty"
	"github.com/yaklabco/gmlfmt/pkg/config"
	"github.com/yaklabco/gmlfmt/pkg/diff"
	"github.com/yaklabco/gmlfmt/pkg/format"
	"github.com/yaklabco/gmlfmt/pkg/reporter"
	"github.com/yaklabco/gmlfmt/pkg/runner"
)

// stdinPath names standard input in reports.
const stdinPath = "<stdin>"

type formatFlags struct {
	write      bool
	check      bool
	diff       bool
	stdin      bool
	useTabs    bool
	tabWidth   int
	printWidth int
	noValidate bool
	debugInfo  bool
	jobs       int
	ignore     []string
	include    []string
	extensions []string
	markdown   bool
	sniff      bool
	output     string
	noBackups  bool
	noContext  bool
	compact    bool
	all        bool
}

func newFormatCommand(info BuildInfo) *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Format GML files",
		Long:  formatLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, flags, info)
		},
		Annotations: exitCodeAnnotations,
	}

	cmd.Flags().BoolVarP(&flags.write, "write", "w", true, "write formatted output back to the files")
	cmd.Flags().BoolVar(&flags.check, "check", false, "report unformatted files without writing them")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print a diff of the changes without writing them")
	addFormatFlags(cmd, flags)

	return cmd
}

func newCheckCommand(info BuildInfo) *cobra.Command {
	flags := &formatFlags{check: true}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check that GML files are formatted",
		Long: `Check that GML files are already formatted without changing them.

Exits with status 1 when any file would be reformatted and 2 when a file
fails to parse.

Examples:
  gmlfmt check                   # Check the current directory
  gmlfmt check scripts/          # Check one directory
  gmlfmt check -o json           # Machine-readable result for CI`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, flags, info)
		},
		Annotations: exitCodeAnnotations,
	}

	addFormatFlags(cmd, flags)

	return cmd
}

const formatLongDescription = `Format GameMaker Language source files.

By default, formats every .gml file in the current directory and its
subdirectories in place. Files that fail to parse are reported and left
untouched.

Examples:
  gmlfmt format                          # Format the current directory
  gmlfmt format scripts/scr_move.gml     # Format one file
  gmlfmt format --check                  # Only report unformatted files
  gmlfmt format --diff                   # Show changes without writing
  gmlfmt format --stdin < in.gml         # Format standard input
  gmlfmt format --markdown docs/         # Also format gml blocks in Markdown`

func addFormatFlags(cmd *cobra.Command, flags *formatFlags) {
	defaults := config.DefaultFormatOptions()

	cmd.Flags().BoolVar(&flags.stdin, "stdin", false, "format standard input and print the result")
	cmd.Flags().BoolVar(&flags.useTabs, "use-tabs", defaults.UseTabs, "indent with tabs instead of spaces")
	cmd.Flags().IntVar(&flags.tabWidth, "tab-width", defaults.TabWidth, "columns per indentation level")
	cmd.Flags().IntVar(&flags.printWidth, "print-width", defaults.PrintWidth, "line width to wrap at")
	cmd.Flags().BoolVar(&flags.noValidate, "no-validate", false, "skip re-parsing the output to verify it")
	cmd.Flags().BoolVar(&flags.debugInfo, "debug-info", false,
		"print the syntax tree, layout document and timings instead of formatting")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only format files matching these glob patterns")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to format (default .gml)")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "also format gml code blocks in Markdown files")
	cmd.Flags().BoolVar(&flags.sniff, "sniff", false, "skip .gml files whose content is not GameMaker Language")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "text",
		"report format: text, table, json, sarif, diff, summary")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when writing")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source lines under syntax errors")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output where applicable")
	cmd.Flags().BoolVar(&flags.all, "all", false, "also list files that were already formatted")
}

// overrides collects the flags that were given explicitly.
func (f *formatFlags) overrides(cmd *cobra.Command) (*configloader.Overrides, error) {
	o := &configloader.Overrides{
		Ignore:     f.ignore,
		Extensions: f.extensions,
	}

	changed := cmd.Flags().Changed
	if changed("use-tabs") {
		o.UseTabs = &f.useTabs
	}
	if changed("tab-width") {
		o.TabWidth = &f.tabWidth
	}
	if changed("print-width") {
		o.PrintWidth = &f.printWidth
	}
	if f.noValidate {
		validate := false
		o.ValidateOutput = &validate
	}
	if changed("jobs") {
		o.Jobs = &f.jobs
	}
	if f.noBackups {
		o.NoBackups = &f.noBackups
	}

	output := f.output
	if f.diff && !changed("output") {
		output = string(config.FormatDiff)
	}
	parsed, err := reporter.ParseFormat(output)
	if err != nil {
		return nil, &UsageError{Err: err}
	}
	o.Output = &parsed

	return o, nil
}

// loadConfig resolves the configuration from files, environment and
// overrides.
func loadConfig(cmd *cobra.Command, overrides *configloader.Overrides) (*config.Config, string, error) {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Overrides:    overrides,
	})
	if err != nil {
		return nil, "", errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldUseTabs, cfg.Format.UseTabs,
		logging.FieldTabWidth, cfg.Format.TabWidth,
		logging.FieldPrintWidth, cfg.Format.PrintWidth,
		logging.FieldValidate, cfg.Format.ValidateOutput,
		logging.FieldJobs, cfg.Jobs,
	)

	return cfg, workDir, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}

func runFormat(cmd *cobra.Command, args []string, flags *formatFlags, info BuildInfo) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	if flags.stdin && len(args) > 0 {
		return &UsageError{Err: errors.New("--stdin cannot be combined with paths")}
	}

	overrides, err := flags.overrides(cmd)
	if err != nil {
		return err
	}

	cfg, workDir, err := loadConfig(cmd, overrides)
	if err != nil {
		return err
	}
	cfg.Check = flags.check
	cfg.Markdown = flags.markdown
	cfg.Write = flags.write && !flags.check && !flags.diff

	if flags.stdin {
		return runStdin(cmd, cfg, flags)
	}
	if flags.debugInfo {
		return runDebugInfo(cmd, args, cfg)
	}

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		IncludeGlobs: flags.include,
		Sniff:        flags.sniff,
		Markdown:     cfg.Markdown,
		Jobs:         cfg.Jobs,
		Config:       cfg,
	}

	logger.Debug("starting format run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New().Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("format run failed"), err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:        cmd.OutOrStdout(),
		ErrorWriter:   cmd.ErrOrStderr(),
		Format:        cfg.Output,
		Color:         colorMode(cmd),
		ShowContext:   !flags.noContext,
		ShowSummary:   true,
		ShowUnchanged: flags.all,
		Write:         cfg.Write,
		Compact:       flags.compact,
		ToolVersion:   info.Version,
		WorkingDir:    workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if code := ExitCodeFromResult(result, cfg.Check); code != ExitSuccess {
		return &ExitError{Code: code}
	}
	return nil
}

// runStdin formats standard input to standard output. Failures are
// printed as diagnostics and nothing is written to standard output.
func runStdin(cmd *cobra.Command, cfg *config.Config, flags *formatFlags) error {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		logging.Default().Info("reading GML from the terminal; end input with Ctrl-D")
	}

	src, err := io.ReadAll(in)
	if err != nil {
		return &format.IOError{Op: "read", Path: stdinPath, Err: err}
	}

	opts := cfg.Format
	opts.DebugInfo = flags.debugInfo

	res, err := format.Format(string(src), opts)
	if err != nil {
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.ErrOrStderr()))
		fmt.Fprint(cmd.ErrOrStderr(), styles.FormatFileError(stdinPath, err, src))
		return &ExitError{Code: ExitCode(err)}
	}

	out := cmd.OutOrStdout()
	switch {
	case flags.debugInfo:
		fmt.Fprint(out, res.String())
	case flags.check:
		if res.Output != string(src) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: not formatted\n", stdinPath)
			return &ExitError{Code: ExitUnformatted}
		}
	case flags.diff:
		d := diff.Generate(stdinPath, string(src), res.Output)
		if d.HasChanges() {
			fmt.Fprint(out, d.String())
		}
	default:
		fmt.Fprint(out, res.Output)
	}
	return nil
}

// runDebugInfo prints the debug dump of each named file. Files are never
// written in this mode.
func runDebugInfo(cmd *cobra.Command, args []string, cfg *config.Config) error {
	if len(args) == 0 {
		return &UsageError{Err: errors.New("--debug-info needs --stdin or at least one file")}
	}

	opts := cfg.Format
	opts.DebugInfo = true
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.ErrOrStderr()))

	code := ExitSuccess
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			return &format.IOError{Op: "read", Path: path, Err: err}
		}

		res, err := format.Format(string(src), opts)
		if err != nil {
			fmt.Fprint(cmd.ErrOrStderr(), styles.FormatFileError(path, err, src))
			code = max(code, ExitCode(err))
			continue
		}

		if len(args) > 1 {
			fmt.Fprintln(cmd.OutOrStdout(), styles.FormatFileHeader(path, "debug"))
		}
		fmt.Fprint(cmd.OutOrStdout(), res.String())
	}

	if code != ExitSuccess {
		return &ExitError{Code: code}
	}
	return nil
}
