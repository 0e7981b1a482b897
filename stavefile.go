//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":    Build,
	"t":    Test.Default,
	"ts":   Test.Short,
	"l":    Lint.Default,
	"c":    Check,
	"i":    Install,
	"fmt":  Lint.Fmt,
	"corp": Corpus.Check,
	"idem": Corpus.Idempotence,
}

type (
	// Test runs the Go test suite.
	Test st.Namespace
	// Lint checks the Go sources.
	Lint st.Namespace
	// CI holds the checks run on every pull request.
	CI st.Namespace
	// Corpus runs the gmlfmt binary over the GML tree named by GMLFMT_CORPUS.
	Corpus st.Namespace
)

const binary = "bin/gmlfmt"

//nolint:gochecknoglobals // Build configuration.
var (
	buildInputs = []string{"cmd/", "pkg/", "internal/", "go.mod", "go.sum"}
	artifacts   = []string{"bin", "coverage.out", "coverage.html"}

	releasePlatforms = []string{
		"linux/amd64", "linux/arm64",
		"darwin/amd64", "darwin/arm64",
		"windows/amd64", "windows/arm64",
		"freebsd/amd64", "freebsd/arm64",
		"openbsd/amd64", "netbsd/amd64",
	}
)

// Build compiles bin/gmlfmt with version info when any source changed.
func Build() error {
	rebuild, err := target.Dir(binary, buildInputs...)
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building gmlfmt...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/gmlfmt")
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build and coverage output.
func Clean() error {
	for _, path := range artifacts {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install runs go install with version info.
func Install() error {
	fmt.Println("Installing gmlfmt...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/gmlfmt")
}

// Uninstall removes the binary placed by Install.
func Uninstall() error {
	dir, err := installDir()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, "gmlfmt")
	err = os.Remove(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Println("gmlfmt is not installed in", dir)
		return nil
	case err != nil:
		return fmt.Errorf("remove %s: %w", path, err)
	}
	fmt.Println("Removed", path)
	return nil
}

// Tidy downloads modules and tidies go.mod.
func Tidy() error {
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Coverage writes coverage.html from a full test run.
func Coverage() error {
	st.Deps(Test.Default)
	if err := sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html"); err != nil {
		return err
	}
	fmt.Println("Wrote coverage.html")
	return nil
}

// Default runs every test with the race detector and coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails", "-race", "-coverprofile=coverage.out", "-covermode=atomic")
}

// Verbose is Default with every test name printed.
func (Test) Verbose() error {
	return gotestsum("standard-verbose", "-race", "-coverprofile=coverage.out", "-covermode=atomic")
}

// Short skips the slow formatter scaling test.
func (Test) Short() error {
	return gotestsum("pkgname-and-test-fails", "-short")
}

// Bench runs the Go benchmarks.
func (Test) Bench() error {
	return gotestsum("pkgname-and-test-fails", "-run=^$", "-bench=.", "-benchmem")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt runs gofmt over the tree.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when gofmt would change a file.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("gofmt would change:\n%s\nrun 'stave lint:fmt'", out)
	}
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Gate runs every CI check in order.
func (CI) Gate() {
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("✓ CI gate passed")
}

// ModTidy fails when go mod tidy changes go.mod or go.sum.
func (CI) ModTidy() error {
	files := []string{"go.mod", "go.sum"}
	before, err := readAll(files)
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := readAll(files)
	if err != nil {
		return err
	}
	for i, name := range files {
		if !bytes.Equal(before[i], after[i]) {
			return fmt.Errorf("go mod tidy changed %s; commit the result", name)
		}
	}
	return nil
}

// Cross builds gmlfmt for every release platform.
func (CI) Cross() error {
	for _, platform := range releasePlatforms {
		goos, goarch, _ := strings.Cut(platform, "/")
		fmt.Println("  building", platform)
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, "./cmd/gmlfmt"); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	return nil
}

// Check runs "gmlfmt check" over the corpus and reports how long it took.
func (Corpus) Check() error {
	dir, err := corpusDir()
	if err != nil {
		return err
	}
	st.Deps(Build)

	start := time.Now()
	// Status 1 only means some files are not formatted.
	code, err := runGmlfmt("check", "-o", "summary", dir)
	if err != nil {
		return err
	}
	if code > 1 {
		return fmt.Errorf("gmlfmt check exited with status %d", code)
	}
	fmt.Printf("Checked %s in %s\n", dir, time.Since(start).Round(time.Millisecond))
	return nil
}

// Idempotence formats a copy of the corpus and fails when a check of the
// result still reports unformatted files.
func (Corpus) Idempotence() error {
	dir, err := corpusDir()
	if err != nil {
		return err
	}
	st.Deps(Build)

	work, err := os.MkdirTemp("", "gmlfmt-corpus-*")
	if err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(work)

	if err := sh.RunV("cp", "-R", dir+"/.", work); err != nil {
		return fmt.Errorf("copy corpus: %w", err)
	}
	// Files that do not parse are reported and left alone.
	if _, err := runGmlfmt("format", "--no-backups", "-o", "summary", work); err != nil {
		return err
	}
	code, err := runGmlfmt("check", "-o", "summary", work)
	if err != nil {
		return err
	}
	if code == 1 {
		return errors.New("a second formatting pass changed files")
	}
	fmt.Println("✓ formatting is idempotent on", dir)
	return nil
}

// gotestsum runs the whole suite through gotestsum with the given output
// format and extra go test flags.
func gotestsum(format string, flags ...string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	args := []string{"tool", "gotestsum", "-f", format, "--", "-p", procs, "-parallel", procs}
	args = append(args, flags...)
	args = append(args, "./...")
	return sh.RunV("go", args...)
}

func ldflags() string {
	version := cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(git("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}

// git returns the trimmed output of a git command, or "" when it fails.
func git(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// installDir is the directory go install writes binaries to.
func installDir() (string, error) {
	if dir, err := sh.Output("go", "env", "GOBIN"); err == nil && strings.TrimSpace(dir) != "" {
		return strings.TrimSpace(dir), nil
	}
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return "", fmt.Errorf("go env GOPATH: %w", err)
	}
	// GOPATH may list several directories; go install uses the first.
	first, _, _ := strings.Cut(strings.TrimSpace(gopath), string(os.PathListSeparator))
	return filepath.Join(first, "bin"), nil
}

func corpusDir() (string, error) {
	dir := os.Getenv("GMLFMT_CORPUS")
	if dir == "" {
		return "", errors.New("set GMLFMT_CORPUS to a directory of .gml files")
	}
	return dir, nil
}

func readAll(paths []string) ([][]byte, error) {
	contents := make([][]byte, len(paths))
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		contents[i] = data
	}
	return contents, nil
}

// runGmlfmt runs the built binary and returns its exit status. err is only
// set when the binary could not be started.
func runGmlfmt(args ...string) (int, error) {
	cmd := exec.Command(binary, args...) //nolint:gosec // fixed binary
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0, nil
	case errors.As(err, &exitErr):
		return exitErr.ExitCode(), nil
	default:
		return 0, fmt.Errorf("run gmlfmt: %w", err)
	}
}
