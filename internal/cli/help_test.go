package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagTable(t *testing.T) {
	t.Parallel()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.IntP("print-width", "w", 80, "maximum line `width`")
	flags.Bool("check", false, "report unformatted files")
	flags.String("color", "auto", "colorize output")
	flags.String("hidden", "", "not shown")
	require.NoError(t, flags.MarkHidden("hidden"))

	got := newHelpTheme(false).flagTable(flags)

	assert.Equal(t, strings.Join([]string{
		"      --check               report unformatted files",
		`      --color string        colorize output (default "auto")`,
		"  -w, --print-width width   maximum line width (default 80)",
	}, "\n"), got)
}

func TestWriteHelp(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "gmlfmt", Short: "format GML", Version: "1.2.3"}
	check := &cobra.Command{
		Use:         "check [paths...]",
		Short:       "report unformatted files",
		Aliases:     []string{"c"},
		Annotations: exitCodeAnnotations,
		Run:         func(*cobra.Command, []string) {},
	}
	check.Flags().Int("print-width", 80, "maximum line width")
	root.PersistentFlags().String("config", "", "path to config file")
	root.AddCommand(check)

	tests := []struct {
		name string
		cmd  *cobra.Command
		full bool
		want []string
		not  []string
	}{
		{
			name: "root",
			cmd:  root,
			full: true,
			want: []string{"gmlfmt 1.2.3", "Available Commands:", "  check  report unformatted files", "--config string"},
			not:  []string{"Exit Codes:"},
		},
		{
			name: "subcommand",
			cmd:  check,
			full: true,
			want: []string{"Usage:\n  gmlfmt check [paths...] [flags]", "Aliases:\n  c", "Global Flags:", "Exit Codes:\n  0   all files formatted"},
			not:  []string{"Available Commands:"},
		},
		{
			name: "usage only",
			cmd:  check,
			want: []string{"Usage:", "--print-width int"},
			not:  []string{"report unformatted files\n\n"},
		},
	}

	for _, tt := range tests {
		// Rendering merges flag sets into the shared commands.
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeHelp(&buf, tt.cmd, newHelpTheme(false), tt.full))
			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.not {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}
