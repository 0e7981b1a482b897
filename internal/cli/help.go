package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gmlfmt/internal/ui/pretty"
)

// annotationExitCodes is the command annotation holding the exit code
// table printed at the end of the help.
const annotationExitCodes = "gmlfmt_exit_codes"

// helpTheme styles command help.
type helpTheme struct {
	heading lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpTheme(colorEnabled bool) helpTheme {
	plain := lipgloss.NewStyle()
	if !colorEnabled {
		return helpTheme{heading: plain, name: plain, flag: plain, dim: plain}
	}
	return helpTheme{
		heading: plain.Foreground(lipgloss.Color("11")).Bold(true),
		name:    plain.Foreground(lipgloss.Color("14")).Bold(true),
		flag:    plain.Foreground(lipgloss.Color("12")),
		dim:     plain.Foreground(lipgloss.Color("8")),
	}
}

// installHelp makes root and every subcommand print help through
// writeHelp. colorMode is read when help is printed, so a --color flag on
// the same command line applies to it.
func installHelp(root *cobra.Command, colorMode *string) {
	theme := func(w io.Writer) helpTheme {
		return newHelpTheme(pretty.IsColorEnabled(*colorMode, w))
	}

	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		if err := writeHelp(out, cmd, theme(out), true); err != nil {
			cmd.PrintErrln(err)
		}
	})
	root.SetUsageFunc(func(cmd *cobra.Command) error {
		out := cmd.OutOrStderr()
		return writeHelp(out, cmd, theme(out), false)
	})
}

// writeHelp renders the help of cmd. The description header is written
// only for full help, not for the usage shown after a usage error.
func writeHelp(w io.Writer, cmd *cobra.Command, t helpTheme, full bool) error {
	var b strings.Builder

	if full {
		if cmd.Runnable() || cmd.HasSubCommands() {
			b.WriteString(t.name.Render(cmd.CommandPath()))
			if cmd.Version != "" {
				b.WriteString(" " + t.dim.Render(cmd.Version))
			}
			b.WriteString("\n\n")
		}
		if text := strings.TrimSpace(cmd.Long); text != "" {
			b.WriteString(text + "\n\n")
		} else if cmd.Short != "" {
			b.WriteString(cmd.Short + "\n\n")
		}
	}

	section := func(title, body string) {
		if body == "" {
			return
		}
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n\n") {
			b.WriteString("\n")
		}
		b.WriteString(t.heading.Render(title+":") + "\n" + body + "\n")
	}

	var usage []string
	if cmd.Runnable() {
		usage = append(usage, "  "+t.name.Render(cmd.UseLine()))
	}
	if cmd.HasAvailableSubCommands() {
		usage = append(usage, "  "+t.name.Render(cmd.CommandPath()+" [command]"))
	}
	section("Usage", strings.Join(usage, "\n"))

	if len(cmd.Aliases) > 0 {
		section("Aliases", "  "+t.dim.Render(strings.Join(cmd.Aliases, ", ")))
	}
	if cmd.HasExample() {
		section("Examples", t.dim.Render(cmd.Example))
	}
	section("Available Commands", t.commandList(cmd))
	section("Flags", t.flagTable(cmd.LocalFlags()))
	section("Global Flags", t.flagTable(cmd.InheritedFlags()))
	section("Exit Codes", t.exitCodes(cmd))

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(&b, "\nUse %q for more information about a command.\n",
			cmd.CommandPath()+" [command] --help")
	}

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("write help: %w", err)
	}
	return nil
}

// commandList lists the subcommands of cmd with their short descriptions.
func (t helpTheme) commandList(cmd *cobra.Command) string {
	var subs []*cobra.Command
	width := 0
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() || sub.Name() == "help" {
			subs = append(subs, sub)
			width = max(width, len(sub.Name()))
		}
	}

	lines := make([]string, 0, len(subs))
	for _, sub := range subs {
		lines = append(lines, "  "+t.name.Render(padRight(sub.Name(), width))+"  "+sub.Short)
	}
	return strings.Join(lines, "\n")
}

type flagRow struct {
	spec    string
	styled  string
	summary string
}

// flagTable renders the visible flags of flags as aligned rows of the form
// "-c, --config string   description (default ...)".
func (t helpTheme) flagTable(flags *pflag.FlagSet) string {
	var rows []flagRow
	width := 0

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		typeName, usage := pflag.UnquoteUsage(f)

		spec, styled := "    ", "    "
		if f.Shorthand != "" {
			spec = "-" + f.Shorthand + ", "
			styled = t.flag.Render("-"+f.Shorthand) + ", "
		}
		spec += "--" + f.Name
		styled += t.flag.Render("--" + f.Name)
		if typeName != "" {
			spec += " " + typeName
			styled += " " + t.dim.Render(typeName)
		}

		if def := flagDefault(f); def != "" {
			usage += " " + t.dim.Render("(default "+def+")")
		}

		rows = append(rows, flagRow{spec: spec, styled: styled, summary: usage})
		width = max(width, len(spec))
	})

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		pad := strings.Repeat(" ", width-len(row.spec))
		lines = append(lines, "  "+row.styled+pad+"   "+row.summary)
	}
	return strings.Join(lines, "\n")
}

// flagDefault formats the default of f for help, or "" when the default is
// the zero value of its type.
func flagDefault(f *pflag.Flag) string {
	switch f.DefValue {
	case "", "false", "0", "[]", "<nil>":
		return ""
	}
	if f.Value.Type() == "string" {
		return fmt.Sprintf("%q", f.DefValue)
	}
	return f.DefValue
}

// exitCodes renders the exit code annotation of cmd, or "" when it has
// none.
func (t helpTheme) exitCodes(cmd *cobra.Command) string {
	table := cmd.Annotations[annotationExitCodes]
	if table == "" {
		return ""
	}

	lines := strings.Split(table, "\n")
	for i, line := range lines {
		code, meaning, ok := strings.Cut(strings.TrimSpace(line), " ")
		if !ok {
			continue
		}
		lines[i] = "  " + t.flag.Render(padRight(code, 4)) + strings.TrimSpace(meaning)
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
