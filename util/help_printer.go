package util

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

const (
	helpIndent   = "   "
	flagIndent   = "  "
	flagGap      = 2
	maxHelpWidth = 120
)

func getTermWidth(defaultWidth int) int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if c, err := strconv.Atoi(cols); err == nil && c > 0 {
			return c
		}
	}
	return defaultWidth
}

// wrapText folds text at width, keeping blank lines between paragraphs.
func wrapText(text string, width int) []string {
	var out []string
	for _, para := range strings.Split(text, "\n\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len(line)+1+len(w) > width {
				out = append(out, line)
				line = w
			} else {
				line += " " + w
			}
		}
		out = append(out, line, "")
	}
	if len(out) > 0 {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		out = append(out, "")
	}
	return out
}

func flagField(f cli.Flag, name string) reflect.Value {
	v := reflect.ValueOf(f)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	return v.FieldByName(name)
}

func flagCategory(f cli.Flag) string {
	if fld := flagField(f, "Category"); fld.IsValid() && fld.Kind() == reflect.String {
		return fld.String()
	}
	return ""
}

func flagHidden(f cli.Flag) bool {
	if fld := flagField(f, "Hidden"); fld.IsValid() && fld.Kind() == reflect.Bool {
		return fld.Bool()
	}
	return false
}

func splitFlag(f cli.Flag) (label, usage string) {
	parts := strings.SplitN(strings.TrimRight(f.String(), "\n"), "\t", 2)
	label = parts[0]
	if len(parts) > 1 {
		usage = parts[1]
	}
	return
}

// PrettierHelpPrinter replaces the help output of urfave/cli with one that
// colors section headers and groups flags by their Category.
func PrettierHelpPrinter() {
	sectionColor := color.New(color.FgGreen, color.Bold).SprintFunc()
	categoryColor := color.New(color.FgCyan, color.Bold).SprintFunc()

	fallback := cli.HelpPrinter
	width := min(maxHelpWidth, getTermWidth(maxHelpWidth)) - 4

	cli.HelpPrinter = func(w io.Writer, templ string, data interface{}) {
		var (
			flags    []cli.Flag
			cmds     []*cli.Command
			helpName string
			usage    string
			desc     string
		)
		switch v := data.(type) {
		case *cli.App:
			flags, cmds, helpName, usage, desc = v.Flags, v.Commands, v.HelpName, v.Usage, v.Description
		case *cli.Command:
			flags, cmds, helpName, usage, desc = v.Flags, v.Subcommands, v.HelpName, v.Usage, v.Description
		default:
			fallback(w, templ, data)
			return
		}

		fmt.Fprintf(w, "%s\n%s%s - %s\n\n", sectionColor("NAME:"), helpIndent, helpName, usage)

		fmt.Fprintf(w, "%s\n%s%s", sectionColor("USAGE:"), helpIndent, helpName)
		if len(cmds) > 0 {
			fmt.Fprint(w, " command")
		}
		if len(flags) > 0 {
			fmt.Fprint(w, " [options]")
		}
		fmt.Fprint(w, "\n\n")

		if desc != "" {
			fmt.Fprintln(w, sectionColor("DESCRIPTION:"))
			for _, line := range wrapText(desc, width-len(helpIndent)) {
				fmt.Fprintf(w, "%s%s\n", helpIndent, line)
			}
			fmt.Fprintln(w)
		}

		visible := make([]*cli.Command, 0, len(cmds))
		for _, c := range cmds {
			if c.Hidden || c.Name == "help" {
				continue
			}
			visible = append(visible, c)
		}
		if len(visible) > 0 {
			fmt.Fprintln(w, sectionColor("COMMANDS:"))
			for _, c := range visible {
				fmt.Fprintf(w, "%s%-20s  %s\n", helpIndent, c.Name, c.Usage)
			}
			fmt.Fprintln(w)
		}

		byCategory := map[string][]cli.Flag{}
		categories := []string{}
		labelWidth := 0
		for _, f := range flags {
			if flagHidden(f) {
				continue
			}
			label, _ := splitFlag(f)
			if strings.HasPrefix(label, "--help") {
				continue
			}
			cat := flagCategory(f)
			if _, ok := byCategory[cat]; !ok {
				categories = append(categories, cat)
			}
			byCategory[cat] = append(byCategory[cat], f)
			labelWidth = max(labelWidth, len(label))
		}
		if len(categories) == 0 {
			return
		}
		sort.Strings(categories)

		fmt.Fprintf(w, "%s\n\n", sectionColor("OPTIONS:"))
		for _, cat := range categories {
			header := cat
			if header == "" {
				header = "Global Options"
			}
			fmt.Fprintf(w, "%s%s\n", flagIndent, categoryColor(header))

			for _, f := range byCategory[cat] {
				label, usage := splitFlag(f)
				lines := wrapText(usage, max(20, width-len(flagIndent)-labelWidth-flagGap))
				fmt.Fprintf(w, "%s%-*s%s%s\n", flagIndent, labelWidth, label, strings.Repeat(" ", flagGap), lines[0])
				cont := flagIndent + strings.Repeat(" ", labelWidth+flagGap+2)
				for _, line := range lines[1:] {
					fmt.Fprintf(w, "%s%s\n", cont, line)
				}
			}
			fmt.Fprintln(w)
		}
	}
}
