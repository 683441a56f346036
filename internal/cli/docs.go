// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/jeranaias/devconsole/internal/console"
	"github.com/jeranaias/devconsole/internal/util"
)

func newDocsCmd(a *app) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Print a reference of every console command and property",
		Long: `Print a Markdown reference of every console command, property and
namespace. It is rendered for the terminal when stdout is one; use --raw
for the Markdown source.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _ := a.start(false)
			md := Reference(sess)
			out := cmd.OutOrStdout()
			if raw || !isTerminal(out) {
				_, err := io.WriteString(out, md)
				return err
			}
			_, err := io.WriteString(out, renderMarkdown(md, GetTerminalWidth()))
			return err
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print Markdown without rendering it")
	return cmd
}

// renderMarkdown renders md for the terminal, falling back to the source.
func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	rendered, err := r.Render(md)
	if err != nil {
		return md
	}
	return rendered
}

// =============================================================================
// REFERENCE
// =============================================================================

// Reference builds a Markdown reference of every node under root.
func Reference(root console.Visitor) string {
	var props, actions, lists [][]string
	console.Walk(root, console.Discard, func(path string, n console.Node) {
		switch n := n.(type) {
		case *console.Property:
			props = append(props, []string{code(path), code(n.Get()), code(n.Default()), cell(n.Description())})
		case *console.Action:
			args, text := n.Usage()
			actions = append(actions, []string{code(path), code(args), cell(text)})
		case *console.List:
			lists = append(lists, []string{code(path), cell(n.Description())})
		}
	})

	var sb strings.Builder
	sb.WriteString("# Console Reference\n")
	section(&sb, "Commands", []string{"Command", "Arguments", "Description"}, actions)
	section(&sb, "Properties", []string{"Property", "Value", "Default", "Description"}, props)
	section(&sb, "Namespaces", []string{"Namespace", "Description"}, lists)
	return sb.String()
}

func section(sb *strings.Builder, title string, header []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n## %s\n\n", title)
	writeTable(sb, header, rows)
}

// writeTable writes a Markdown table with columns padded to display width.
func writeTable(sb *strings.Builder, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = util.StringWidth(h)
	}
	for _, row := range rows {
		for i, c := range row {
			if w := util.StringWidth(c); w > widths[i] {
				widths[i] = w
			}
		}
	}

	writeRow := func(cells []string) {
		sb.WriteString("|")
		for i, c := range cells {
			sb.WriteString(" " + util.PadRight(c, widths[i]) + " |")
		}
		sb.WriteString("\n")
	}
	writeRow(header)
	rule := make([]string, len(header))
	for i := range rule {
		rule[i] = strings.Repeat("-", widths[i])
	}
	writeRow(rule)
	for _, row := range rows {
		writeRow(row)
	}
}

// cell escapes text for a table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

func code(s string) string {
	if s == "" {
		return ""
	}
	return "`" + cell(s) + "`"
}
