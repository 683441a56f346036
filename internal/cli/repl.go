// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/devconsole/internal/config"
	"github.com/jeranaias/devconsole/internal/console"
	"github.com/jeranaias/devconsole/internal/session"
)

func newREPLCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read console commands line by line",
		Long: `Read console commands line by line and print their output.

On a terminal the prompt supports history and TAB completion. Piped input
is echoed after the prompt, giving a transcript. Type "quit" or press
Ctrl+D to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(a, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// quitCommand adds "quit" to a line host.
type quitCommand struct {
	requested bool
}

func (q *quitCommand) Visit(f func(console.Node), _ console.Sink) {
	f(console.NewAction("quit", "Leave the console", func([]string, console.Sink) console.Result {
		q.requested = true
		return console.Ok("")
	}))
}

func runREPL(a *app, in io.Reader, out io.Writer) error {
	sess, _ := a.start(true)
	quit := &quitCommand{}
	sess.Extend(quit)

	pw := newSpanWriter(out)
	pw.Flush(sess)

	var reader lineReader
	if isTerminal(in) && isTerminal(out) {
		reader = newLinerReader(sess)
	} else {
		reader = newScanReader(in)
	}
	defer reader.Close()

	for !quit.requested {
		line, err := reader.ReadLine(a.cfg.Console.Prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return err
		}

		if reader.Echo() {
			sess.Submit(line)
		} else if !console.IsBlank(line) {
			sess.RunCmd(line)
		}
		sess.SetPrompt(a.cfg.Console.Prompt)
		sess.SetMaxSpans(a.cfg.Console.MaxLines)
		pw.Flush(sess)
	}
	return nil
}

// =============================================================================
// LINE READERS
// =============================================================================

// lineReader reads one command line at a time.
type lineReader interface {
	ReadLine(prompt string) (string, error)
	// Echo reports whether the prompt and line should be written to the
	// output, as the reader does not show them itself.
	Echo() bool
	Close()
}

// scanReader reads piped input.
type scanReader struct {
	scanner *bufio.Scanner
}

func newScanReader(r io.Reader) *scanReader {
	return &scanReader{scanner: bufio.NewScanner(r)}
}

func (r *scanReader) ReadLine(string) (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func (r *scanReader) Echo() bool { return true }
func (r *scanReader) Close()     {}

// linerReader provides line editing, history and completion on a terminal.
type linerReader struct {
	line        *liner.State
	historyFile string
}

func newLinerReader(sess *session.Session) *linerReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetTabCompletionStyle(liner.TabPrints)
	line.SetCompleter(func(input string) []string {
		return completeLine(sess, input)
	})

	r := &linerReader{line: line}
	if dir, err := config.ConfigDir(); err == nil {
		r.historyFile = filepath.Join(dir, "history")
		if f, err := os.Open(r.historyFile); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}
	return r
}

func (r *linerReader) ReadLine(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

func (r *linerReader) Echo() bool { return false }

// Close saves history with owner-only permissions and restores the terminal.
func (r *linerReader) Close() {
	if r.historyFile != "" {
		if err := os.MkdirAll(filepath.Dir(r.historyFile), 0700); err == nil {
			if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
				r.line.WriteHistory(f)
				f.Close()
			}
		}
	}
	r.line.Close()
}

// completeLine lists candidate lines for input.
func completeLine(sess *session.Session, input string) []string {
	var lines []string
	sess.Do(func(root console.Visitor, _ *console.Buffer) {
		for _, c := range console.Complete(root, input, console.Discard) {
			lines = append(lines, c.Value)
		}
	})
	return lines
}
