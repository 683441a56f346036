// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/devconsole/internal/console"
	"github.com/jeranaias/devconsole/internal/values"
)

// maxExecDepth bounds scripts that exec other scripts.
const maxExecDepth = 8

// builtins are visited ahead of everything else, so they shadow any
// application node with the same name.
func (s *Session) builtins() console.Nodes {
	return console.Nodes{
		console.NewAction("help", "[name]\nList all commands and properties, or describe one", s.cmdHelp),
		console.NewAction("clear", "Clear the screen", s.cmdClear),
		console.NewAction("find", "<text>\nSearch for matching commands", s.cmdFind),
		console.NewAction("reset", "[name]\nSet a property, or every property, to its default", s.cmdReset),
		console.NewAction("echo", "<text...>\nPrint the arguments", s.cmdEcho),
		console.NewAction("exec", "<file>\nRun each line of a file as a command", s.cmdExec),
		console.NewAction("save", "<file>\nWrite every property value to a TOML file", s.cmdSave),
		console.NewAction("load", "<file>\nSet properties from a TOML file", s.cmdLoad),
		console.NewAction("status", "Show session statistics", s.cmdStatus),
	}
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (s *Session) cmdHelp(args []string, out console.Sink) console.Result {
	if len(args) > 0 {
		return console.Help(s.root, args[0], out)
	}
	return console.Find(s.root, func(string) bool { return true }, out)
}

func (s *Session) cmdClear(_ []string, _ console.Sink) console.Result {
	s.scrollback.Clear()
	return console.Ok("")
}

func (s *Session) cmdFind(args []string, out console.Sink) console.Result {
	if len(args) == 0 {
		return console.Fail(console.Usage("find <name>"))
	}
	text := args[0]
	return console.Find(s.root, func(path string) bool {
		return strings.Contains(path, text) && path != "find"
	}, out)
}

func (s *Session) cmdReset(args []string, out console.Sink) console.Result {
	if len(args) > 0 {
		return console.Reset(s.root, args[0], out)
	}
	return console.ResetAll(s.root, out)
}

func (s *Session) cmdEcho(args []string, out console.Sink) console.Result {
	return console.Ok(strings.Join(args, " "))
}

func (s *Session) cmdExec(args []string, out console.Sink) console.Result {
	if len(args) == 0 || args[0] == "" {
		return console.Fail(console.Usage("exec <file>"))
	}
	if s.execDepth >= maxExecDepth {
		return console.Errorf("exec: nested more than %d deep", maxExecDepth)
	}
	s.execDepth++
	defer func() { s.execDepth-- }()

	ran, failed, err := s.execFile(args[0], out)
	if err != nil {
		return console.Fail(fmt.Errorf("exec: %w", err))
	}
	if failed > 0 {
		return console.Errorf("exec %s: %d of %d commands failed", args[0], failed, ran)
	}
	return console.Ok("")
}

// execFile runs a script, writing each command's output and result to out.
func (s *Session) execFile(path string, out console.Sink) (ran, failed int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if console.IsBlank(line) || console.IsComment(line) {
			continue
		}
		cmd := console.Parse(line)
		res := console.Exec(s.root, cmd.Name, cmd.Args, out)
		s.record(cmd, res)
		ran++
		if !res.IsOK() {
			failed++
		}
	}
	return ran, failed, scanner.Err()
}

func (s *Session) cmdSave(args []string, _ console.Sink) console.Result {
	if len(args) == 0 || args[0] == "" {
		return console.Fail(console.Usage("save <file>"))
	}
	n, err := values.WriteFile(args[0], s.app)
	if err != nil {
		return console.Fail(fmt.Errorf("save: %w", err))
	}
	s.log.Info("values saved", zap.String("file", args[0]), zap.Int("count", n))
	return console.Okf("Saved %d values to %s", n, args[0])
}

func (s *Session) cmdLoad(args []string, out console.Sink) console.Result {
	if len(args) == 0 || args[0] == "" {
		return console.Fail(console.Usage("load <file>"))
	}
	return s.load(args[0], out)
}

func (s *Session) cmdStatus(_ []string, _ console.Sink) console.Result {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Session:  %s\n", s.id)
	fmt.Fprintf(&sb, "Uptime:   %s\n", FormatDuration(time.Since(s.startTime)))
	fmt.Fprintf(&sb, "Commands: %d (%d failed)\n", s.commands, s.failures)
	fmt.Fprintf(&sb, "Paths:    %d\n", len(console.Paths(s.app)))
	return console.Ok(sb.String())
}

// =============================================================================
// VALUES FILES
// =============================================================================

// LoadFile applies a values file to the application tree and writes the
// outcome to the scrollback.
func (s *Session) LoadFile(path string) console.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := console.NewBuffer()
	res := s.load(path, out)
	out.WriteResult(res)
	s.scrollback.Append(out)
	s.scrollback.Truncate(s.maxSpans)
	return res
}

// load reports each property that failed to a red line on out and sums
// up in the result.
func (s *Session) load(path string, out console.Sink) console.Result {
	as, err := values.ReadFile(path)
	if err != nil {
		return console.Fail(fmt.Errorf("load: %w", err))
	}
	applied, errs := values.Apply(s.app, as, out)
	for _, err := range errs {
		out.WriteError(err)
	}
	s.log.Info("values loaded",
		zap.String("file", path),
		zap.Int("applied", applied),
		zap.Int("failed", len(errs)))
	if len(errs) > 0 {
		return console.Errorf("Loaded %d of %d values from %s", applied, len(as), path)
	}
	return console.Okf("Loaded %d values from %s", applied, path)
}
