// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session runs a console over an application tree.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeranaias/devconsole/internal/console"
	"github.com/jeranaias/devconsole/internal/util"
)

// =============================================================================
// SESSION
// =============================================================================

// Session wraps an application tree with the built-in commands and keeps
// the scrollback. It is safe for concurrent use; hosts that feed it from
// several goroutines (a prompt and a file watcher, say) need no extra
// locking. The console package itself does none.
type Session struct {
	mu sync.Mutex

	id        string
	startTime time.Time
	prompt    string
	maxSpans  int

	app    console.Visitor
	extras []console.Visitor
	root   console.Visitor

	scrollback *console.Buffer
	commands   int
	failures   int
	execDepth  int

	log *zap.Logger
}

// Config holds configuration for a session.
type Config struct {
	// Prompt is echoed before each command line (default: " > ")
	Prompt string

	// MaxSpans caps the scrollback, oldest first (0 = unlimited)
	MaxSpans int

	// Banner writes the welcome line on start
	Banner bool

	// Logger receives command and error logs (default: no-op)
	Logger *zap.Logger
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		Prompt:   " > ",
		MaxSpans: 5000,
		Banner:   true,
	}
}

// New starts a session over app. Every property is reset to its default
// first, as the session start is the point defaults refer to.
func New(app console.Visitor, cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		id:         uuid.NewString(),
		startTime:  time.Now(),
		prompt:     cfg.Prompt,
		maxSpans:   cfg.MaxSpans,
		app:        app,
		scrollback: console.NewBuffer(),
	}
	s.log = logger.With(zap.String("session", s.id))
	s.root = console.VisitFunc(s.visit)

	console.ResetAll(app, console.Discard)
	for _, path := range console.Duplicates(s.root) {
		s.log.Warn("duplicate console path, first one wins", zap.String("path", path))
	}
	if cfg.Banner {
		s.writeBanner()
	}
	s.log.Info("console session started")
	return s
}

// visit emits the built-ins, then host extensions, then the application.
func (s *Session) visit(f func(console.Node), out console.Sink) {
	for _, n := range s.builtins() {
		f(n)
	}
	for _, v := range s.extras {
		v.Visit(f, out)
	}
	s.app.Visit(f, out)
}

// Visit makes the session usable as a console root.
func (s *Session) Visit(f func(console.Node), out console.Sink) { s.root.Visit(f, out) }

// Extend adds host commands, visited after the built-ins and before the
// application, such as "quit" for an interactive host.
func (s *Session) Extend(v console.Visitor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extras = append(s.extras, v)
}

// SetPrompt changes the text echoed before submitted lines.
func (s *Session) SetPrompt(prompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompt = prompt
}

// SetMaxSpans changes the scrollback limit, trimming it if needed.
func (s *Session) SetMaxSpans(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxSpans = n
	s.scrollback.Truncate(n)
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// StartTime returns when the session started.
func (s *Session) StartTime() time.Time { return s.startTime }

// App returns the application tree without the built-ins.
func (s *Session) App() console.Visitor { return s.app }

// =============================================================================
// COMMAND EXECUTION
// =============================================================================

// RunCmd parses and executes one command line. Output written while the
// command runs is collected privately and moved to the scrollback once the
// command returns, followed by the rendered result.
func (s *Session) RunCmd(line string) console.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run(line)
}

// Submit echoes the prompt and line to the scrollback, then runs it. Blank
// lines are echoed but not dispatched.
func (s *Session) Submit(line string) console.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scrollback.WriteColored(console.Cyan, s.prompt)
	s.scrollback.Write(line + "\n")
	if console.IsBlank(line) {
		return console.Ok("")
	}
	return s.run(line)
}

func (s *Session) run(line string) console.Result {
	cmd := console.Parse(line)
	out := console.NewBuffer()
	res := console.Exec(s.root, cmd.Name, cmd.Args, out)

	s.scrollback.Append(out)
	s.scrollback.Truncate(s.maxSpans)
	s.record(cmd, res)
	return res
}

func (s *Session) record(cmd console.ParseResult, res console.Result) {
	s.commands++
	if res.IsOK() {
		s.log.Debug("command", zap.String("name", cmd.Name), zap.Strings("args", cmd.Args))
		return
	}
	s.failures++
	s.log.Warn("command failed",
		zap.String("name", cmd.Name),
		zap.Strings("args", cmd.Args),
		zap.Error(res.Err()))
}

// Do runs fn with exclusive access to the tree and the scrollback, for
// hosts that need to touch either outside a command.
func (s *Session) Do(fn func(root console.Visitor, scrollback *console.Buffer)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.root, s.scrollback)
	s.scrollback.Truncate(s.maxSpans)
}

// =============================================================================
// SCROLLBACK
// =============================================================================

// Spans returns a copy of the scrollback.
func (s *Session) Spans() []console.TextSpan {
	s.mu.Lock()
	defer s.mu.Unlock()
	spans := s.scrollback.Spans()
	out := make([]console.TextSpan, len(spans))
	copy(out, spans)
	return out
}

// Text returns the scrollback without colors.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scrollback.String()
}

// Write appends white text to the scrollback.
func (s *Session) Write(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollback.Write(text)
}

// WriteColored appends colored text to the scrollback.
func (s *Session) WriteColored(c console.Color, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollback.WriteColored(c, text)
}

// Clear empties the scrollback.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollback.Clear()
}

func (s *Session) writeBanner() {
	s.scrollback.Write("Type '")
	s.scrollback.WriteColored(console.Red, "help")
	s.scrollback.Write("' for help, '")
	s.scrollback.WriteColored(console.Yellow, "find <text>")
	s.scrollback.Write("' to search.\n")
}

// =============================================================================
// STATUS
// =============================================================================

// Status summarizes a session.
type Status struct {
	SessionID string
	StartTime time.Time
	Duration  time.Duration
	Commands  int
	Failures  int
	Spans     int
}

// GetStatus returns the current session status.
func (s *Session) GetStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		SessionID: s.id,
		StartTime: s.startTime,
		Duration:  time.Since(s.startTime),
		Commands:  s.commands,
		Failures:  s.failures,
		Spans:     s.scrollback.Len(),
	}
}

// FormatDuration returns a human-readable duration string.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		secs := int(d.Seconds())
		return util.IntToString(secs) + "s"
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	if secs == 0 {
		return util.IntToString(mins) + "m"
	}
	return util.IntToString(mins) + "m " + util.IntToString(secs) + "s"
}
