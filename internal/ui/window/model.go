// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package window provides the Bubble Tea console window.
package window

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/devconsole/internal/config"
	"github.com/jeranaias/devconsole/internal/console"
	"github.com/jeranaias/devconsole/internal/session"
	"github.com/jeranaias/devconsole/internal/ui/styles"
	"github.com/jeranaias/devconsole/internal/util"
	"github.com/jeranaias/devconsole/internal/values"
)

// historySize bounds the in-memory command history.
const historySize = 500

// =============================================================================
// MESSAGES
// =============================================================================

// ValuesChangedMsg reports that the watched values file was written.
type ValuesChangedMsg struct{ Path string }

// WatchErrorMsg reports a file watcher failure.
type WatchErrorMsg struct{ Err error }

// =============================================================================
// HOST COMMANDS
// =============================================================================

// hostState carries requests from host commands back to the model. Commands
// run while the session lock is held, so they only record what to do.
type hostState struct {
	quit bool
	copy bool
}

func (h *hostState) Visit(f func(console.Node), _ console.Sink) {
	f(console.NewAction("copy", "Copy the scrollback to the clipboard", func([]string, console.Sink) console.Result {
		h.copy = true
		return console.Ok("")
	}))
	f(console.NewAction("quit", "Close the console", func([]string, console.Sink) console.Result {
		h.quit = true
		return console.Ok("")
	}))
}

// =============================================================================
// MODEL
// =============================================================================

// Options configure a console window.
type Options struct {
	// Title is shown in the header (default: "devconsole")
	Title string

	// Config supplies live console settings; it may be nil.
	Config *config.Config

	// Watcher delivers values file changes; it may be nil.
	Watcher *values.Watcher

	// Theme overrides the theme named by Config.
	Theme *styles.Theme

	// Clipboard replaces the system clipboard, mainly for tests.
	Clipboard func(text string) error
}

// Model is the Bubble Tea model for the console window.
type Model struct {
	sess    *session.Session
	cfg     *config.Config
	watcher *values.Watcher
	host    *hostState
	copyFn  func(string) error

	// Styling
	theme *styles.Theme
	title string

	// Dimensions
	width  int
	height int
	ready  bool

	// Components
	viewport viewport.Model
	input    textinput.Model
	help     help.Model
	keys     KeyMap

	history     *History
	completions []console.Completion
	statusMsg   string
}

// New creates a console window over sess and adds the "copy" and "quit"
// commands to it.
func New(sess *session.Session, opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme(cfg.Console.Theme)
	}
	title := opts.Title
	if title == "" {
		title = "devconsole"
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	ti := textinput.New()
	ti.Prompt = cfg.Console.Prompt
	ti.PromptStyle = theme.Prompt
	ti.TextStyle = theme.Input
	ti.Placeholder = "help"
	ti.CharLimit = 1024
	ti.Focus()

	host := &hostState{}
	sess.Extend(host)

	return Model{
		sess:     sess,
		cfg:      cfg,
		watcher:  opts.Watcher,
		host:     host,
		copyFn:   copyFn,
		theme:    theme,
		title:    title,
		viewport: viewport.New(80, 20),
		input:    ti,
		help:     help.New(),
		keys:     DefaultKeyMap(),
		history:  NewHistory(historySize),
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForChange())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ValuesChangedMsg:
		res := m.sess.LoadFile(msg.Path)
		m.statusMsg = res.String()
		m.refresh()
		return m, m.waitForChange()

	case WatchErrorMsg:
		m.statusMsg = "watch: " + msg.Err.Error()
		return m, m.waitForChange()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the window.
func (m Model) View() string {
	if !m.ready {
		return "Starting console..."
	}
	parts := []string{
		m.theme.Title.Render(m.title),
		m.theme.Scrollback.Render(m.viewport.View()),
		m.input.View(),
	}
	if len(m.completions) > 1 {
		parts = append(parts, m.renderCompletions())
	}
	parts = append(parts, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	const (
		titleHeight     = 1
		borderHeight    = 2 // top and bottom of the scrollback frame
		inputHeight     = 1
		completeHeight  = 1
		statusBarHeight = 1
	)
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	vpHeight := m.height - titleHeight - borderHeight - inputHeight - completeHeight - statusBarHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	vpWidth := m.width - 4 // border and padding
	if vpWidth < 1 {
		vpWidth = 1
	}
	m.viewport.Width = vpWidth
	m.viewport.Height = vpHeight
	m.input.Width = m.width - lipgloss.Width(m.input.Prompt) - 1
	m.help.Width = m.width
	m.ready = true

	m.refresh()
	m.viewport.GotoBottom()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Complete):
		m.complete()
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		if line, ok := m.history.Prev(m.input.Value()); ok {
			m.input.SetValue(line)
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Next):
		if line, ok := m.history.Next(); ok {
			m.input.SetValue(line)
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.sess.Clear()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		m.copyScrollback()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	m.completions = nil
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the input line. Host commands are acted on once the session
// has finished with the line.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	m.completions = nil
	m.history.Add(line)

	res := m.sess.Submit(line)
	m.statusMsg = ""
	if !res.IsOK() {
		m.statusMsg = res.String()
	}

	if m.host.copy {
		m.host.copy = false
		m.copyScrollback()
	}
	m.applySettings()
	m.refresh()
	m.viewport.GotoBottom()

	if m.host.quit {
		return m, tea.Quit
	}
	return m, nil
}

// complete fills in the longest unambiguous completion of the input.
func (m *Model) complete() {
	m.completions = console.Complete(m.sess, m.input.Value(), console.Discard)
	if len(m.completions) == 0 {
		return
	}
	prefix := console.CommonPrefix(m.completions)
	if len(m.completions) == 1 && m.completions[0].Kind != console.KindList {
		prefix += " "
	}
	if len(prefix) > len(m.input.Value()) {
		m.input.SetValue(prefix)
		m.input.CursorEnd()
	}
}

func (m *Model) copyScrollback() {
	text := m.sess.Text()
	if err := m.copyFn(text); err != nil {
		m.sess.WriteColored(console.Red, "Failed to copy to clipboard: "+err.Error()+"\n")
		m.statusMsg = "Failed to copy"
		return
	}
	m.sess.WriteColored(console.Gray, fmt.Sprintf("Copied %d lines to clipboard\n", strings.Count(text, "\n")))
	m.statusMsg = "Copied!"
}

// applySettings picks up console.* properties changed from the console.
func (m *Model) applySettings() {
	c := m.cfg.Console
	m.sess.SetPrompt(c.Prompt)
	m.sess.SetMaxSpans(c.MaxLines)
	if m.input.Prompt != c.Prompt {
		m.input.Prompt = c.Prompt
		m.input.Width = m.width - lipgloss.Width(c.Prompt) - 1
	}
	if c.Theme != m.theme.Name {
		m.theme = styles.NewTheme(c.Theme)
		m.theme.SetSize(m.width, m.height)
		m.input.PromptStyle = m.theme.Prompt
		m.input.TextStyle = m.theme.Input
	}
}

// refresh re-renders the scrollback, staying pinned to the bottom when
// the view was already there.
func (m *Model) refresh() {
	atBottom := m.viewport.AtBottom()
	content := m.theme.RenderSpans(m.sess.Spans())
	if m.viewport.Width > 0 {
		content = lipgloss.NewStyle().MaxWidth(m.viewport.Width).Render(content)
	}
	m.viewport.SetContent(content)
	if atBottom {
		m.viewport.GotoBottom()
	}
}

func (m Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	w := m.watcher
	return func() tea.Msg {
		select {
		case path := <-w.Changes():
			return ValuesChangedMsg{Path: path}
		case err := <-w.Errors():
			return WatchErrorMsg{Err: err}
		}
	}
}

// =============================================================================
// RENDERING
// =============================================================================

func (m Model) renderCompletions() string {
	names := make([]string, 0, len(m.completions))
	for _, c := range m.completions {
		names = append(names, c.Value)
	}
	line := strings.Join(names, "  ")
	if m.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return m.theme.Hint.Render(line)
}

func (m Model) renderStatusBar() string {
	st := m.sess.GetStatus()
	left := m.theme.StatusKey.Render(util.IntToString(st.Commands)) +
		m.theme.StatusBar.Render("commands") +
		m.theme.StatusKey.Render(util.IntToString(st.Failures)) +
		m.theme.StatusBar.Render("failed")
	if m.statusMsg != "" {
		msg := m.statusMsg
		if m.width > 0 {
			msg = util.TruncateWidth(msg, m.width/2)
		}
		left += m.theme.StatusBar.Render(msg)
	}
	right := m.help.ShortHelpView(m.keys.ShortHelp())

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}
