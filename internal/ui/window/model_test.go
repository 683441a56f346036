// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package window

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/devconsole/internal/config"
	"github.com/jeranaias/devconsole/internal/demo"
	"github.com/jeranaias/devconsole/internal/session"
	"github.com/jeranaias/devconsole/internal/ui/styles"
)

type fixture struct {
	game    *demo.Game
	sess    *session.Session
	cfg     *config.Config
	model   Model
	clipped string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{game: demo.New(), cfg: config.Default()}
	f.sess = session.New(f.game, session.DefaultConfig())
	f.sess.Extend(f.cfg)
	f.model = New(f.sess, Options{
		Config: f.cfg,
		Theme:  styles.NewThemeFor(&bytes.Buffer{}, "none"),
		Clipboard: func(text string) error {
			f.clipped = text
			return nil
		},
	})
	f.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	return f
}

func (f *fixture) send(msg tea.Msg) tea.Cmd {
	m, cmd := f.model.Update(msg)
	f.model = m.(Model)
	return cmd
}

func (f *fixture) typeText(s string) {
	f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (f *fixture) run(line string) tea.Cmd {
	f.typeText(line)
	return f.send(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestModel_SubmitSetsProperty(t *testing.T) {
	f := newFixture(t)

	cmd := f.run("arena.width 150")
	assert.Nil(t, cmd)
	assert.Equal(t, 150.0, f.game.Arena.Width)
	assert.Empty(t, f.model.input.Value(), "input is cleared after submit")
	assert.Contains(t, f.sess.Text(), " > arena.width 150\n")
}

func TestModel_FailureShownInStatus(t *testing.T) {
	f := newFixture(t)

	f.run("bogus_command")
	assert.Equal(t, "Unknown command", f.model.statusMsg)
	assert.Contains(t, f.model.View(), "Unknown command")
}

func TestModel_QuitCommand(t *testing.T) {
	f := newFixture(t)

	cmd := f.run("quit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_QuitKey(t *testing.T) {
	f := newFixture(t)

	cmd := f.send(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_CopyCommand(t *testing.T) {
	f := newFixture(t)

	f.run("arena.width")
	f.run("copy")
	assert.Contains(t, f.clipped, "arena.width\n100\n")
	assert.Equal(t, "Copied!", f.model.statusMsg)
	assert.Contains(t, f.sess.Text(), "Copied")
}

func TestModel_CopyFailure(t *testing.T) {
	f := newFixture(t)
	f.model.copyFn = func(string) error { return errors.New("no clipboard") }

	f.send(tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "Failed to copy", f.model.statusMsg)
	assert.Contains(t, f.sess.Text(), "no clipboard")
}

func TestModel_ClearKey(t *testing.T) {
	f := newFixture(t)

	f.run("greet")
	f.send(tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Empty(t, f.sess.Spans())
}

func TestModel_TabCompletion(t *testing.T) {
	f := newFixture(t)

	f.typeText("are")
	f.send(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "arena.", f.model.input.Value())

	f.send(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "arena.", f.model.input.Value(), "ambiguous completion stays put")
	assert.Len(t, f.model.completions, 3)

	f.typeText("w")
	f.send(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "arena.width ", f.model.input.Value())
}

func TestModel_History(t *testing.T) {
	f := newFixture(t)

	f.run("arena.width")
	f.run("paddle.color")
	f.typeText("dra")

	f.send(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "paddle.color", f.model.input.Value())
	f.send(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "arena.width", f.model.input.Value())
	f.send(tea.KeyMsg{Type: tea.KeyDown})
	f.send(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "dra", f.model.input.Value())
}

func TestModel_LiveSettings(t *testing.T) {
	f := newFixture(t)

	f.run("console.prompt $")
	assert.Equal(t, "$", f.cfg.Console.Prompt)
	assert.Equal(t, "$", f.model.input.Prompt)

	f.run("arena.height")
	assert.Contains(t, f.sess.Text(), "$arena.height\n")
}

func TestModel_ValuesChanged(t *testing.T) {
	f := newFixture(t)

	path := t.TempDir() + "/game.toml"
	require.NoError(t, writeFile(path, "[paddle]\nvelocity = 7\n"))

	f.send(ValuesChangedMsg{Path: path})
	assert.Equal(t, 7.0, f.game.Paddle.Velocity)
	assert.True(t, strings.HasPrefix(f.model.statusMsg, "Loaded 1 values"))
}

func TestModel_ViewBeforeResize(t *testing.T) {
	sess := session.New(demo.New(), session.DefaultConfig())
	m := New(sess, Options{Theme: styles.NewThemeFor(&bytes.Buffer{}, "none")})
	assert.Equal(t, "Starting console...", m.View())
}
