// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package internal provides integration tests for the complete console
// stack.
//
// These tests verify end-to-end functionality including:
// - Command dispatch through a session
// - Console settings exposed from the configuration
// - Values files saved, edited and reloaded
// - Scripts run with exec
package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jeranaias/devconsole/internal/config"
	"github.com/jeranaias/devconsole/internal/demo"
	"github.com/jeranaias/devconsole/internal/session"
	"github.com/jeranaias/devconsole/internal/values"
)

// =============================================================================
// TEST UTILITIES
// =============================================================================

// createTempFile creates a file with the given content in a temp directory.
func createTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	return path
}

// newConsole starts a session over the demo game with the console
// settings of cfg exposed.
func newConsole(t *testing.T, cfg *config.Config) (*session.Session, *demo.Game) {
	t.Helper()
	game := demo.New()
	sess := session.New(game, session.Config{
		Prompt:   cfg.Console.Prompt,
		MaxSpans: cfg.Console.MaxLines,
	})
	sess.Extend(cfg)
	return sess, game
}

// =============================================================================
// INTEGRATION TESTS
// =============================================================================

func TestIntegration_ConsoleSettings(t *testing.T) {
	cfg := config.Default()
	sess, _ := newConsole(t, cfg)

	steps := []struct {
		line string
		ok   bool
	}{
		{"console.theme LIGHT", true},
		{"console.max_lines 10", true},
		{"console.max_lines -1", false},
		{"console.theme neon", false},
		{"console.banner off", true},
	}
	for _, step := range steps {
		res := sess.RunCmd(step.line)
		assert.Equal(t, step.ok, res.IsOK(), step.line)
	}
	assert.Equal(t, "light", cfg.Console.Theme)
	assert.Equal(t, 10, cfg.Console.MaxLines)
	assert.False(t, cfg.Console.Banner)
	require.NoError(t, cfg.Validate())

	sess.RunCmd("reset console.theme")
	assert.Equal(t, "auto", cfg.Console.Theme)
}

func TestIntegration_SaveEditReload(t *testing.T) {
	sess, game := newConsole(t, config.Default())
	path := filepath.Join(t.TempDir(), "tuned.toml")

	sess.RunCmd("arena.width 320")
	require.True(t, sess.RunCmd("save "+path).IsOK())

	// Saved values cover the application only, not the console settings.
	as, err := values.ReadFile(path)
	require.NoError(t, err)
	for _, a := range as {
		assert.NotContains(t, a.Path, "console.")
	}

	require.NoError(t, os.WriteFile(path, []byte("[arena]\nwidth = 640\n[paddle]\nvelocity = 4.5\n"), 0644))
	res := sess.LoadFile(path)
	require.True(t, res.IsOK(), res.String())
	assert.Equal(t, 640.0, game.Arena.Width)
	assert.Equal(t, 4.5, game.Paddle.Velocity)
}

func TestIntegration_Script(t *testing.T) {
	sess, game := newConsole(t, config.Default())
	script := createTempFile(t, "setup.con", `# arena for the tournament
arena.width 200
arena.height 120
paddle.color green
greet Team
`)

	res := sess.RunCmd("exec " + script)
	require.True(t, res.IsOK(), res.String())
	assert.Equal(t, "200 x 120 arena, green paddle at 3", game.String())
	assert.Equal(t, "Hello, Team!\n", sess.Text())
}

func TestIntegration_WatchReload(t *testing.T) {
	defer goleak.VerifyNone(t)

	sess, game := newConsole(t, config.Default())
	path := createTempFile(t, "values.toml", "[arena]\nwidth = 100\n")

	w, err := values.NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("[arena]\nwidth = 512\n"), 0644))
	select {
	case changed := <-w.Changes():
		res := sess.LoadFile(changed)
		require.True(t, res.IsOK(), res.String())
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
	assert.Equal(t, 512.0, game.Arena.Width)
}
