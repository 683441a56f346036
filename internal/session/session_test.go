// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jeranaias/devconsole/internal/console"
	"github.com/jeranaias/devconsole/internal/demo"
)

func newTestSession(t *testing.T) (*Session, *demo.Game) {
	t.Helper()
	game := demo.New()
	cfg := DefaultConfig()
	cfg.Banner = false
	return New(game, cfg), game
}

func TestNew_Banner(t *testing.T) {
	s := New(demo.New(), DefaultConfig())

	assert.Equal(t, "Type 'help' for help, 'find <text>' to search.\n", s.Text())
	spans := s.Spans()
	require.Len(t, spans, 5)
	assert.Equal(t, console.Red, spans[1].Color)
	assert.Equal(t, console.Yellow, spans[3].Color)
	assert.NotEmpty(t, s.ID())
	assert.False(t, s.StartTime().IsZero())
}

func TestNew_ResetsProperties(t *testing.T) {
	game := demo.New()
	game.Arena.Width = 640

	New(game, Config{})
	assert.Equal(t, 100.0, game.Arena.Width)
}

func TestNew_LogsDuplicates(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	app := console.Nodes{
		console.NewAction("greet", "first", nil),
		console.NewAction("greet", "second", nil),
	}

	New(app, Config{Logger: zap.New(core)})
	entries := logs.FilterMessage("duplicate console path, first one wins").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "greet", entries[0].ContextMap()["path"])
}

func TestSubmit(t *testing.T) {
	s, _ := newTestSession(t)

	res := s.Submit("arena.width")
	require.True(t, res.IsOK())

	spans := s.Spans()
	require.Len(t, spans, 3)
	assert.Equal(t, console.TextSpan{Color: console.Cyan, Text: " > "}, spans[0])
	assert.Equal(t, console.TextSpan{Color: console.White, Text: "arena.width\n"}, spans[1])
	assert.Equal(t, console.TextSpan{Color: console.White, Text: "100\n"}, spans[2])
}

func TestSubmit_Blank(t *testing.T) {
	s, _ := newTestSession(t)

	res := s.Submit("   ")
	assert.True(t, res.IsOK())
	assert.Equal(t, " >    \n", s.Text())
	assert.Equal(t, 0, s.GetStatus().Commands)
}

func TestSetPrompt(t *testing.T) {
	s, _ := newTestSession(t)

	s.SetPrompt("$ ")
	s.Submit("echo hi")
	assert.Equal(t, "$ echo hi\nhi\n", s.Text())
}

func TestRunCmd_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"get", []string{"arena.width"}, "100\n"},
		{"set then get", []string{"arena.width 150", "arena.width"}, "150\n"},
		{"set trailing space", []string{"arena.width 150 ", "arena.width"}, "150\n"},
		{"set extra arg", []string{"arena.width 150 extra", "arena.width"}, "150\n"},
		{"reset one", []string{"arena.width 150", "reset arena.width", "arena.width"}, "100\n"},
		{"reset all", []string{"paddle.velocity 9", "reset", "paddle.velocity"}, "OK\n3\n"},
		{"reset unknown", []string{"reset nope"}, "Unknown property\n"},
		{"greet", []string{"greet"}, "Hello, World!\n"},
		{"greet name", []string{"greet Ada"}, "Hello, Ada!\n"},
		{"unknown", []string{"bogus_command"}, "Unknown command\n"},
		{"find", []string{"find vel"}, "paddle.velocity: 3 (Default: 3)\n\tPaddle velocity\n"},
		{"find nothing", []string{"find zzz"}, "No results\n"},
		{"find usage", []string{"find"}, "Usage: find <name>\n"},
		{"help one", []string{"help arena.width"}, "arena.width: 100 (Default: 100)\n\tArena width\n"},
		{"help action", []string{"help greet"}, "greet [name]:\n\tSay hello\n"},
		{"help unknown", []string{"help nope"}, "Unknown property\n"},
		{"echo", []string{"echo a b"}, "a b\n"},
		{"invalid value", []string{"arena.width wide", "arena.width"}, "Invalid value: strconv.ParseFloat: parsing \"wide\": invalid syntax\n100\n"},
		{"clear", []string{"greet", "clear", "greet Bo"}, "Hello, Bo!\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t)
			for _, line := range tt.lines {
				s.RunCmd(line)
			}
			assert.Equal(t, tt.want, s.Text())
		})
	}
}

func TestRunCmd_GreetSpan(t *testing.T) {
	s, _ := newTestSession(t)

	s.RunCmd("greet")
	assert.Equal(t, []console.TextSpan{{Color: console.White, Text: "Hello, World!\n"}}, s.Spans())
}

func TestRunCmd_ErrorIsRed(t *testing.T) {
	s, _ := newTestSession(t)

	res := s.RunCmd("bogus_command")
	assert.False(t, res.IsOK())
	assert.Equal(t, []console.TextSpan{{Color: console.Red, Text: "Unknown command\n"}}, s.Spans())
}

func TestHelp_ListsEverything(t *testing.T) {
	s, _ := newTestSession(t)

	s.RunCmd("help")
	text := s.Text()
	for _, want := range []string{
		"help [name]:\n\tList all commands and properties, or describe one\n",
		"find <text>:\n\tSearch for matching commands\n",
		"color_test:\n\tTest console colors\n",
		"arena.width: 100 (Default: 100)\n\tArena width\n",
		"paddle.color: white (Default: white)\n\tPaddle color\n",
	} {
		assert.Contains(t, text, want)
	}
}

func TestFind_EmptyMatchesAll(t *testing.T) {
	s, _ := newTestSession(t)

	s.RunCmd("find ")
	text := s.Text()
	assert.Contains(t, text, "arena.height")
	assert.Contains(t, text, "greet")
	assert.NotContains(t, text, "find <text>:")
}

func TestExtend(t *testing.T) {
	s, _ := newTestSession(t)
	volume := 5
	s.Extend(console.Nodes{
		console.Prop("volume", "Volume", &volume, 5),
		console.NewAction("help", "Shadowed", nil),
	})

	s.RunCmd("volume 7")
	assert.Equal(t, 7, volume)

	s.Clear()
	s.RunCmd("help help")
	assert.Contains(t, s.Text(), "List all commands")
}

func TestMaxSpans(t *testing.T) {
	s := New(demo.New(), Config{MaxSpans: 2})

	for i := 0; i < 5; i++ {
		s.RunCmd(fmt.Sprintf("echo %d", i))
	}
	assert.Equal(t, "3\n4\n", s.Text())

	s.SetMaxSpans(1)
	assert.Equal(t, "4\n", s.Text())
}

func TestStatus(t *testing.T) {
	s, _ := newTestSession(t)

	s.RunCmd("arena.width")
	s.RunCmd("bogus_command")
	st := s.GetStatus()
	assert.Equal(t, 2, st.Commands)
	assert.Equal(t, 1, st.Failures)
	assert.Equal(t, s.ID(), st.SessionID)
	assert.Equal(t, 2, st.Spans)

	s.Clear()
	s.RunCmd("status")
	text := s.Text()
	assert.Contains(t, text, "Session:  "+s.ID())
	assert.Contains(t, text, "Commands: 2 (1 failed)")
	assert.Contains(t, text, "Paths:    8")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{42 * time.Second, "42s"},
		{2 * time.Minute, "2m"},
		{3*time.Minute + 5*time.Second, "3m 5s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestDo(t *testing.T) {
	s, game := newTestSession(t)

	s.Do(func(root console.Visitor, scrollback *console.Buffer) {
		console.Set(root, "paddle.color", "red", console.Discard)
		scrollback.Write("direct\n")
	})
	assert.Equal(t, "red", game.Paddle.Color)
	assert.Equal(t, "direct\n", s.Text())
}

func TestConcurrentSubmit(t *testing.T) {
	s, _ := newTestSession(t)
	s.SetMaxSpans(0)

	const workers, iterations = 10, 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				s.Submit(fmt.Sprintf("arena.width %d", i*iterations+j))
				_ = s.Spans()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, workers*iterations, s.GetStatus().Commands)
}

// =============================================================================
// FILE COMMANDS
// =============================================================================

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestExec(t *testing.T) {
	s, game := newTestSession(t)
	path := writeFile(t, "setup.con", "# tuning\narena.width 150\n\npaddle.velocity\n// later\nbogus\n")

	res := s.RunCmd("exec " + path)
	assert.False(t, res.IsOK())
	assert.Equal(t, 150.0, game.Arena.Width)
	assert.Equal(t,
		"3\nUnknown command\nexec "+path+": 1 of 3 commands failed\n",
		s.Text())

	st := s.GetStatus()
	assert.Equal(t, 4, st.Commands)
	assert.Equal(t, 2, st.Failures)
}

func TestExec_Errors(t *testing.T) {
	s, _ := newTestSession(t)

	s.RunCmd("exec")
	assert.Equal(t, "Usage: exec <file>\n", s.Text())

	s.Clear()
	res := s.RunCmd("exec " + filepath.Join(t.TempDir(), "missing.con"))
	assert.False(t, res.IsOK())
	assert.True(t, strings.HasPrefix(s.Text(), "exec: open "))
}

func TestExec_Nested(t *testing.T) {
	s, _ := newTestSession(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "loop.con")
	require.NoError(t, os.WriteFile(path, []byte("exec "+path+"\n"), 0644))

	res := s.RunCmd("exec " + path)
	assert.False(t, res.IsOK())
	assert.Contains(t, s.Text(), fmt.Sprintf("exec: nested more than %d deep", maxExecDepth))
}

func TestSaveLoad(t *testing.T) {
	s, game := newTestSession(t)
	path := filepath.Join(t.TempDir(), "values.toml")

	s.RunCmd("arena.width 150")
	s.RunCmd("paddle.color blue")
	s.RunCmd("save " + path)
	assert.Equal(t, "Saved 4 values to "+path+"\n", s.Text())

	s.RunCmd("reset")
	assert.Equal(t, 100.0, game.Arena.Width)

	s.Clear()
	res := s.RunCmd("load " + path)
	require.True(t, res.IsOK())
	assert.Equal(t, "Loaded 4 values from "+path+"\n", s.Text())
	assert.Equal(t, 150.0, game.Arena.Width)
	assert.Equal(t, "blue", game.Paddle.Color)
}

func TestLoad_PartialFailure(t *testing.T) {
	s, game := newTestSession(t)
	path := writeFile(t, "bad.toml", "[arena]\nwidth = \"wide\"\nheight = 50\n")

	res := s.LoadFile(path)
	assert.False(t, res.IsOK())
	assert.Equal(t, 50.0, game.Arena.Height)
	assert.Equal(t, 100.0, game.Arena.Width)
	assert.Equal(t,
		"arena.width: Invalid value: strconv.ParseFloat: parsing \"wide\": invalid syntax\n"+
			"Loaded 1 of 2 values from "+path+"\n",
		s.Text())
}

func TestSaveLoad_Usage(t *testing.T) {
	s, _ := newTestSession(t)

	s.RunCmd("save")
	s.RunCmd("load")
	assert.Equal(t, "Usage: save <file>\nUsage: load <file>\n", s.Text())
}
