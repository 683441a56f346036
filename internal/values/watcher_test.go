// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package values

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const waitTimeout = 2 * time.Second

func newTestWatcher(t *testing.T) (*Watcher, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "values.toml")
	require.NoError(t, os.WriteFile(path, []byte("[arena]\nwidth = 100\n"), 0644))

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	return w, path
}

func TestWatcher_ReportsChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, path := newTestWatcher(t)
	defer w.Close()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("[arena]\nwidth = 150\n"), 0644))
	}

	select {
	case got := <-w.Changes():
		assert.Equal(t, w.Path(), got)
	case err := <-w.Errors():
		t.Fatalf("watch error: %v", err)
	case <-time.After(waitTimeout):
		t.Fatal("no change reported")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, path := newTestWatcher(t)
	defer w.Close()

	sibling := filepath.Join(filepath.Dir(path), "other.toml")
	require.NoError(t, os.WriteFile(sibling, []byte("x = 1\n"), 0644))

	select {
	case got := <-w.Changes():
		t.Fatalf("unexpected change: %s", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_SeesReplacement(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, path := newTestWatcher(t)
	defer w.Close()

	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte("[arena]\nwidth = 7\n"), 0644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case <-w.Changes():
	case <-time.After(waitTimeout):
		t.Fatal("no change reported after rename")
	}
}

func TestWatcher_CloseStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, _ := newTestWatcher(t)
	assert.NoError(t, w.Close())
}

func TestNewWatcher_MissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "values.toml"), 0)
	assert.Error(t, err)
}
