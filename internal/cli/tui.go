// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/devconsole/internal/ui/window"
	"github.com/jeranaias/devconsole/internal/values"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the console window",
		Long: `Open the full screen console window.

Keys:
  Enter       Run the command line
  Tab         Complete a command or property name
  Up/Down     Browse history
  PgUp/PgDn   Scroll the output
  Ctrl+L      Clear the output
  Ctrl+Y      Copy the output to the clipboard
  Esc/Ctrl+C  Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(a)
		},
	}
}

func runTUI(a *app) error {
	sess, _ := a.start(true)

	var watcher *values.Watcher
	if a.cfg.Values.Watch && a.cfg.Values.File != "" {
		w, err := values.NewWatcher(a.cfg.Values.File, 0)
		if err != nil {
			return &CommandError{Command: "tui", Action: "watch", Reason: a.cfg.Values.File, Err: err}
		}
		defer w.Close()
		watcher = w
		a.log.Info("watching values file", zap.String("file", w.Path()))
	}

	model := window.New(sess, window.Options{
		Config:  a.cfg,
		Watcher: watcher,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("console window: %w", err)
	}
	return nil
}
