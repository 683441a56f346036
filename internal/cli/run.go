// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/spf13/cobra"

	"github.com/jeranaias/devconsole/internal/console"
)

func newRunCmd(a *app) *cobra.Command {
	var echo bool

	cmd := &cobra.Command{
		Use:   "run <command>...",
		Short: "Run console commands and print their output",
		Long: `Run each argument as one console command line, in order, and print the
output. Every command runs even if an earlier one fails; the exit status is
non-zero if any failed.`,
		Example: `  devconsole run "arena.width 150" "find arena"
  devconsole run "exec setup.con" "save tuned.toml"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, loaded := a.start(false)
			pw := newSpanWriter(cmd.OutOrStdout())
			pw.Flush(sess)
			if !loaded.IsOK() {
				return &CommandError{Command: "run", Action: "load", Reason: a.cfg.Values.File, Err: loaded.Err()}
			}

			failed := 0
			for _, line := range args {
				var res console.Result
				if echo {
					res = sess.Submit(line)
				} else {
					res = sess.RunCmd(line)
				}
				if !res.IsOK() {
					failed++
				}
				pw.Flush(sess)
			}
			if failed > 0 {
				return &ConsoleError{Failed: failed, Total: len(args)}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&echo, "echo", false, "Print the prompt and each command before its output")
	return cmd
}
