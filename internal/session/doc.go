// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session runs a console over an application tree.
//
// A Session is what a host (the TUI, the line REPL, a one-shot runner)
// talks to. It adds the built-in commands around the application's own
// visitor and owns the scrollback the host draws.
//
// # Built-in Commands
//
//   - help [name]: describe everything, or one node
//   - find <text>: list nodes whose path contains text
//   - reset [name]: restore one property, or all of them, to the default
//   - clear: empty the scrollback
//   - echo <text...>: print the arguments
//   - exec <file>: run a script of commands, one per line
//   - save <file>, load <file>: write or apply a TOML values file
//   - status: session statistics
//
// # Usage
//
//	s := session.New(game, session.DefaultConfig())
//	s.Submit("arena.width 150")
//	for _, span := range s.Spans() {
//	    draw(span.Color, span.Text)
//	}
package session
