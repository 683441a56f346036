// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the devconsole command line.
//
// Every command opens a console session over the demo game, with the
// console settings from the configuration file exposed under "console".
//
// # Commands
//
//   - (none): console window on a terminal, repl otherwise
//   - tui: full screen console window
//   - repl: line by line console with history and TAB completion
//   - run: execute command lines given as arguments
//   - docs: Markdown reference of every node
//   - config: show, get, set, path and keys
//   - version: build information
//
// # Usage
//
//	func main() {
//	    os.Exit(cli.Execute())
//	}
//
// Errors map to exit codes with GetExitCode: console failures exit with
// ExitCommandFailed, configuration problems with ExitConfigError.
package cli
