// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"strings"
)

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult is one command line split into a name and its arguments.
type ParseResult struct {
	// Name is the first token, the path being addressed (e.g. "arena.width")
	Name string

	// Args are the remaining tokens
	Args []string

	// RawInput is the line as given, minus any line terminator
	RawInput string
}

// =============================================================================
// PARSER
// =============================================================================

// Parse splits a line on ASCII spaces. There is no quoting or escaping, so
// an argument can never contain a space, and consecutive spaces produce
// empty arguments: "find " is find with one empty argument, which matches
// everything.
func Parse(line string) ParseResult {
	line = strings.TrimRight(line, "\r\n")
	parts := strings.Split(line, " ")
	return ParseResult{
		Name:     parts[0],
		Args:     parts[1:],
		RawInput: line,
	}
}

// IsBlank reports whether the line holds nothing worth dispatching.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// IsComment reports whether a script line is a comment ("#" or "//").
func IsComment(line string) bool {
	line = strings.TrimSpace(line)
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//")
}
