// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"sort"
	"strings"
)

// =============================================================================
// COMPLETION
// =============================================================================

// Completion is a candidate for the command name being typed.
type Completion struct {
	Value       string // Full path to insert
	Description string // Node description
	Kind        Kind   // What the path resolves to
	Score       int    // Ranking, higher first
}

// Complete returns the paths that extend the command name in input, best
// first. Once the name is followed by a space there is nothing to complete.
// Lists are offered with a trailing dot so the next Tab descends into them.
func Complete(root Visitor, input string, out Sink) []Completion {
	input = strings.TrimLeft(input, " ")
	if strings.Contains(input, " ") {
		return nil
	}

	var completions []Completion
	seen := make(map[string]bool)
	Walk(root, out, func(path string, n Node) {
		value := path
		if n.Kind() == KindList {
			value += "."
		}
		if seen[value] || !strings.HasPrefix(value, input) {
			return
		}
		seen[value] = true
		completions = append(completions, Completion{
			Value:       value,
			Description: n.Description(),
			Kind:        n.Kind(),
			Score:       completionScore(value, input),
		})
	})
	sortCompletions(completions)
	return completions
}

// CommonPrefix returns the longest prefix shared by every completion.
func CommonPrefix(completions []Completion) string {
	if len(completions) == 0 {
		return ""
	}
	prefix := completions[0].Value
	for _, c := range completions[1:] {
		for !strings.HasPrefix(c.Value, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}

// completionScore ranks exact matches first, then shorter and shallower
// paths.
func completionScore(value, partial string) int {
	score := 100
	if value == partial {
		return score + 100
	}
	score -= 10 * strings.Count(value[len(partial):], ".")
	score -= len(value) / 2
	return score
}

func sortCompletions(completions []Completion) {
	sort.SliceStable(completions, func(i, j int) bool {
		if completions[i].Score != completions[j].Score {
			return completions[i].Score > completions[j].Score
		}
		return completions[i].Value < completions[j].Value
	})
}
