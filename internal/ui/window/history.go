// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package window

// History recalls previously submitted lines, newest last.
type History struct {
	entries []string
	max     int
	pos     int    // len(entries) when not browsing
	draft   string // line being typed before browsing started
}

// NewHistory creates a history keeping at most max lines (0 = unlimited).
func NewHistory(max int) *History {
	return &History{max: max}
}

// Add records a submitted line. Blank lines and repeats of the previous
// line are not recorded. Browsing restarts from the newest entry.
func (h *History) Add(line string) {
	if line != "" && (len(h.entries) == 0 || h.entries[len(h.entries)-1] != line) {
		h.entries = append(h.entries, line)
		if h.max > 0 && len(h.entries) > h.max {
			h.entries = h.entries[len(h.entries)-h.max:]
		}
	}
	h.pos = len(h.entries)
	h.draft = ""
}

// Prev returns the entry before the current one. current is kept as the
// draft when browsing starts, so Next can return to it.
func (h *History) Prev(current string) (string, bool) {
	if h.pos == 0 {
		return current, false
	}
	if h.pos == len(h.entries) {
		h.draft = current
	}
	h.pos--
	return h.entries[h.pos], true
}

// Next returns the entry after the current one, or the draft past the end.
func (h *History) Next() (string, bool) {
	if h.pos >= len(h.entries) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.entries) {
		return h.draft, true
	}
	return h.entries[h.pos], true
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }
