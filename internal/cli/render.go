// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/jeranaias/devconsole/internal/console"
	"github.com/jeranaias/devconsole/internal/session"
)

// spanWriter prints console spans to a line-oriented terminal.
type spanWriter struct {
	w       io.Writer
	profile termenv.Profile
}

func newSpanWriter(w io.Writer) *spanWriter {
	return &spanWriter{w: w, profile: profileFor(w)}
}

// Print writes spans in order. White is left to the terminal's default
// foreground so light backgrounds stay readable.
func (p *spanWriter) Print(spans []console.TextSpan) {
	var sb strings.Builder
	for _, span := range spans {
		if span.Color == console.White || p.profile == termenv.Ascii {
			sb.WriteString(span.Text)
			continue
		}
		sb.WriteString(p.profile.String(span.Text).Foreground(p.profile.Color(span.Color.Hex())).String())
	}
	io.WriteString(p.w, sb.String())
}

// Flush prints the session scrollback and empties it. Line hosts use the
// scrollback as an output queue.
func (p *spanWriter) Flush(sess *session.Session) {
	var spans []console.TextSpan
	sess.Do(func(_ console.Visitor, scrollback *console.Buffer) {
		spans = append(spans, scrollback.Spans()...)
		scrollback.Clear()
	})
	p.Print(spans)
}
