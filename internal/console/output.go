// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"fmt"
	"strings"
	"unicode"
)

// =============================================================================
// COLORS AND SPANS
// =============================================================================

// Color is an RGBA color with components in [0, 1].
type Color [4]float32

var (
	White  = Color{1, 1, 1, 1}
	Red    = Color{1, 0, 0, 1}
	Yellow = Color{1, 1, 0, 1}
	Cyan   = Color{0, 1, 1, 1}
	Gray   = Color{0.5, 0.5, 0.5, 1}
)

// Hex returns the color as #RRGGBB. Alpha is dropped.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", channel(c[0]), channel(c[1]), channel(c[2]))
}

func channel(f float32) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	}
	return uint8(f*255 + 0.5)
}

// TextSpan is a run of colored output text.
type TextSpan struct {
	Color Color
	Text  string
}

// Span returns a white span.
func Span(text string) TextSpan { return TextSpan{Color: White, Text: text} }

// ErrorSpan returns a red span carrying err's message.
func ErrorSpan(err error) TextSpan { return TextSpan{Color: Red, Text: err.Error()} }

func (s TextSpan) String() string { return s.Text }

// =============================================================================
// SINK
// =============================================================================

// Sink receives console output. Actions write to the Sink they are invoked
// with; hosts implement it to render spans wherever they like.
type Sink interface {
	Write(text string)
	WriteColored(c Color, text string)
	WriteResult(r Result)
	WriteError(err error)
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Write(string)               {}
func (discard) WriteColored(Color, string) {}
func (discard) WriteResult(Result)         {}
func (discard) WriteError(error)           {}

// =============================================================================
// BUFFER
// =============================================================================

// Buffer is an in-memory Sink holding spans in the order written.
type Buffer struct {
	spans []TextSpan
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer { return &Buffer{} }

// Write appends a white span as-is.
func (b *Buffer) Write(text string) { b.Push(Span(text)) }

// WriteColored appends a span with an explicit color.
func (b *Buffer) WriteColored(c Color, text string) { b.Push(TextSpan{Color: c, Text: text}) }

// Writeln appends span as a line: trailing whitespace is trimmed and a
// newline added, and a span that trims to nothing is dropped.
func (b *Buffer) Writeln(span TextSpan) {
	span.Text = strings.TrimRightFunc(span.Text, unicode.IsSpace)
	if span.Text == "" {
		return
	}
	span.Text += "\n"
	b.Push(span)
}

// WriteResult renders a success as a white line and a failure as a red one.
func (b *Buffer) WriteResult(r Result) {
	if err := r.Err(); err != nil {
		b.WriteError(err)
		return
	}
	b.Writeln(Span(r.Text()))
}

// WriteError renders err's message as a red line.
func (b *Buffer) WriteError(err error) {
	if err == nil {
		return
	}
	b.Writeln(ErrorSpan(err))
}

// Push appends a span unchanged.
func (b *Buffer) Push(span TextSpan) { b.spans = append(b.spans, span) }

// Append moves every span of other to the end of b and empties other.
func (b *Buffer) Append(other *Buffer) {
	b.spans = append(b.spans, other.spans...)
	other.spans = nil
}

// Spans returns the buffered spans. The slice must not be modified.
func (b *Buffer) Spans() []TextSpan { return b.spans }

// Len returns the number of spans.
func (b *Buffer) Len() int { return len(b.spans) }

// Clear drops all spans.
func (b *Buffer) Clear() { b.spans = nil }

// Truncate keeps only the newest max spans. max <= 0 keeps everything.
func (b *Buffer) Truncate(max int) {
	if max <= 0 || len(b.spans) <= max {
		return
	}
	kept := make([]TextSpan, max)
	copy(kept, b.spans[len(b.spans)-max:])
	b.spans = kept
}

// String joins the text of all spans, without colors.
func (b *Buffer) String() string {
	var sb strings.Builder
	for _, s := range b.spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
