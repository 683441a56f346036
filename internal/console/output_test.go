// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuffer_Writeln(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []TextSpan
	}{
		{"plain", "150", []TextSpan{Span("150\n")}},
		{"trailing space", "done  \t", []TextSpan{Span("done\n")}},
		{"trailing newlines", "a\nb\n\n", []TextSpan{Span("a\nb\n")}},
		{"empty", "", nil},
		{"whitespace only", " \n\t", nil},
		{"leading space kept", "  indented", []TextSpan{Span("  indented\n")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer()
			b.Writeln(Span(tt.in))
			assert.Equal(t, tt.want, b.Spans())
		})
	}
}

func TestBuffer_WriteResult(t *testing.T) {
	b := NewBuffer()
	b.WriteResult(Ok("100"))
	b.WriteResult(Ok(""))
	b.WriteResult(Fail(ErrUnknownCommand))

	assert.Equal(t, []TextSpan{
		{Color: White, Text: "100\n"},
		{Color: Red, Text: "Unknown command\n"},
	}, b.Spans())
	assert.Equal(t, "100\nUnknown command\n", b.String())
}

func TestBuffer_AppendTruncate(t *testing.T) {
	a, b := NewBuffer(), NewBuffer()
	a.Write("1")
	b.Write("2")
	b.WriteColored(Yellow, "3")

	a.Append(b)
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 0, b.Len())

	a.Truncate(2)
	assert.Equal(t, "23", a.String())
	a.Truncate(0)
	assert.Equal(t, "23", a.String(), "zero keeps everything")

	a.Clear()
	assert.Equal(t, 0, a.Len())
}

func TestDiscard(t *testing.T) {
	Discard.Write("x")
	Discard.WriteColored(Red, "x")
	Discard.WriteResult(Ok("x"))
	Discard.WriteError(errors.New("x"))
}

func TestColor_Hex(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{White, "#FFFFFF"},
		{Red, "#FF0000"},
		{Yellow, "#FFFF00"},
		{Cyan, "#00FFFF"},
		{Color{0, 0, 0, 0}, "#000000"},
	}
	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("%v.Hex() = %s, want %s", tt.c, got, tt.want)
		}
	}
}

func TestResult(t *testing.T) {
	ok := Ok("fine")
	assert.True(t, ok.IsOK())
	assert.Nil(t, ok.Err())
	assert.Equal(t, "fine", ok.String())
	_, failed := ok.Kind()
	assert.False(t, failed)

	var zero Result
	assert.True(t, zero.IsOK())
	assert.Equal(t, "", zero.Text())

	assert.Equal(t, "Invalid value: not a number", Fail(Invalid("not a number")).String())
	assert.Equal(t, "Usage: find <name>", Fail(Usage("find <name>")).String())
	assert.Equal(t, "No results", Fail(ErrNoResults).String())
	assert.Equal(t, "Unimplemented", Fail(ErrUnimplemented).String())
	assert.Equal(t, "Unknown property", Fail(ErrUnknownProperty).String())
	assert.Equal(t, "3 values", Okf("%d values", 3).Text())
	assert.Equal(t, "2.5", OkValue(2.5).Text())
	assert.True(t, Fail(nil).IsOK())
}

func TestFail_KeepsKind(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", Invalid("bad"))
	kind, _ := Fail(wrapped).Kind()
	assert.Equal(t, InvalidValue, kind)

	plain := Fail(errors.New("disk full"))
	kind, _ = plain.Kind()
	assert.Equal(t, CustomError, kind)
	assert.Equal(t, "disk full", plain.Err().Error())
}

func TestError_Is(t *testing.T) {
	assert.True(t, errors.Is(Invalid("a"), ErrInvalidValue))
	assert.False(t, errors.Is(Invalid("a"), ErrInvalidUsage))
	assert.True(t, errors.Is(Custom("same"), Custom("same")))
	assert.False(t, errors.Is(Custom("one"), Custom("two")))
}
