// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling for the devconsole TUI.
package styles

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/devconsole/internal/console"
)

// Theme holds the styled components for the console window. Styles come
// from the theme's own renderer, so a forced theme does not change the
// process-wide lipgloss defaults.
type Theme struct {
	// Terminal capabilities
	Name         string
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	renderer *lipgloss.Renderer

	// ==========================================================================
	// CONSOLE STYLES
	// ==========================================================================

	Title      lipgloss.Style
	Scrollback lipgloss.Style
	Prompt     lipgloss.Style
	Input      lipgloss.Style
	Hint       lipgloss.Style
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	ErrorText  lipgloss.Style
}

// NewTheme creates a theme writing to stdout. name is one of "auto",
// "dark", "light" or "none"; "none" disables color entirely.
func NewTheme(name string) *Theme {
	return NewThemeFor(os.Stdout, name)
}

// NewThemeFor creates a theme for the terminal behind w.
func NewThemeFor(w io.Writer, name string) *Theme {
	r := lipgloss.NewRenderer(w)
	switch name {
	case "dark":
		r.SetHasDarkBackground(true)
	case "light":
		r.SetHasDarkBackground(false)
	case "none":
		r.SetColorProfile(termenv.Ascii)
	}

	t := &Theme{
		Name:         name,
		IsDark:       r.HasDarkBackground(),
		ColorProfile: r.ColorProfile(),
		renderer:     r,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	r := t.renderer

	t.Title = r.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Padding(0, 1)

	t.Scrollback = r.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.Prompt = r.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.Input = r.NewStyle().
		Foreground(TextPrimary)

	t.Hint = r.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.StatusBar = r.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.StatusKey = r.NewStyle().
		Foreground(Purple).
		Background(SurfaceDim).
		Bold(true)

	t.ErrorText = r.NewStyle().
		Foreground(Rose)
}

// SpanStyle returns the style for a console text span. The console's white
// and gray follow the theme's text colors so they stay readable on light
// backgrounds; any other color is used as given.
func (t *Theme) SpanStyle(c console.Color) lipgloss.Style {
	switch c {
	case console.White:
		return t.renderer.NewStyle().Foreground(TextPrimary)
	case console.Gray:
		return t.renderer.NewStyle().Foreground(TextMuted)
	}
	return t.renderer.NewStyle().Foreground(lipgloss.Color(c.Hex()))
}

// RenderSpans renders spans in their colors. Each line is styled on its
// own so multi-line spans are not padded to a common width.
func (t *Theme) RenderSpans(spans []console.TextSpan) string {
	var sb strings.Builder
	for _, s := range spans {
		style := t.SpanStyle(s.Color)
		for i, line := range strings.Split(s.Text, "\n") {
			if i > 0 {
				sb.WriteByte('\n')
			}
			if line != "" {
				sb.WriteString(style.Render(line))
			}
		}
	}
	return sb.String()
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}
