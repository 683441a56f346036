// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling for the devconsole TUI.

# Color System (colors.go)

All palette colors are Lip Gloss AdaptiveColor values, resolved against
the terminal background:

  - Cyan - Prompt and title
  - Purple - Focus and status keys
  - Rose - Errors
  - Amber, Emerald - Warnings and success

# Themes (theme.go)

A Theme is built for one named mode:

	auto  - detect the terminal background
	dark  - force dark
	light - force light
	none  - no color

Console text spans carry RGBA colors. SpanStyle maps them to Lip Gloss
styles; white and gray follow the theme's text colors.

	theme := styles.NewTheme(cfg.Console.Theme)
	view := theme.RenderSpans(sess.Spans())
*/
package styles
