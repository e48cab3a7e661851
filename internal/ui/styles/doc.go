// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the ragify TUI.

All colors are Lip Gloss AdaptiveColor values. Each Theme owns a renderer
whose dark-background flag decides which half of every color pair is used,
so a configured "dark" or "light" theme holds regardless of what the
terminal reports. "auto" asks termenv.

# Color System (colors.go)

  - Purple - Active chat, focus ring, assistant output
  - Cyan - Prompt and user input
  - Emerald - Success notices
  - Amber - Hints and warnings
  - Rose - Errors and destructive actions

# Theme (theme.go)

	theme := styles.NewTheme("auto")
	theme.SetSize(width, height)
	line := theme.Prompt.Render("> ")

# Layout

GetLayoutMode maps the terminal width to LayoutNarrow, LayoutMedium or
LayoutWide. Narrow layouts start with the sidebar rendered as a rail.
*/
package styles
