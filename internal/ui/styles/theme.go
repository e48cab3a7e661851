// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme names accepted by NewTheme.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemeAuto  = "auto"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Name is the configured theme name
	Name string

	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	renderer *lipgloss.Renderer

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar           lipgloss.Style
	SidebarFocused    lipgloss.Style
	SidebarTitle      lipgloss.Style
	SidebarItem       lipgloss.Style
	SidebarItemActive lipgloss.Style
	SidebarCursor     lipgloss.Style
	SidebarMeta       lipgloss.Style
	SidebarRail       lipgloss.Style

	// ==========================================================================
	// TERMINAL PANE STYLES
	// ==========================================================================

	Pane          lipgloss.Style
	PaneFocused   lipgloss.Style
	PaneTitle     lipgloss.Style
	Prompt        lipgloss.Style
	UserLine      lipgloss.Style
	AssistantLine lipgloss.Style
	Caret         lipgloss.Style
	EmptyState    lipgloss.Style

	// ==========================================================================
	// STATUS AND OVERLAY STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Notice       lipgloss.Style
	ErrorText    lipgloss.Style
	Hint         lipgloss.Style
	OverlayBox   lipgloss.Style
}

// NewTheme creates a theme. name is "dark", "light" or "auto"; anything
// else is treated as "auto".
func NewTheme(name string) *Theme {
	r := lipgloss.NewRenderer(os.Stdout)
	name = strings.ToLower(name)

	isDark := r.HasDarkBackground()
	switch name {
	case ThemeDark:
		isDark = true
	case ThemeLight:
		isDark = false
	default:
		name = ThemeAuto
	}
	r.SetHasDarkBackground(isDark)

	t := &Theme{
		Name:         name,
		IsDark:       isDark,
		ColorProfile: r.ColorProfile(),
		renderer:     r,
	}
	t.initStyles()
	return t
}

// GlamourStyle returns the glamour standard style matching the theme.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	s := t.renderer.NewStyle

	// Sidebar
	t.Sidebar = s().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.SidebarFocused = t.Sidebar.
		BorderForeground(FocusRing)

	t.SidebarTitle = s().
		Bold(true).
		Foreground(Purple)

	t.SidebarItem = s().
		Foreground(TextPrimary)

	t.SidebarItemActive = s().
		Foreground(Purple).
		Bold(true)

	t.SidebarCursor = s().
		Background(SelectionBg)

	t.SidebarMeta = s().
		Foreground(TextMuted)

	t.SidebarRail = s().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Overlay).
		Foreground(TextSecondary)

	// Terminal pane
	t.Pane = s().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.PaneFocused = t.Pane.
		BorderForeground(FocusRing)

	t.PaneTitle = s().
		Bold(true).
		Foreground(TextSecondary)

	t.Prompt = s().
		Foreground(Cyan).
		Bold(true)

	t.UserLine = s().
		Foreground(Cyan)

	t.AssistantLine = s().
		Foreground(TextPrimary)

	t.Caret = s().
		Foreground(Purple).
		Bold(true)

	t.EmptyState = s().
		Foreground(TextMuted).
		Italic(true)

	// Status and overlays
	t.StatusBar = s().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = s().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = s().
		Foreground(TextMuted)

	t.Notice = s().
		Foreground(Emerald)

	t.ErrorText = s().
		Foreground(Rose).
		Bold(true)

	t.Hint = s().
		Foreground(Amber)

	t.OverlayBox = s().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 2)
}

// Style returns a fresh style bound to the theme's renderer.
func (t *Theme) Style() lipgloss.Style {
	return t.renderer.NewStyle()
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // >= 100 columns
)

// RenderNotice renders a success message with its indicator.
func (t *Theme) RenderNotice(message string) string {
	return t.Notice.Render(StatusIndicators.Success + " " + message)
}

// RenderError renders an error message with its indicator.
func (t *Theme) RenderError(message string) string {
	return t.ErrorText.Render(StatusIndicators.Error + " " + message)
}

// RenderInfo renders an informational message with its indicator.
func (t *Theme) RenderInfo(message string) string {
	return t.Hint.Render(StatusIndicators.Info + " " + message)
}
