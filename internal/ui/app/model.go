// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeranaias/ragify-tui/internal/chats"
	"github.com/jeranaias/ragify-tui/internal/config"
	"github.com/jeranaias/ragify-tui/internal/terminal"
	"github.com/jeranaias/ragify-tui/internal/ui/chat"
	"github.com/jeranaias/ragify-tui/internal/ui/sidebar"
	"github.com/jeranaias/ragify-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ConfigReloadedMsg carries a configuration reloaded from disk. Err is set
// when the new file could not be loaded; the running config is kept.
type ConfigReloadedMsg struct {
	Cfg *config.Config
	Err error
}

// =============================================================================
// MODEL
// =============================================================================

type focusArea int

const (
	focusChat focusArea = iota
	focusSidebar
)

// Deps are the collaborators the application model drives.
type Deps struct {
	Config  *config.Config
	Chats   *chats.Store
	Session *terminal.Session
	Logger  *zap.Logger

	// Clipboard overrides the system clipboard, for tests.
	Clipboard func(string) error
}

// Model is the root bubbletea model.
type Model struct {
	cfg    *config.Config
	store  *chats.Store
	logger *zap.Logger
	theme  *styles.Theme
	keys   KeyMap
	help   help.Model

	sidebar sidebar.Model
	pane    chat.Model

	focus    focusArea
	initCmd  tea.Cmd
	showHelp bool
	notice   string

	width  int
	height int
}

// New wires the sidebar and the terminal pane to the chat store and session.
func New(deps Deps) Model {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	theme := styles.NewTheme(cfg.UI.Theme)

	m := Model{
		cfg:     cfg,
		store:   deps.Chats,
		logger:  logger,
		theme:   theme,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		sidebar: sidebar.New(deps.Chats, theme),
		pane:    chat.New(deps.Session, theme, chat.Options{
			TypingSpeed: typingSpeed(cfg),
			ShowHints:   cfg.UI.ShowHints,
			Clipboard:   deps.Clipboard,
		}),
	}

	m.sidebar.SetRevealSpeed(titleRevealSpeed(cfg))
	m.syncActive()

	// With nothing selected the chat list is the useful place to start.
	start := focusSidebar
	if _, ok := m.store.ActiveChat(); ok {
		start = focusChat
	}
	m.initCmd = m.setFocus(start)
	return m
}

// Init implements tea.Model. Focus is already set by New; this only starts
// the focused component's cursor.
func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Sidebar returns the sidebar component.
func (m Model) Sidebar() sidebar.Model { return m.sidebar }

// Pane returns the terminal pane component.
func (m Model) Pane() chat.Model { return m.pane }

// SidebarFocused reports whether keyboard focus is in the chat list.
func (m Model) SidebarFocused() bool { return m.focus == focusSidebar }

// HelpVisible reports whether the help overlay is open.
func (m Model) HelpVisible() bool { return m.showHelp }

// Notice returns the status-bar notice, if any.
func (m Model) Notice() string { return m.notice }

// Config returns the running configuration.
func (m Model) Config() *config.Config { return m.cfg }

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case ConfigReloadedMsg:
		m.applyConfig(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Everything else (ticks, blinks, clipboard results) goes to both
	// components; each ignores what it does not own.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.sidebar, cmd = m.sidebar.Update(msg)
	cmds = append(cmds, cmd)
	m.pane, cmd = m.pane.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.sidebar.Blur()
		return m, tea.Quit
	}

	if m.showHelp {
		if msg.Type == tea.KeyEsc || key.Matches(msg, m.keys.Help) || msg.String() == "?" || msg.String() == "q" {
			m.showHelp = false
		}
		return m, nil
	}

	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case msg.String() == "?" && m.focus == focusSidebar && !m.sidebar.Editing():
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		if m.focus == focusChat && m.pane.CanComplete() {
			break
		}
		return m, m.toggleFocus()

	case key.Matches(msg, m.keys.ToggleSidebar):
		m.sidebar.Blur()
		m.store.ToggleSidebar()
		// A rail still navigates, so focus stays where it was.
		cmd := m.setFocus(m.focus)
		m.layout()
		return m, cmd

	case key.Matches(msg, m.keys.NewChat):
		focusCmd := m.setFocus(focusSidebar)
		cmd := m.sidebar.NewChat()
		m.syncActive()
		m.layout()
		return m, tea.Batch(focusCmd, cmd)
	}

	var cmd tea.Cmd
	if m.focus == focusSidebar {
		selecting := !m.sidebar.Editing() && key.Matches(msg, m.sidebar.Keys().Select)
		m.sidebar, cmd = m.sidebar.Update(msg)
		// Choosing a chat moves the user into it.
		if _, ok := m.store.ActiveChat(); ok && selecting {
			m.syncActive()
			return m, tea.Batch(cmd, m.setFocus(focusChat))
		}
	} else {
		m.pane, cmd = m.pane.Update(msg)
	}
	m.syncActive()
	m.layout()
	return m, cmd
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == focusChat {
		return m.setFocus(focusSidebar)
	}
	return m.setFocus(focusChat)
}

func (m *Model) setFocus(f focusArea) tea.Cmd {
	m.focus = f
	if f == focusSidebar {
		m.pane.Blur()
		return m.sidebar.Focus()
	}
	m.sidebar.Blur()
	m.syncActive()
	return m.pane.Focus()
}

// syncActive points the pane at the store's active chat and keeps its
// title current. A dangling active id shows no chat.
func (m *Model) syncActive() {
	c, ok := m.store.ActiveChat()
	if !ok {
		if m.pane.Session().ChatID() != "" {
			m.pane.Switch("", "")
		}
		return
	}
	if c.ID != m.pane.Session().ChatID() {
		m.pane.Switch(c.ID, c.Title)
		return
	}
	m.pane.SetTitle(c.Title)
}

func (m *Model) applyConfig(msg ConfigReloadedMsg) {
	if msg.Err != nil {
		m.logger.Warn("config reload failed", zap.Error(msg.Err))
		m.notice = m.theme.RenderError("config reload failed, keeping current settings")
		return
	}
	if msg.Cfg == nil {
		return
	}

	// Storage and log settings only apply at startup.
	next := msg.Cfg.Clone()
	next.Storage = m.cfg.Storage
	next.Log = m.cfg.Log
	m.cfg = next

	m.theme = styles.NewTheme(next.UI.Theme)
	m.sidebar.SetTheme(m.theme)
	m.pane.SetTheme(m.theme)
	m.pane.SetTypingSpeed(typingSpeed(next))
	m.sidebar.SetRevealSpeed(titleRevealSpeed(next))
	m.pane.SetShowHints(next.UI.ShowHints)
	m.layout()

	m.logger.Info("config reloaded",
		zap.String("theme", next.UI.Theme),
		zap.Int("typing_speed_ms", next.UI.TypingSpeedMs))
	m.notice = m.theme.RenderNotice("config reloaded")
}

func typingSpeed(cfg *config.Config) time.Duration {
	return time.Duration(cfg.UI.TypingSpeedMs) * time.Millisecond
}

// titleRevealSpeed keeps sidebar titles at their own fixed pace, off when
// typing animation is disabled.
func titleRevealSpeed(cfg *config.Config) time.Duration {
	if cfg.UI.TypingSpeedMs <= 0 {
		return 0
	}
	return sidebar.TitleRevealSpeed
}

// =============================================================================
// LAYOUT
// =============================================================================

// layout sizes the components for the current window.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.theme.SetSize(m.width, m.height)
	m.help.Width = m.width

	bodyHeight := max(1, m.height-1)

	sidebarWidth := m.cfg.UI.SidebarWidth
	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		sidebarWidth = min(sidebarWidth, m.width/2)
	}
	m.sidebar.SetSize(sidebarWidth, bodyHeight)
	m.pane.SetSize(max(10, m.width-m.sidebar.Width()), bodyHeight)
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	bodyHeight := max(1, m.height-1)
	var body string
	if m.showHelp {
		box := m.theme.OverlayBox
		inner := max(20, m.width-box.GetHorizontalFrameSize())
		body = box.
			Width(m.width - box.GetHorizontalBorderSize()).
			Height(max(1, bodyHeight-box.GetVerticalBorderSize())).
			MaxHeight(bodyHeight).
			Render(m.renderHelp(inner))
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), m.pane.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar())
}

func (m Model) statusBar() string {
	var local []key.Binding
	if m.focus == focusSidebar {
		local = m.sidebar.Keys().ShortHelp()
	} else {
		local = m.pane.Keys().ShortHelp()
	}
	line := m.help.View(statusKeys{local: local, global: m.keys})
	if m.notice != "" {
		line = m.notice + "  " + line
	}
	return m.theme.StatusBar.Width(m.width).MaxHeight(1).Render(line)
}
