// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragify-tui/internal/terminal"
	"github.com/jeranaias/ragify-tui/internal/ui/styles"
	"github.com/jeranaias/ragify-tui/internal/ui/typing"
)

// =============================================================================
// MESSAGES
// =============================================================================

// CopiedMsg reports the result of a clipboard copy.
type CopiedMsg struct {
	Text string
	Err  error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the terminal pane.
type Model struct {
	session *terminal.Session
	theme   *styles.Theme
	keys    KeyMap

	input    textinput.Model
	viewport viewport.Model

	// typer animates the message with ID typingID.
	typer       typing.Model
	typingID    string
	typingSpeed time.Duration

	title     string
	showHints bool
	status    string

	width   int
	height  int
	focused bool

	copyFn func(string) error
}

// Options configures a new pane.
type Options struct {
	// TypingSpeed is the per-character reveal delay; 0 disables the animation
	TypingSpeed time.Duration
	// ShowHints shows the key hint under an empty terminal
	ShowHints bool
	// Clipboard writes text to the system clipboard. Default: atotto/clipboard
	Clipboard func(string) error
}

// New creates the terminal pane over session.
func New(session *terminal.Session, theme *styles.Theme, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "type a command"
	ti.CharLimit = 4096

	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	m := Model{
		session:     session,
		theme:       theme,
		keys:        DefaultKeyMap(),
		input:       ti,
		viewport:    viewport.New(0, 0),
		typingSpeed: opts.TypingSpeed,
		showHints:   opts.ShowHints,
		copyFn:      copyFn,
	}
	m.refresh()
	return m
}

// Keys returns the pane's key bindings.
func (m Model) Keys() KeyMap { return m.keys }

// Session returns the underlying terminal session.
func (m Model) Session() *terminal.Session { return m.session }

// Focused reports whether the pane has keyboard focus.
func (m Model) Focused() bool { return m.focused }

// Input returns the text in the input field.
func (m Model) Input() string { return m.input.Value() }

// Status returns the transient status line.
func (m Model) Status() string { return m.status }

// Typing reports whether an output line is still being revealed.
func (m Model) Typing() bool { return m.typingID != "" && !m.typer.Done() }

// Focus gives the pane keyboard focus.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.input.Focus()
}

// Blur removes keyboard focus.
func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
}

// SetTheme swaps the theme.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
	m.refresh()
}

// SetTypingSpeed changes the reveal delay for future output.
func (m *Model) SetTypingSpeed(d time.Duration) { m.typingSpeed = d }

// SetShowHints toggles the empty-terminal hint.
func (m *Model) SetShowHints(show bool) { m.showHints = show }

// SetTitle sets the chat title shown in the pane header.
func (m *Model) SetTitle(title string) { m.title = title }

// SetSize sets the outer size of the pane.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	frameW := m.theme.Pane.GetHorizontalFrameSize()
	frameH := m.theme.Pane.GetVerticalFrameSize()
	m.input.Width = max(1, width-frameW-len(PromptSymbol)-1)

	// Header line, blank line, input line, hint line.
	m.viewport.Width = max(1, width-frameW)
	m.viewport.Height = max(1, height-frameH-4)
	m.refresh()
}

// Switch shows chatID, loading its log. Any running animation is dropped.
func (m *Model) Switch(chatID, title string) {
	m.session.Switch(chatID)
	m.title = title
	m.typingID = ""
	m.status = ""
	m.syncInput()
	m.refresh()
	m.viewport.GotoBottom()
}

// CanComplete reports whether Tab would complete a command right now.
func (m Model) CanComplete() bool {
	_, ok := completion(m.input.Value())
	return ok
}
