// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sidebar renders the chat list and handles selection, creation,
// inline renaming and deletion of chats.
package sidebar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragify-tui/internal/chats"
	"github.com/jeranaias/ragify-tui/internal/ui/styles"
	"github.com/jeranaias/ragify-tui/internal/ui/typing"
	"github.com/jeranaias/ragify-tui/internal/util"
)

// RailWidth is the width of the collapsed sidebar.
const RailWidth = 5

// TitleRevealSpeed is the per-character delay when a renamed title is
// typed back into the list.
const TitleRevealSpeed = 25 * time.Millisecond

// Model is the sidebar component. The chat store is the source of truth;
// the model only adds the highlighted row and the rename input.
type Model struct {
	store *chats.Store
	theme *styles.Theme
	keys  KeyMap

	rename    textinput.Model
	renamedID string

	// reveal types the title of chat revealID after a rename.
	reveal      typing.Model
	revealID    string
	revealSpeed time.Duration

	cursor        int
	pendingDelete string

	width   int
	height  int
	focused bool
}

// New creates a sidebar over store.
func New(store *chats.Store, theme *styles.Theme) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 120

	m := Model{
		store:  store,
		theme:  theme,
		keys:   DefaultKeyMap(),
		rename: ti,
		width:  28,

		revealSpeed: TitleRevealSpeed,
	}
	m.syncCursorToActive()
	return m
}

// Keys returns the sidebar key bindings.
func (m Model) Keys() KeyMap { return m.keys }

// SetTheme swaps the theme.
func (m *Model) SetTheme(theme *styles.Theme) { m.theme = theme }

// SetSize sets the expanded width and the height.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.rename.Width = max(1, width-6)
}

// Width returns the rendered width for the current collapse state.
func (m Model) Width() int {
	if m.store.Snapshot().SidebarCollapsed {
		return RailWidth
	}
	return m.width
}

// SetRevealSpeed sets the title reveal delay; 0 shows titles at once.
func (m *Model) SetRevealSpeed(d time.Duration) { m.revealSpeed = d }

// Revealing reports whether a title is still being typed out.
func (m Model) Revealing() bool { return m.revealID != "" && !m.reveal.Done() }

// Focused reports whether the sidebar has keyboard focus.
func (m Model) Focused() bool { return m.focused }

// Editing reports whether an inline rename is in progress.
func (m Model) Editing() bool {
	_, ok := m.store.Snapshot().Editing()
	return ok
}

// Cursor returns the highlighted row.
func (m Model) Cursor() int { return m.cursor }

// PendingDelete returns the chat awaiting delete confirmation, if any.
func (m Model) PendingDelete() string { return m.pendingDelete }

// Focus gives the sidebar keyboard focus.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	if m.Editing() {
		return m.rename.Focus()
	}
	return nil
}

// Blur removes focus. An inline rename in progress is committed, the same
// as clicking away from the field.
func (m *Model) Blur() {
	m.focused = false
	m.pendingDelete = ""
	m.commitRename()
	m.rename.Blur()
}

// NewChat creates a chat and opens its rename field.
func (m *Model) NewChat() tea.Cmd {
	m.commitRename()
	m.store.CreateChat()
	m.pendingDelete = ""
	m.cursor = 0
	return m.syncRename()
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles key input while focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case typing.TickMsg:
		if msg.ID != m.reveal.ID() {
			return m, nil
		}
		var cmd tea.Cmd
		m.reveal, cmd = m.reveal.Update(msg)
		return m, cmd
	case typing.DoneMsg:
		if msg.ID == m.reveal.ID() {
			m.revealID = ""
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		if m.Editing() {
			var cmd tea.Cmd
			m.rename, cmd = m.rename.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.Editing() {
		return m.updateRename(keyMsg)
	}

	st := m.store.Snapshot()

	if m.pendingDelete != "" {
		if key.Matches(keyMsg, m.keys.Confirm) {
			m.store.DeleteChat(m.pendingDelete)
			m.pendingDelete = ""
			m.clampCursor()
			return m, nil
		}
		m.pendingDelete = ""
		if key.Matches(keyMsg, m.keys.Cancel) {
			return m, nil
		}
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(st.Chats)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Select):
		if c, ok := m.highlighted(st); ok {
			m.store.SetActiveChat(c.ID)
		}

	case key.Matches(keyMsg, m.keys.New):
		return m, m.NewChat()

	case key.Matches(keyMsg, m.keys.Rename):
		if c, ok := m.highlighted(st); ok {
			m.store.StartEditing(c.ID)
			return m, m.syncRename()
		}

	case key.Matches(keyMsg, m.keys.Delete):
		if c, ok := m.highlighted(st); ok {
			m.pendingDelete = c.ID
		}
	}

	return m, nil
}

func (m Model) updateRename(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m, m.startReveal(m.commitRename())
	case tea.KeyEsc:
		if c, ok := m.store.Snapshot().Editing(); ok {
			m.store.StopEditing(c.ID, false, nil)
		}
		m.renamedID = ""
		m.rename.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.rename, cmd = m.rename.Update(msg)
	return m, cmd
}

// commitRename ends an inline rename, keeping the typed title. It returns
// the committed chat's id, or "" if nothing was being renamed.
func (m *Model) commitRename() string {
	c, ok := m.store.Snapshot().Editing()
	if !ok {
		return ""
	}
	title := c.Title
	if m.renamedID == c.ID {
		title = m.rename.Value()
	}
	m.store.StopEditing(c.ID, true, &title)
	m.renamedID = ""
	m.rename.Blur()
	return c.ID
}

// startReveal types out the stored title of chat id.
func (m *Model) startReveal(id string) tea.Cmd {
	c, ok := m.store.Snapshot().Find(id)
	if !ok || m.revealSpeed <= 0 {
		return nil
	}
	m.reveal = typing.New(c.Title, m.revealSpeed)
	m.revealID = id
	return m.reveal.Init()
}

// syncRename loads the editing chat's title into the rename field.
func (m *Model) syncRename() tea.Cmd {
	c, ok := m.store.Snapshot().Editing()
	if !ok {
		return nil
	}
	m.renamedID = c.ID
	m.rename.SetValue(c.Title)
	m.rename.CursorEnd()
	if i := indexOf(m.store.Snapshot(), c.ID); i >= 0 {
		m.cursor = i
	}
	return m.rename.Focus()
}

// Refresh reconciles the model with store changes made elsewhere.
func (m *Model) Refresh() tea.Cmd {
	m.clampCursor()
	if c, ok := m.store.Snapshot().Editing(); ok && m.renamedID != c.ID {
		return m.syncRename()
	}
	return nil
}

func (m *Model) syncCursorToActive() {
	st := m.store.Snapshot()
	if i := indexOf(st, st.ActiveChatID); i >= 0 {
		m.cursor = i
	}
}

func (m *Model) clampCursor() {
	n := len(m.store.Snapshot().Chats)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) highlighted(st chats.State) (chats.ChatSummary, bool) {
	if m.cursor < 0 || m.cursor >= len(st.Chats) {
		return chats.ChatSummary{}, false
	}
	return st.Chats[m.cursor], true
}

func indexOf(st chats.State, id string) int {
	for i, c := range st.Chats {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the sidebar.
func (m Model) View() string {
	st := m.store.Snapshot()
	if st.SidebarCollapsed {
		return m.viewRail(st)
	}

	box := m.theme.Sidebar
	if m.focused {
		box = m.theme.SidebarFocused
	}
	inner := max(1, m.width-box.GetHorizontalFrameSize())

	var b strings.Builder
	b.WriteString(m.theme.SidebarTitle.Render(util.PadWidth("CHATS", inner-1) + "+"))
	b.WriteString("\n\n")

	if len(st.Chats) == 0 {
		b.WriteString(m.theme.SidebarMeta.Width(inner).Render("No chats yet. Press n to create one."))
	}

	for i, c := range st.Chats {
		b.WriteString(m.renderRow(st, i, c, inner))
		b.WriteString("\n")
	}

	if m.pendingDelete != "" {
		if c, ok := st.Find(m.pendingDelete); ok {
			b.WriteString("\n")
			prompt := fmt.Sprintf("Delete %q? y/n", util.TruncateWidth(c.Title, max(1, inner-12)))
			b.WriteString(m.theme.ErrorText.Render(prompt))
		}
	}

	// lipgloss widths include padding but not borders.
	style := box.Width(max(1, m.width-box.GetHorizontalBorderSize()))
	if m.height > 0 {
		style = style.Height(max(1, m.height-box.GetVerticalBorderSize())).MaxHeight(m.height)
	}
	return style.Render(b.String())
}

func (m Model) renderRow(st chats.State, i int, c chats.ChatSummary, inner int) string {
	marker := "  "
	if c.ID == st.ActiveChatID {
		marker = "* "
	}

	if c.Editing && m.renamedID == c.ID {
		return marker + m.rename.View()
	}
	title := c.Title
	if c.ID == m.revealID && !m.reveal.Done() {
		title = m.reveal.View()
	}
	text := util.PadWidth(marker+util.TruncateWidth(title, inner-2), inner)

	style := m.theme.SidebarItem
	if c.ID == st.ActiveChatID {
		style = m.theme.SidebarItemActive
	}
	if m.focused && i == m.cursor {
		style = style.Inherit(m.theme.SidebarCursor)
	}
	return style.Render(text)
}

func (m Model) viewRail(st chats.State) string {
	var b strings.Builder
	b.WriteString(m.theme.SidebarTitle.Render(" +"))
	b.WriteString("\n\n")

	for i, c := range st.Chats {
		style := m.theme.SidebarItem
		if c.ID == st.ActiveChatID {
			style = m.theme.SidebarItemActive
		}
		if m.focused && i == m.cursor {
			style = style.Inherit(m.theme.SidebarCursor)
		}
		b.WriteString(style.Render(util.PadWidth(" "+util.FirstRune(c.Title), RailWidth-1)))
		b.WriteString("\n")
	}

	style := m.theme.SidebarRail.Width(RailWidth - 1)
	if m.height > 0 {
		style = style.Height(m.height).MaxHeight(m.height)
	}
	return style.Render(b.String())
}
