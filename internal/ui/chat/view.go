// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragify-tui/internal/terminal"
	"github.com/jeranaias/ragify-tui/internal/util"
)

// PromptSymbol precedes user lines and the input line.
const PromptSymbol = ">"

// View renders the pane.
func (m Model) View() string {
	box := m.theme.Pane
	if m.focused {
		box = m.theme.PaneFocused
	}
	inner := max(1, m.width-box.GetHorizontalFrameSize())

	var b strings.Builder
	b.WriteString(m.renderHeader(inner))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderPrompt())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	style := box
	if m.width > 0 {
		style = style.Width(max(1, m.width-box.GetHorizontalBorderSize()))
	}
	if m.height > 0 {
		style = style.Height(max(1, m.height-box.GetVerticalBorderSize())).MaxHeight(m.height)
	}
	return style.Render(b.String())
}

func (m Model) renderHeader(width int) string {
	header := "TERMINAL"
	if m.session.ChatID() != "" && m.title != "" {
		header += "  " + util.TruncateWidth(m.title, max(1, width-len(header)-2))
	}
	return m.theme.PaneTitle.Render(header)
}

func (m Model) renderPrompt() string {
	return m.theme.Prompt.Render(PromptSymbol+" ") + m.input.View()
}

func (m Model) renderFooter() string {
	if m.status != "" {
		return m.status
	}
	if m.session.ChatID() == "" {
		return m.theme.Hint.Render("No chat selected. Pick one in the sidebar or press Ctrl+N.")
	}
	if m.showHints && len(m.session.Messages()) == 0 && m.input.Value() == "" {
		return m.theme.EmptyState.Render("Type and press Enter. Clear with Ctrl+L.")
	}
	return ""
}

// refresh re-renders the message log into the viewport.
func (m *Model) refresh() {
	if m.theme == nil {
		return
	}
	width := max(1, m.viewport.Width)
	msgs := m.session.Messages()

	lines := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		lines = append(lines, m.renderMessage(msg, width))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func (m Model) renderMessage(msg terminal.Message, width int) string {
	if msg.Role == terminal.RoleUser {
		prompt := m.theme.Prompt.Render(PromptSymbol + " ")
		body := m.theme.UserLine.Width(max(1, width-2)).Render(msg.Text)
		return lipgloss.JoinHorizontal(lipgloss.Top, prompt, body)
	}

	text := msg.Text
	if msg.ID == m.typingID {
		text = m.typer.View()
	}
	return m.theme.AssistantLine.Width(width).Render(text)
}
