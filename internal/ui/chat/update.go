// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragify-tui/internal/commands"
	"github.com/jeranaias/ragify-tui/internal/ui/typing"
)

// Update handles key input while focused, plus animation and clipboard
// messages at any time.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case typing.TickMsg:
		if msg.ID != m.typer.ID() {
			return m, nil
		}
		var cmd tea.Cmd
		m.typer, cmd = m.typer.Update(msg)
		m.refresh()
		m.viewport.GotoBottom()
		return m, cmd

	case typing.DoneMsg:
		if msg.ID == m.typer.ID() {
			m.typingID = ""
			m.refresh()
		}
		return m, nil

	case CopiedMsg:
		if msg.Err != nil {
			m.status = m.theme.RenderError("copy failed: " + msg.Err.Error())
		} else {
			m.status = m.theme.RenderNotice("copied to clipboard")
		}
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(msg)
	}

	if m.focused {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.HistoryUp):
		m.session.HistoryUp()
		m.syncInput()
		return m, nil

	case key.Matches(msg, m.keys.HistoryDown):
		m.session.HistoryDown()
		m.syncInput()
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.session.ClearScreen()
		m.typingID = ""
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		if m.Typing() {
			m.typer = m.typer.Skip()
			m.typingID = ""
			m.refresh()
			return m, nil
		}
		m.session.Cancel()
		m.syncInput()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyLast()

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Complete):
		if name, ok := completion(m.input.Value()); ok {
			m.input.SetValue(name)
			m.input.CursorEnd()
			m.session.SetInput(name)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.session.Input() {
		m.session.SetInput(m.input.Value())
	}
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	// A pending reveal is finished before new output arrives.
	m.typer = m.typer.Skip()
	m.typingID = ""

	res, ok := m.session.Submit()
	if !ok {
		return m, nil
	}
	m.syncInput()

	var cmd tea.Cmd
	if res.Kind == commands.KindOutput {
		msgs := m.session.Messages()
		last := msgs[len(msgs)-1]
		m.typer = typing.New(last.Text, m.typingSpeed)
		if !m.typer.Done() {
			m.typingID = last.ID
			cmd = m.typer.Init()
		}
	}

	m.refresh()
	m.viewport.GotoBottom()
	return m, cmd
}

func (m Model) copyLast() tea.Cmd {
	text, ok := m.session.LastAssistant()
	if !ok {
		return nil
	}
	copyFn := m.copyFn
	return func() tea.Msg {
		return CopiedMsg{Text: text, Err: copyFn(text)}
	}
}

// syncInput mirrors the session's input line into the text field.
func (m *Model) syncInput() {
	m.input.SetValue(m.session.Input())
	m.input.CursorEnd()
}

// completion returns the command the current input completes to.
func completion(input string) (string, bool) {
	if strings.TrimSpace(input) == "" {
		return "", false
	}
	return commands.CompleteUnique(input)
}
