// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/ragify-tui/internal/commands"
	"github.com/jeranaias/ragify-tui/internal/storage"
	"github.com/jeranaias/ragify-tui/internal/terminal"
	"github.com/jeranaias/ragify-tui/internal/ui/styles"
	"github.com/jeranaias/ragify-tui/internal/ui/typing"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	up    = tea.KeyMsg{Type: tea.KeyUp}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
)

func newTestPane(t *testing.T, opts Options) Model {
	t.Helper()
	session := terminal.NewSession(storage.NewMemoryStore())
	m := New(session, styles.NewTheme("dark"), opts)
	m.SetSize(60, 20)
	m.Switch("chat-1", "Welcome chat")
	m.Focus()
	return m
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestPane_SubmitEcho(t *testing.T) {
	m := newTestPane(t, Options{})

	m = send(m, runes("hello"))
	assert.Equal(t, "hello", m.Input())
	assert.Equal(t, "hello", m.Session().Input())

	m = send(m, enter)
	msgs := m.Session().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, terminal.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "", m.Input())
	assert.Contains(t, m.View(), "hello")
}

func TestPane_BlankEnterIsNoop(t *testing.T) {
	m := newTestPane(t, Options{})
	m = send(m, runes("   "), enter)

	assert.Empty(t, m.Session().Messages())
	assert.Equal(t, "   ", m.Input())
}

func TestPane_HistoryKeys(t *testing.T) {
	m := newTestPane(t, Options{})
	m = send(m, runes("one"), enter, runes("two"), enter)

	m = send(m, up)
	assert.Equal(t, "two", m.Input())
	m = send(m, up, up)
	assert.Equal(t, "one", m.Input())
	m = send(m, down)
	assert.Equal(t, "two", m.Input())
	m = send(m, down)
	assert.Equal(t, "", m.Input())
	assert.Equal(t, -1, m.Session().Cursor())
}

func TestPane_ClearShortcut(t *testing.T) {
	m := newTestPane(t, Options{})
	m = send(m, runes("one"), enter, runes("draft"))

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Empty(t, m.Session().Messages())
	assert.Equal(t, []string{"one"}, m.Session().History())
	assert.Equal(t, "draft", m.Input())
}

func TestPane_ClearCommand(t *testing.T) {
	m := newTestPane(t, Options{})
	m = send(m, runes("one"), enter, runes("clear"), enter)
	assert.Empty(t, m.Session().Messages())
}

func TestPane_EscCancels(t *testing.T) {
	m := newTestPane(t, Options{})
	m = send(m, runes("one"), enter, up, esc)

	assert.Equal(t, "", m.Input())
	assert.Equal(t, -1, m.Session().Cursor())
}

func TestPane_TypingAnimation(t *testing.T) {
	m := newTestPane(t, Options{TypingSpeed: time.Millisecond})
	m = send(m, runes("abc"))

	m, cmd := m.Update(enter)
	require.NotNil(t, cmd)
	assert.True(t, m.Typing())

	// Drive the animation to completion by running its ticks.
	for i := 0; i < 10 && cmd != nil; i++ {
		msg := cmd()
		m, cmd = m.Update(msg)
	}
	assert.False(t, m.Typing())
	assert.Contains(t, m.View(), "abc")
}

func TestPane_EscSkipsAnimationFirst(t *testing.T) {
	m := newTestPane(t, Options{TypingSpeed: time.Hour})
	m = send(m, runes("abc"), enter, runes("next"))
	require.True(t, m.Typing())

	m = send(m, esc)
	assert.False(t, m.Typing())
	assert.Equal(t, "next", m.Input(), "first Esc only finishes the animation")

	m = send(m, esc)
	assert.Equal(t, "", m.Input())
}

func TestPane_StaleTickIgnored(t *testing.T) {
	m := newTestPane(t, Options{TypingSpeed: time.Hour})
	m = send(m, runes("abc"), enter)

	m = send(m, typing.TickMsg{ID: -1})
	assert.True(t, m.Typing())
}

func TestPane_NoAnimationWhenDisabled(t *testing.T) {
	m := newTestPane(t, Options{})
	m, cmd := m.Update(runes("x"))
	_ = cmd
	m, cmd = m.Update(enter)
	assert.Nil(t, cmd)
	assert.False(t, m.Typing())
}

func TestPane_CopyLastOutput(t *testing.T) {
	var copied string
	m := newTestPane(t, Options{Clipboard: func(s string) error {
		copied = s
		return nil
	}})

	// Nothing to copy yet.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Nil(t, cmd)

	m = send(m, runes("help"), enter)
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	require.NotNil(t, cmd)
	m = send(m, cmd())

	assert.Equal(t, commands.HelpText, copied)
	assert.Contains(t, m.Status(), "copied")
}

func TestPane_CopyFailure(t *testing.T) {
	m := newTestPane(t, Options{Clipboard: func(string) error { return errors.New("no clipboard") }})
	m = send(m, runes("x"), enter)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	require.NotNil(t, cmd)
	m = send(m, cmd())
	assert.Contains(t, m.Status(), "no clipboard")
}

func TestPane_TabCompletesCommand(t *testing.T) {
	m := newTestPane(t, Options{})
	m = send(m, runes("he"))
	assert.True(t, m.CanComplete())

	m = send(m, tab)
	assert.Equal(t, "help", m.Input())
	assert.Equal(t, "help", m.Session().Input())
	assert.False(t, m.CanComplete())

	m = send(m, enter)
	assert.Equal(t, commands.HelpText, m.Session().Messages()[1].Text)
}

func TestPane_IgnoresKeysWhenBlurred(t *testing.T) {
	m := newTestPane(t, Options{})
	m.Blur()

	m = send(m, runes("x"), enter)
	assert.Empty(t, m.Session().Messages())
	assert.Equal(t, "", m.Input())
}

func TestPane_SwitchResetsInput(t *testing.T) {
	m := newTestPane(t, Options{})
	m = send(m, runes("one"), enter, runes("draft"))

	m.Switch("chat-2", "Other")
	assert.Equal(t, "", m.Input())
	assert.Empty(t, m.Session().Messages())
	assert.Contains(t, m.View(), "Other")

	m.Switch("chat-1", "Welcome chat")
	assert.Len(t, m.Session().Messages(), 2)
}

func TestPane_NoChatSelected(t *testing.T) {
	m := newTestPane(t, Options{ShowHints: true})
	m.Switch("", "")

	m = send(m, runes("x"), enter)
	assert.Empty(t, m.Session().Messages())
	assert.Contains(t, m.View(), "No chat selected")
}

func TestPane_EmptyHint(t *testing.T) {
	m := newTestPane(t, Options{ShowHints: true})
	assert.Contains(t, m.View(), "Ctrl+L")

	m.SetShowHints(false)
	assert.NotContains(t, m.View(), "Ctrl+L")
}
