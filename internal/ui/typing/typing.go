// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package typing reveals a string one character at a time, like a terminal
// printing slowly, with a trailing cursor while it runs.
package typing

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Cursor is drawn after the revealed text while typing.
const Cursor = "_"

var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}

// TickMsg advances the animation with the matching ID.
type TickMsg struct {
	ID int
}

// DoneMsg is sent once when an animation finishes revealing its text.
type DoneMsg struct {
	ID int
}

// Model is a single typing animation.
type Model struct {
	id       int
	text     []rune
	shown    int
	interval time.Duration
}

// New creates an animation for text. A non-positive interval shows the
// whole text at once.
func New(text string, interval time.Duration) Model {
	m := Model{
		id:       nextID(),
		text:     []rune(text),
		interval: interval,
	}
	if interval <= 0 {
		m.shown = len(m.text)
	}
	return m
}

// ID identifies this animation's messages.
func (m Model) ID() int { return m.id }

// Done reports whether the whole text is visible.
func (m Model) Done() bool { return m.shown >= len(m.text) }

// Init starts the animation.
func (m Model) Init() tea.Cmd {
	if m.Done() {
		return nil
	}
	return m.tick()
}

// Update advances on its own TickMsg and ignores everything else.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != m.id || m.Done() {
		return m, nil
	}

	m.shown++
	if m.Done() {
		id := m.id
		return m, func() tea.Msg { return DoneMsg{ID: id} }
	}
	return m, m.tick()
}

// Skip reveals the rest of the text immediately.
func (m Model) Skip() Model {
	m.shown = len(m.text)
	return m
}

// View renders the revealed prefix, with the cursor while typing.
func (m Model) View() string {
	if m.Done() {
		return string(m.text)
	}
	return string(m.text[:m.shown]) + Cursor
}

func (m Model) tick() tea.Cmd {
	id := m.id
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return TickMsg{ID: id}
	})
}
