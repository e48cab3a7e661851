// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chats

import (
	"slices"
	"time"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// RecordKey is the storage key of the persisted chat list.
	RecordKey = "ragify-chats"

	// DefaultTitle replaces empty or whitespace-only titles.
	DefaultTitle = "Untitled"

	// WelcomeTitle is the title of the chat seeded on first run.
	WelcomeTitle = "Welcome chat"
)

// =============================================================================
// TYPES
// =============================================================================

// ChatSummary is one entry in the chat list.
type ChatSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Editing marks the chat whose title is being edited inline.
	// It is never persisted.
	Editing bool `json:"-"`
}

// State is an immutable snapshot of the chat store.
type State struct {
	// Chats is ordered newest-created first.
	Chats []ChatSummary

	// ActiveChatID is "" when no chat is selected. It may name a chat that
	// no longer exists; see ActiveChat.
	ActiveChatID string

	SidebarCollapsed bool
}

// Find returns the chat with the given id.
func (s State) Find(id string) (ChatSummary, bool) {
	if i := s.index(id); i >= 0 {
		return s.Chats[i], true
	}
	return ChatSummary{}, false
}

// ActiveChat resolves ActiveChatID. A dangling id resolves to no chat.
func (s State) ActiveChat() (ChatSummary, bool) {
	if s.ActiveChatID == "" {
		return ChatSummary{}, false
	}
	return s.Find(s.ActiveChatID)
}

// Editing returns the chat currently being renamed, if any.
func (s State) Editing() (ChatSummary, bool) {
	for _, c := range s.Chats {
		if c.Editing {
			return c, true
		}
	}
	return ChatSummary{}, false
}

func (s State) index(id string) int {
	return slices.IndexFunc(s.Chats, func(c ChatSummary) bool { return c.ID == id })
}

// clone copies the chat slice so callers cannot reach the store's backing array.
func (s State) clone() State {
	s.Chats = slices.Clone(s.Chats)
	return s
}

// record is the persisted shape of State.
type record struct {
	Chats            []ChatSummary `json:"chats"`
	ActiveChatID     string        `json:"activeChatId,omitempty"`
	SidebarCollapsed bool          `json:"sidebarCollapsed"`
}
