// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chats

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeranaias/ragify-tui/internal/storage"
)

// =============================================================================
// STORE
// =============================================================================

// Store holds the chat list. All methods are safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	state State

	backend  storage.Store
	logger   *zap.Logger
	reporter *storage.Reporter
	now      func() time.Time
	newID    func() string
	onDelete func(id string)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for storage failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger == nil {
			logger = zap.NewNop()
		}
		s.logger = logger
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc overrides chat id generation.
func WithIDFunc(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithOnDelete registers a hook called after a chat is deleted, so the
// caller can drop data keyed by the chat id.
func WithOnDelete(fn func(id string)) Option {
	return func(s *Store) { s.onDelete = fn }
}

// NewStore returns a Store backed by backend, holding the seed state until
// Load is called. A nil backend keeps state in memory only.
func NewStore(backend storage.Store, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		logger:  zap.NewNop(),
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reporter = storage.NewReporter(s.logger)
	s.state = s.seed()
	return s
}

func (s *Store) seed() State {
	stamp := s.now()
	return State{
		Chats: []ChatSummary{{
			ID:        s.newID(),
			Title:     WelcomeTitle,
			CreatedAt: stamp,
			UpdatedAt: stamp,
		}},
	}
}

// Load replaces the state with the persisted record. With no record the
// seed state is kept and written out so its id stays stable across runs.
// A corrupt or unreadable record is logged and the seed is kept.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backend == nil {
		return
	}

	var rec record
	err := storage.GetJSON(s.backend, RecordKey, &rec)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.persistLocked()
		return
	case err != nil:
		s.reporter.Report("load", RecordKey, err)
		return
	}

	seen := make(map[string]bool, len(rec.Chats))
	loaded := make([]ChatSummary, 0, len(rec.Chats))
	for _, c := range rec.Chats {
		if c.ID == "" || seen[c.ID] {
			s.logger.Debug("dropping duplicate chat id", zap.String("id", c.ID))
			continue
		}
		seen[c.ID] = true
		c.Editing = false
		loaded = append(loaded, c)
	}

	s.state = State{
		Chats:            loaded,
		ActiveChatID:     rec.ActiveChatID,
		SidebarCollapsed: rec.SidebarCollapsed,
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// ActiveChat returns the active chat, treating a dangling id as none.
func (s *Store) ActiveChat() (ChatSummary, bool) {
	return s.Snapshot().ActiveChat()
}

// =============================================================================
// OPERATIONS
// =============================================================================

// CreateChat prepends a new chat in editing mode, makes it active and
// returns its id. The optional title defaults to DefaultTitle.
func (s *Store) CreateChat(title ...string) string {
	t := DefaultTitle
	if len(title) > 0 {
		t = title[0]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for s.state.index(id) >= 0 {
		id = s.newID()
	}

	stamp := s.now()
	chat := ChatSummary{ID: id, Title: t, CreatedAt: stamp, UpdatedAt: stamp, Editing: true}

	next := s.state.clone()
	next.Chats = append([]ChatSummary{chat}, next.Chats...)
	next.ActiveChatID = id
	s.commitLocked(next)
	return id
}

// RenameChat sets the title of id, trimmed, or DefaultTitle if blank.
// Unknown ids are ignored.
func (s *Store) RenameChat(id, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.state.index(id)
	if i < 0 {
		return
	}
	next := s.state.clone()
	next.Chats[i].Title = normalizeTitle(title)
	next.Chats[i].UpdatedAt = s.now()
	s.commitLocked(next)
}

// DeleteChat removes id. Deleting the active chat activates the first
// remaining chat, or none.
func (s *Store) DeleteChat(id string) {
	s.mu.Lock()

	i := s.state.index(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}

	next := s.state.clone()
	next.Chats = append(next.Chats[:i:i], next.Chats[i+1:]...)
	if next.ActiveChatID == id {
		next.ActiveChatID = ""
		if len(next.Chats) > 0 {
			next.ActiveChatID = next.Chats[0].ID
		}
	}
	s.commitLocked(next)
	onDelete := s.onDelete
	s.mu.Unlock()

	if onDelete != nil {
		onDelete(id)
	}
}

// SetActiveChat selects id without checking that it exists.
func (s *Store) SetActiveChat(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	next.ActiveChatID = id
	s.commitLocked(next)
}

// ToggleSidebar flips the sidebar collapse flag.
func (s *Store) ToggleSidebar() {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	next.SidebarCollapsed = !next.SidebarCollapsed
	s.commitLocked(next)
}

// StartEditing puts id into inline-rename mode.
func (s *Store) StartEditing(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.state.index(id)
	if i < 0 {
		return
	}
	next := s.state.clone()
	next.Chats[i].Editing = true
	s.commitLocked(next)
}

// StopEditing leaves inline-rename mode for id. With commit set and a
// non-nil nextTitle the chat is renamed; with commit set UpdatedAt is
// refreshed. Without commit the title and timestamps are untouched.
func (s *Store) StopEditing(id string, commit bool, nextTitle *string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.state.index(id)
	if i < 0 {
		return
	}
	next := s.state.clone()
	c := &next.Chats[i]
	c.Editing = false
	if commit {
		if nextTitle != nil {
			c.Title = normalizeTitle(*nextTitle)
		}
		c.UpdatedAt = s.now()
	}
	s.commitLocked(next)
}

// =============================================================================
// PERSISTENCE
// =============================================================================

// commitLocked installs next and persists it. Caller holds s.mu.
func (s *Store) commitLocked(next State) {
	s.state = next
	s.persistLocked()
}

func (s *Store) persistLocked() {
	if s.backend == nil {
		return
	}
	rec := record{
		Chats:            make([]ChatSummary, len(s.state.Chats)),
		ActiveChatID:     s.state.ActiveChatID,
		SidebarCollapsed: s.state.SidebarCollapsed,
	}
	copy(rec.Chats, s.state.Chats)
	if err := storage.SetJSON(s.backend, RecordKey, rec); err != nil {
		s.reporter.Report("save", RecordKey, err)
	}
}

func normalizeTitle(title string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	return DefaultTitle
}
