// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeranaias/ragify-tui/internal/commands"
	"github.com/jeranaias/ragify-tui/internal/storage"
)

// =============================================================================
// SESSION
// =============================================================================

// Session is the terminal state of the active chat.
type Session struct {
	backend  storage.Store
	logger   *zap.Logger
	reporter *storage.Reporter
	newID    func() string

	chatID   string
	messages []Message
	history  []string
	input    string
	cursor   int
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for storage failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger == nil {
			logger = zap.NewNop()
		}
		s.logger = logger
	}
}

// WithIDFunc overrides message id generation.
func WithIDFunc(newID func() string) Option {
	return func(s *Session) { s.newID = newID }
}

// NewSession returns a Session with no chat selected. A nil backend keeps
// everything in memory.
func NewSession(backend storage.Store, opts ...Option) *Session {
	s := &Session{
		backend: backend,
		logger:  zap.NewNop(),
		newID:   uuid.NewString,
		cursor:  -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reporter = storage.NewReporter(s.logger)
	return s
}

// =============================================================================
// ACCESSORS
// =============================================================================

// ChatID returns the chat this session shows, or "" for none.
func (s *Session) ChatID() string { return s.chatID }

// Messages returns a copy of the message log.
func (s *Session) Messages() []Message { return slices.Clone(s.messages) }

// History returns a copy of the submitted lines, oldest first.
func (s *Session) History() []string { return slices.Clone(s.history) }

// Input returns the uncommitted input line.
func (s *Session) Input() string { return s.input }

// Cursor returns the history index being shown, or -1 when not navigating.
func (s *Session) Cursor() int { return s.cursor }

// Navigating reports whether the input line shows a history entry.
func (s *Session) Navigating() bool { return s.cursor >= 0 }

// LastAssistant returns the text of the newest assistant message.
func (s *Session) LastAssistant() (string, bool) {
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Role == RoleAssistant {
			return s.messages[i].Text, true
		}
	}
	return "", false
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Switch makes chatID the active chat and loads its record. An empty id
// selects no chat. The input line and history cursor are always reset, even
// when switching to the chat already shown.
func (s *Session) Switch(chatID string) {
	s.chatID = chatID
	s.messages = nil
	s.history = nil
	s.input = ""
	s.cursor = -1

	if chatID == "" || s.backend == nil {
		return
	}

	rec, err := LoadRecord(s.backend, chatID)
	if err != nil {
		s.reporter.Report("load", RecordKey(chatID), err)
		return
	}
	s.messages = rec.Messages
	s.history = rec.History
}

// SetInput replaces the input line as the user types. The history cursor
// is left alone.
func (s *Session) SetInput(text string) {
	s.input = text
}

// Submit runs the input line. Blank input, or no active chat, does nothing
// and reports false. Otherwise the raw line is recorded in history (unless
// it repeats the newest entry) and appended as a user message; the
// interpreter's result either clears the log or adds an assistant message.
// The input line is emptied and the record saved.
func (s *Session) Submit() (commands.Result, bool) {
	line := s.input
	if strings.TrimSpace(line) == "" || s.chatID == "" {
		return commands.Result{}, false
	}

	if n := len(s.history); n == 0 || s.history[n-1] != line {
		s.history = append(s.history, line)
	}
	s.cursor = -1

	s.messages = append(s.messages, Message{ID: s.newID(), Role: RoleUser, Text: line})

	res := commands.Exec(line)
	switch res.Kind {
	case commands.KindClear:
		s.messages = nil
	case commands.KindOutput:
		s.messages = append(s.messages, Message{ID: s.newID(), Role: RoleAssistant, Text: res.Text})
	}

	s.input = ""
	s.save()
	return res, true
}

// HistoryUp shows the previous history entry. From outside navigation it
// jumps to the newest entry; at the oldest entry it stays put.
func (s *Session) HistoryUp() {
	if len(s.history) == 0 {
		return
	}
	if s.cursor < 0 {
		s.cursor = len(s.history) - 1
	} else {
		s.cursor = max(0, s.cursor-1)
	}
	s.input = s.history[s.cursor]
}

// HistoryDown shows the next history entry. Past the newest entry it leaves
// navigation and empties the input line. Outside navigation it does nothing.
func (s *Session) HistoryDown() {
	if len(s.history) == 0 || s.cursor < 0 {
		return
	}
	if s.cursor+1 >= len(s.history) {
		s.cursor = -1
		s.input = ""
		return
	}
	s.cursor++
	s.input = s.history[s.cursor]
}

// ClearScreen empties the message log. History is kept.
func (s *Session) ClearScreen() {
	s.messages = nil
	s.save()
}

// Cancel empties the input line and leaves history navigation.
func (s *Session) Cancel() {
	s.input = ""
	s.cursor = -1
}

// Record returns the session's current record.
func (s *Session) Record() Record {
	return Record{Messages: s.Messages(), History: s.History()}
}

func (s *Session) save() {
	if s.chatID == "" || s.backend == nil {
		return
	}
	if err := SaveRecord(s.backend, s.chatID, s.Record()); err != nil {
		s.reporter.Report("save", RecordKey(s.chatID), err)
	}
}
