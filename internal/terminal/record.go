// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"errors"

	"github.com/jeranaias/ragify-tui/internal/storage"
)

// Role identifies who produced a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one line in the terminal log.
type Message struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Record is the persisted state of one chat's terminal.
type Record struct {
	Messages []Message `json:"messages"`
	History  []string  `json:"history"`
}

// KeyPrefix starts every message record key.
const KeyPrefix = "ragify:chat:"

// RecordKey returns the storage key of a chat's message record.
func RecordKey(chatID string) string {
	return KeyPrefix + chatID + ":messages"
}

// LoadRecord reads the record for chatID. A chat with no record yields an
// empty Record and no error.
func LoadRecord(store storage.Store, chatID string) (Record, error) {
	var rec Record
	err := storage.GetJSON(store, RecordKey(chatID), &rec)
	if errors.Is(err, storage.ErrNotFound) {
		return Record{}, nil
	}
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// SaveRecord writes the record for chatID.
func SaveRecord(store storage.Store, chatID string, rec Record) error {
	if rec.Messages == nil {
		rec.Messages = []Message{}
	}
	if rec.History == nil {
		rec.History = []string{}
	}
	return storage.SetJSON(store, RecordKey(chatID), rec)
}

// DeleteRecord removes the record for chatID. A missing record is not an
// error.
func DeleteRecord(store storage.Store, chatID string) error {
	return store.Delete(RecordKey(chatID))
}
