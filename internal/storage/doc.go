// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the key-value persistence used by ragify.
//
// Every durable record (the chat list, each chat's message log) is one JSON
// document stored under one key. The backend is swappable behind the Store
// interface.
//
// # Key Types
//
//   - Store: Get/Set/Delete/Keys over opaque byte records
//   - FileStore: one JSON file per key, written atomically
//   - SQLiteStore: a single kv table in a SQLite database
//   - MemoryStore: process-local map, for tests and --storage memory
//
// # Usage
//
//	store, err := storage.Open(cfg.Storage)
//	defer store.Close()
//
//	var rec chatsRecord
//	err = storage.GetJSON(store, "ragify-chats", &rec)
//	if errors.Is(err, storage.ErrNotFound) {
//	    // first run
//	}
//
// # Storage Location
//
// File and SQLite backends live under ~/.ragify/data/ unless configured.
package storage
