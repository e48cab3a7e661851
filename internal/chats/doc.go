// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chats owns the list of chat summaries, the active chat and the
// sidebar collapse flag.
//
// Every operation replaces the current State with a new one and then writes
// the persisted subset to storage under RecordKey. Storage failures are
// logged and never surface to callers; the in-memory state stays
// authoritative for the session.
//
// # Usage
//
//	store := chats.NewStore(backend, chats.WithLogger(logger))
//	store.Load()
//	id := store.CreateChat()
//	store.StopEditing(id, true, &title)
//	st := store.Snapshot()
package chats
