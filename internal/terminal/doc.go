// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package terminal holds the per-chat message log and command history that
// back the terminal pane.
//
// A Session tracks one chat at a time. Switching chats loads that chat's
// record from storage; submitting a line appends to the log, runs it
// through the command interpreter and writes the record back under
// RecordKey(chatID).
//
// # History Navigation
//
// The history cursor is -1 when not navigating. Up moves toward older
// entries and stops at the oldest; Down moves toward newer entries and,
// past the newest, leaves navigation with an empty input line.
//
// Session is not safe for concurrent use. The TUI drives it from the
// bubbletea update loop.
package terminal
