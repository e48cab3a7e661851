// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the root bubbletea model of the ragify TUI. It lays out
// the sidebar and the terminal pane, routes keys to whichever has focus,
// keeps the pane showing the store's active chat and applies configuration
// reloads.
//
// # Global Keys
//
//	Tab      switch focus (completes a command in the pane when possible)
//	Ctrl+B   collapse or expand the sidebar
//	Ctrl+N   new chat
//	F1       help
//	Ctrl+C   quit
package app
