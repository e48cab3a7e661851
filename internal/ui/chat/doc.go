// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the terminal pane of the ragify TUI.

The pane renders the active chat's message log in a scrolling viewport with
a prompt line underneath. Keys are routed onto a terminal.Session, which owns
the log, the command history and persistence; this package only draws it
and animates new output.

# Key Bindings

	Enter     submit the input line
	Up/Down   walk the command history
	Ctrl+L    clear the screen
	Esc       cancel the input line
	Ctrl+Y    copy the last output to the clipboard
	PgUp/PgDn scroll

# Typing Animation

The newest assistant line is revealed one character at a time at the
configured speed. Older lines, including everything loaded when switching
chats, are drawn in full.
*/
package chat
