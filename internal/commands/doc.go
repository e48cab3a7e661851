// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the terminal pane's command interpreter.
//
// The interpreter is a pure function from one input line to a Result. It
// never fails and has no side effects; applying a Result to the message log
// is the caller's job.
//
// # Built-in Commands
//
//   - help: Show the help text
//   - clear: Clear the screen
//
// Anything else is echoed back, trimmed.
//
// # Usage
//
//	res := commands.Exec(line)
//	switch res.Kind {
//	case commands.KindClear:
//	    // empty the message log
//	case commands.KindOutput:
//	    // append res.Text as an assistant message
//	}
package commands
