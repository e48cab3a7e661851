// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import "strings"

// =============================================================================
// RESULT
// =============================================================================

// Kind classifies the outcome of executing a line.
type Kind int

const (
	// KindInvalid is returned for blank input. Callers filter blank lines
	// before executing, so it never reaches the message log.
	KindInvalid Kind = iota

	// KindOutput carries text to show as an assistant message.
	KindOutput

	// KindClear asks the caller to empty the message log.
	KindClear
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindOutput:
		return "output"
	case KindClear:
		return "clear"
	default:
		return "invalid"
	}
}

// Result is the outcome of executing one input line.
type Result struct {
	Kind Kind
	// Text is set only for KindOutput.
	Text string
}

// HelpText is the output of the help command.
const HelpText = "Commands:\n" +
	"  help       Show this help\n" +
	"  clear      Clear the screen (or press Ctrl+L)\n" +
	"\n" +
	"Anything else will just echo back for now."

// =============================================================================
// EXEC
// =============================================================================

// Exec interprets a single line. Matching is exact and case-sensitive after
// trimming surrounding whitespace, so "Help" and "clear now" are echoed.
func Exec(line string) Result {
	cmd := strings.TrimSpace(line)

	switch cmd {
	case "":
		return Result{Kind: KindInvalid}
	case CmdClear:
		return Result{Kind: KindClear}
	case CmdHelp:
		return Result{Kind: KindOutput, Text: HelpText}
	default:
		return Result{Kind: KindOutput, Text: cmd}
	}
}
