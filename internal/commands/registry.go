// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import "sort"

// Built-in command names.
const (
	CmdHelp  = "help"
	CmdClear = "clear"
)

// Builtin describes a command the interpreter recognises.
type Builtin struct {
	// Name is what the user types (e.g., "help")
	Name string `json:"name"`

	// Description is shown in help listings
	Description string `json:"description"`

	// Shortcut is an equivalent key binding, if any
	Shortcut string `json:"shortcut,omitempty"`
}

var builtins = []Builtin{
	{Name: CmdClear, Description: "Clear the screen", Shortcut: "ctrl+l"},
	{Name: CmdHelp, Description: "Show this help"},
}

// Builtins returns the recognised commands sorted by name.
func Builtins() []Builtin {
	out := make([]Builtin, len(builtins))
	copy(out, builtins)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the builtin named exactly name.
func Lookup(name string) (Builtin, bool) {
	for _, b := range builtins {
		if b.Name == name {
			return b, true
		}
	}
	return Builtin{}, false
}
