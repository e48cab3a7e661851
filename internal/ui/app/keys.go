// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines application-wide bindings.
type KeyMap struct {
	Focus         key.Binding
	ToggleSidebar key.Binding
	NewChat       key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default global bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "switch pane"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("C-b", "sidebar"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new chat"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// statusKeys joins the focused component's bindings with the global ones
// for the help bar.
type statusKeys struct {
	local  []key.Binding
	global KeyMap
}

// ShortHelp implements help.KeyMap.
func (k statusKeys) ShortHelp() []key.Binding {
	out := append([]key.Binding{}, k.local...)
	return append(out, k.global.Focus, k.global.Help, k.global.Quit)
}

// FullHelp implements help.KeyMap.
func (k statusKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.local,
		{k.global.Focus, k.global.ToggleSidebar, k.global.NewChat, k.global.Help, k.global.Quit},
	}
}
