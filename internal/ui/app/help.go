// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/ragify-tui/internal/commands"
)

// helpMarkdown builds the help overlay source.
func (m Model) helpMarkdown() string {
	var b strings.Builder
	b.WriteString("# ragify\n\n")
	b.WriteString("A terminal for your chats. Everything stays on this machine.\n\n")

	b.WriteString("## Commands\n\n")
	b.WriteString("| Command | Description | Shortcut |\n|---|---|---|\n")
	for _, c := range commands.Builtins() {
		shortcut := c.Shortcut
		if shortcut == "" {
			shortcut = "-"
		}
		fmt.Fprintf(&b, "| `%s` | %s | %s |\n", c.Name, c.Description, shortcut)
	}
	b.WriteString("\nAnything else is echoed back.\n\n")

	writeKeys := func(title string, groups [][]key.Binding) {
		fmt.Fprintf(&b, "## %s\n\n", title)
		for _, group := range groups {
			for _, k := range group {
				h := k.Help()
				fmt.Fprintf(&b, "- **%s** %s\n", h.Key, h.Desc)
			}
		}
		b.WriteString("\n")
	}
	writeKeys("Terminal", m.pane.Keys().FullHelp())
	writeKeys("Sidebar", m.sidebar.Keys().FullHelp())
	writeKeys("Anywhere", statusKeys{global: m.keys}.FullHelp()[1:])

	b.WriteString("Press **Esc** or **F1** to close.\n")
	return b.String()
}

// renderHelp renders the help overlay with glamour, falling back to the
// raw markdown if rendering fails.
func (m Model) renderHelp(width int) string {
	src := m.helpMarkdown()
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.theme.GlamourStyle()),
		glamour.WithWordWrap(max(20, width)),
	)
	if err != nil {
		return src
	}
	out, err := r.Render(src)
	if err != nil {
		return src
	}
	return strings.TrimRight(out, "\n")
}
