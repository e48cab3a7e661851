// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis is appended by TruncateWidth when it cuts a string.
const Ellipsis = "..."

// TruncateWidth shortens s to at most maxWidth terminal cells, appending
// Ellipsis when something was cut. Newlines are flattened to spaces first so
// a title never breaks a list row.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", " ")
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= runewidth.StringWidth(Ellipsis) {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// PadWidth right-pads s with spaces up to width cells.
func PadWidth(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// FirstRune returns the first character of s, or "" for an empty string.
func FirstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
