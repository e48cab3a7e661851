// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import "strings"

// =============================================================================
// COMPLETION
// =============================================================================

// Complete returns the builtin names that start with the given partial
// input, in name order. Leading whitespace is ignored; input containing an
// inner space has nothing to complete.
func Complete(partial string) []string {
	partial = strings.TrimLeft(partial, " \t")
	if partial == "" || strings.ContainsAny(partial, " \t") {
		return nil
	}

	var matches []string
	for _, b := range Builtins() {
		if strings.HasPrefix(b.Name, partial) && b.Name != partial {
			matches = append(matches, b.Name)
		}
	}
	return matches
}

// CompleteUnique returns the single completion for partial, if exactly one
// builtin matches.
func CompleteUnique(partial string) (string, bool) {
	matches := Complete(partial)
	if len(matches) != 1 {
		return "", false
	}
	return matches[0], true
}
