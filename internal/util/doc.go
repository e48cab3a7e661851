// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the ragify packages.
//
// # Key Functions
//
// Files:
//   - AtomicWriteFile: crash-safe write via temp file, fsync and rename
//
// Strings:
//   - TruncateWidth: truncate to a terminal display width (CJK aware)
//   - FirstRune: first character of a title, for the collapsed sidebar
//
// # Usage
//
//	err := util.AtomicWriteFile(path, data, 0600)
//	label := util.TruncateWidth(title, 24)
package util
