// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders chat transcripts for use outside ragify.
//
// # Key Types
//
//   - Transcript: A chat summary with its terminal record
//   - Exporter: Format interface (Markdown, JSON)
//   - Options: Export configuration options
//
// # Usage
//
//	tr := export.Transcript{Chat: chat, Record: rec}
//	data, err := export.NewMarkdownExporter(nil).Export(&tr)
//
// Write to a directory:
//
//	path, err := export.ToFile(&tr, export.NewJSONExporter(nil), opts)
package export
