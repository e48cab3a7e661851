// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jeranaias/ragify-tui/internal/terminal"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter renders a transcript as Markdown. The terminal log is a
// single fenced block with user lines prefixed by the prompt, as on screen.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

type frontmatter struct {
	Title     string `yaml:"title"`
	ID        string `yaml:"id"`
	Created   string `yaml:"created"`
	Updated   string `yaml:"updated"`
	Messages  int    `yaml:"messages"`
	Exported  string `yaml:"exported"`
	Generator string `yaml:"generator"`
}

// Export converts a transcript to Markdown.
func (e *MarkdownExporter) Export(tr *Transcript) ([]byte, error) {
	if tr == nil {
		return nil, fmt.Errorf("transcript is nil")
	}

	var sb strings.Builder

	if e.options.IncludeMetadata {
		header, err := yaml.Marshal(frontmatter{
			Title:     tr.Chat.Title,
			ID:        tr.Chat.ID,
			Created:   tr.Chat.CreatedAt.Format(time.RFC3339),
			Updated:   tr.Chat.UpdatedAt.Format(time.RFC3339),
			Messages:  len(tr.Record.Messages),
			Exported:  e.options.now().Format(time.RFC3339),
			Generator: "ragify",
		})
		if err != nil {
			return nil, fmt.Errorf("encode frontmatter: %w", err)
		}
		sb.WriteString("---\n")
		sb.Write(header)
		sb.WriteString("---\n\n")
	}

	sb.WriteString(fmt.Sprintf("# %s\n\n", escapeMarkdown(tr.Chat.Title)))

	sb.WriteString("## Terminal\n\n")
	if len(tr.Record.Messages) == 0 {
		sb.WriteString("*No messages.*\n")
	} else {
		sb.WriteString(fenced(renderLog(tr.Record.Messages)))
	}

	if e.options.IncludeMetadata && len(tr.Record.History) > 0 {
		sb.WriteString("\n## History\n\n")
		for i, line := range tr.Record.History {
			sb.WriteString(fmt.Sprintf("%d. `%s`\n", i+1, strings.ReplaceAll(line, "`", "'")))
		}
	}

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

// Prompt prefixes user lines in rendered logs.
const Prompt = "> "

func renderLog(msgs []terminal.Message) string {
	var sb strings.Builder
	for _, m := range msgs {
		if m.Role == terminal.RoleUser {
			sb.WriteString(Prompt)
		}
		sb.WriteString(m.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// fenced wraps body in a code fence longer than any backtick run inside it.
func fenced(body string) string {
	longest, run := 0, 0
	for _, r := range body {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	fence := strings.Repeat("`", max(3, longest+1))
	return fence + "text\n" + body + fence + "\n"
}

// escapeMarkdown escapes characters that would break a heading.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	for _, ch := range []string{"#", "*", "_", "[", "]"} {
		s = strings.ReplaceAll(s, ch, "\\"+ch)
	}
	return s
}
