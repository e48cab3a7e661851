// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/ragify-tui/internal/export"
	"github.com/jeranaias/ragify-tui/internal/terminal"
)

func newExportCommand(opts *Options) *cobra.Command {
	var (
		format   string
		outDir   string
		metadata bool
	)

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a chat transcript",
		Long: "Export a chat's terminal log and command history as Markdown or JSON.\n" +
			"Without --out the transcript is written to stdout.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(e *env) error {
				c, err := e.findChat(args[0])
				if err != nil {
					return err
				}
				rec, err := terminal.LoadRecord(e.backend, c.ID)
				if err != nil {
					return fmt.Errorf("failed to load messages for %s: %w", c.ID, err)
				}

				exportOpts := export.DefaultOptions()
				exportOpts.IncludeMetadata = metadata
				if outDir != "" {
					exportOpts.OutputDir = outDir
				}
				exporter, err := export.ByFormat(format, exportOpts)
				if err != nil {
					return err
				}

				tr := &export.Transcript{Chat: c, Record: rec}
				if outDir == "" {
					content, err := exporter.Export(tr)
					if err != nil {
						return fmt.Errorf("export failed: %w", err)
					}
					_, err = cmd.OutOrStdout().Write(content)
					return err
				}

				path, err := export.ToFile(tr, exporter, exportOpts)
				if err != nil {
					return err
				}
				return report(cmd.OutOrStdout(), opts, "export", map[string]string{"path": path},
					"Exported to "+path)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "md", "output format: md or json")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "write a file into this directory instead of stdout")
	cmd.Flags().BoolVar(&metadata, "metadata", true, "include the metadata header")
	return cmd
}
