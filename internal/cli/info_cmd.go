// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jeranaias/ragify-tui/internal/commands"
	"github.com/jeranaias/ragify-tui/internal/util"
)

// VersionOutput is the --json payload of 'version'.
type VersionOutput struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

func newVersionCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := VersionOutput{
				Version:   Version,
				GitCommit: GitCommit,
				BuildDate: BuildDate,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			w := cmd.OutOrStdout()
			if opts.JSON {
				return NewJSONResponse("version", out).Write(w)
			}
			s := newStyles(w)
			fmt.Fprintln(w, s.Title.Render("ragify "+out.Version))
			fmt.Fprintln(w, s.Label.Render(util.PadWidth("commit", 8))+s.Value.Render(out.GitCommit))
			fmt.Fprintln(w, s.Label.Render(util.PadWidth("built", 8))+s.Value.Render(out.BuildDate))
			fmt.Fprintln(w, s.Label.Render(util.PadWidth("go", 8))+s.Value.Render(out.GoVersion+" "+out.Platform))
			return nil
		},
	}
}

func newCommandsCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the terminal's commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			builtins := commands.Builtins()
			w := cmd.OutOrStdout()
			if opts.JSON {
				return NewJSONResponse("commands", builtins).Write(w)
			}
			s := newStyles(w)
			for _, b := range builtins {
				line := s.Title.Render(util.PadWidth(b.Name, 8)) + " " + s.Value.Render(b.Description)
				if b.Shortcut != "" {
					line += " " + s.Dim.Render("("+b.Shortcut+")")
				}
				fmt.Fprintln(w, line)
			}
			fmt.Fprintln(w, s.Dim.Render("Anything else is echoed back."))
			return nil
		},
	}
}
