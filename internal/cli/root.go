// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/spf13/cobra"
)

// Version information, set at build time from main.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Options are the global flags shared by every command.
type Options struct {
	ConfigPath string
	DataDir    string
	Storage    string
	JSON       bool
}

// NewRootCommand builds the ragify command tree.
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	root := &cobra.Command{
		Use:   "ragify",
		Short: "A terminal for your chats",
		Long: "ragify is a local terminal UI with a chat list and a small command\n" +
			"terminal. Everything is stored on this machine.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.ragify/config.toml or config.yaml)")
	flags.StringVar(&opts.DataDir, "data-dir", "", "directory for stored chats")
	flags.StringVar(&opts.Storage, "storage", "", "storage backend: file, sqlite or memory")
	flags.BoolVar(&opts.JSON, "json", false, "machine-readable output where supported")

	root.AddCommand(
		newChatsCommand(opts),
		newExportCommand(opts),
		newExecCommand(opts),
		newCommandsCommand(opts),
		newVersionCommand(opts),
	)
	return root
}
