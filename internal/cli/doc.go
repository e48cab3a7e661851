// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the ragify command line.
//
// Running ragify with no subcommand starts the TUI. The subcommands work on
// the same local store without opening it:
//
//	ragify chats list              list chats (active one marked with *)
//	ragify chats new [title]       create a chat and make it active
//	ragify chats rename <id> <t>   rename a chat
//	ragify chats select <id>       make a chat active
//	ragify chats delete <id>       delete a chat and its messages
//	ragify export <id>             write a transcript (md or json)
//	ragify exec <line>             run one command through the interpreter
//	ragify commands                list interpreter commands
//	ragify version                 print version information
//
// Global flags --config, --data-dir and --storage override the config file,
// and --json switches list-style output to machine-readable JSON.
package cli
