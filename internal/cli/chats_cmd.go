// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/ragify-tui/internal/chats"
	"github.com/jeranaias/ragify-tui/internal/util"
)

// ChatInfo is one chat in list output.
type ChatInfo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ChatListOutput is the --json payload of 'chats list'.
type ChatListOutput struct {
	Chats []ChatInfo `json:"chats"`
	Count int        `json:"count"`
}

func newChatsCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chats",
		Short: "Manage chats",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List chats",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withEnv(opts, func(e *env) error {
					return listChats(cmd.OutOrStdout(), e.chats.Snapshot(), opts.JSON)
				})
			},
		},
		&cobra.Command{
			Use:   "new [title]",
			Short: "Create a chat and make it active",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withEnv(opts, func(e *env) error {
					title := chats.DefaultTitle
					if len(args) > 0 {
						title = args[0]
					}
					id := e.chats.CreateChat(title)
					e.chats.StopEditing(id, true, &title)
					c, _ := e.chats.Snapshot().Find(id)
					return report(cmd.OutOrStdout(), opts, "chats new", toInfo(c, true),
						fmt.Sprintf("Created %q (%s)", c.Title, c.ID))
				})
			},
		},
		&cobra.Command{
			Use:   "rename <id> <title>",
			Short: "Rename a chat",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withEnv(opts, func(e *env) error {
					if _, err := e.findChat(args[0]); err != nil {
						return err
					}
					e.chats.RenameChat(args[0], strings.Join(args[1:], " "))
					st := e.chats.Snapshot()
					c, _ := st.Find(args[0])
					return report(cmd.OutOrStdout(), opts, "chats rename", toInfo(c, c.ID == st.ActiveChatID),
						fmt.Sprintf("Renamed %s to %q", c.ID, c.Title))
				})
			},
		},
		&cobra.Command{
			Use:   "select <id>",
			Short: "Make a chat active",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withEnv(opts, func(e *env) error {
					c, err := e.findChat(args[0])
					if err != nil {
						return err
					}
					e.chats.SetActiveChat(c.ID)
					return report(cmd.OutOrStdout(), opts, "chats select", toInfo(c, true),
						fmt.Sprintf("Active chat is now %q", c.Title))
				})
			},
		},
		&cobra.Command{
			Use:     "delete <id>",
			Aliases: []string{"rm"},
			Short:   "Delete a chat and its messages",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withEnv(opts, func(e *env) error {
					c, err := e.findChat(args[0])
					if err != nil {
						return err
					}
					e.chats.DeleteChat(c.ID)
					return report(cmd.OutOrStdout(), opts, "chats delete", toInfo(c, false),
						fmt.Sprintf("Deleted %q", c.Title))
				})
			},
		},
	)
	return cmd
}

// withEnv opens the environment, runs fn and closes it again.
func withEnv(opts *Options, fn func(e *env) error) error {
	e, err := openEnv(opts)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(e)
}

// report prints either the JSON envelope with data or a one-line message.
func report(w io.Writer, opts *Options, command string, data any, message string) error {
	if opts.JSON {
		return NewJSONResponse(command, data).Write(w)
	}
	s := newStyles(w)
	_, err := fmt.Fprintln(w, s.Success.Render("[OK]")+" "+message)
	return err
}

func toInfo(c chats.ChatSummary, active bool) ChatInfo {
	return ChatInfo{
		ID:        c.ID,
		Title:     c.Title,
		Active:    active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// listChats writes the chat list. A terminal gets an aligned, styled table;
// anything else gets tab-separated lines for scripts.
func listChats(w io.Writer, st chats.State, asJSON bool) error {
	out := ChatListOutput{Chats: make([]ChatInfo, 0, len(st.Chats)), Count: len(st.Chats)}
	for _, c := range st.Chats {
		out.Chats = append(out.Chats, toInfo(c, c.ID == st.ActiveChatID))
	}

	if asJSON {
		return NewJSONResponse("chats list", out).Write(w)
	}

	if !isTerminal(w) {
		for _, c := range out.Chats {
			active := ""
			if c.Active {
				active = "*"
			}
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				c.ID, c.Title, c.UpdatedAt.Format(time.RFC3339), active); err != nil {
				return err
			}
		}
		return nil
	}

	s := newStyles(w)
	if len(out.Chats) == 0 {
		fmt.Fprintln(w, s.Dim.Render("No chats. Create one with 'ragify chats new'."))
		return nil
	}

	idWidth := len("ID")
	for _, c := range out.Chats {
		idWidth = max(idWidth, len(c.ID))
	}
	const titleWidth = 40

	fmt.Fprintln(w, s.Title.Render(fmt.Sprintf("Chats (%d)", out.Count)))
	fmt.Fprintln(w, s.Label.Render("  "+util.PadWidth("ID", idWidth)+"  "+util.PadWidth("TITLE", titleWidth)+"  UPDATED"))
	for _, c := range out.Chats {
		marker, titleStyle := "  ", s.Value
		if c.Active {
			marker, titleStyle = s.Active.Render("*")+" ", s.Active
		}
		title := util.PadWidth(util.TruncateWidth(c.Title, titleWidth), titleWidth)
		if _, err := fmt.Fprintf(w, "%s%s  %s  %s\n", marker,
			s.Dim.Render(util.PadWidth(c.ID, idWidth)), titleStyle.Render(title),
			c.UpdatedAt.Local().Format("2006-01-02 15:04")); err != nil {
			return err
		}
	}
	return nil
}
