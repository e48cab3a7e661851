// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/ragify-tui/internal/commands"
)

// ExecOutput is the --json payload of 'exec'.
type ExecOutput struct {
	Kind   string `json:"kind"`
	Output string `json:"output"`
	ChatID string `json:"chatId,omitempty"`
}

func newExecCommand(opts *Options) *cobra.Command {
	var chatID string

	cmd := &cobra.Command{
		Use:   "exec <line>",
		Short: "Run one line through the command interpreter",
		Long: "Run one line through the command interpreter and print the result.\n" +
			"With --chat the line is submitted to that chat as if typed in the\n" +
			"terminal pane, so it lands in the chat's log and history.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line := strings.Join(args, " ")

			var (
				res commands.Result
				ok  = true
			)
			if chatID == "" {
				res = commands.Exec(line)
			} else {
				err := withEnv(opts, func(e *env) error {
					if _, err := e.findChat(chatID); err != nil {
						return err
					}
					session := e.newSession()
					session.Switch(chatID)
					session.SetInput(line)
					res, ok = session.Submit()
					return nil
				})
				if err != nil {
					return err
				}
			}

			if !ok || res.Kind == commands.KindInvalid {
				return errors.New("nothing to run: the line is blank")
			}

			w := cmd.OutOrStdout()
			if opts.JSON {
				return NewJSONResponse("exec", ExecOutput{
					Kind:   res.Kind.String(),
					Output: res.Text,
					ChatID: chatID,
				}).Write(w)
			}
			if res.Kind == commands.KindClear {
				return nil
			}
			_, err := fmt.Fprintln(w, res.Text)
			return err
		},
	}

	cmd.Flags().StringVar(&chatID, "chat", "", "submit the line to this chat")
	return cmd
}
