// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/jeranaias/ragify-tui/internal/config"
	"github.com/jeranaias/ragify-tui/internal/ui/app"
)

// ErrNotTerminal is returned when the TUI is started without a terminal.
var ErrNotTerminal = errors.New("ragify needs an interactive terminal; see 'ragify --help' for commands that do not")

// runTUI starts the interactive interface.
func runTUI(cmd *cobra.Command, opts *Options) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}

	e, err := openEnv(opts)
	if err != nil {
		return err
	}
	defer e.Close()

	model := app.New(app.Deps{
		Config:  e.cfg,
		Chats:   e.chats,
		Session: e.newSession(),
		Logger:  e.logger,
	})

	progOpts := []tea.ProgramOption{tea.WithMouseCellMotion(), tea.WithContext(cmd.Context())}
	if e.cfg.UI.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(model, progOpts...)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	watchConfig(ctx, e, p)

	e.logger.Info("tui started", zap.String("version", Version))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	e.logger.Info("tui stopped")
	return err
}

// watchConfig forwards config file changes to the running program.
func watchConfig(ctx context.Context, e *env, p *tea.Program) {
	if e.configPath == "" {
		return
	}
	go func() {
		err := config.Watch(ctx, e.configPath, func(cfg *config.Config, err error) {
			p.Send(app.ConfigReloadedMsg{Cfg: cfg, Err: err})
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			e.logger.Warn("config watch stopped", zap.Error(err))
		}
	}()
}
