// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/ragify-tui/internal/chats"
	"github.com/jeranaias/ragify-tui/internal/config"
	"github.com/jeranaias/ragify-tui/internal/logging"
	"github.com/jeranaias/ragify-tui/internal/storage"
	"github.com/jeranaias/ragify-tui/internal/terminal"
)

// env is everything a command needs: resolved config, logger, the open
// store and the loaded chat list.
type env struct {
	cfg        *config.Config
	configPath string
	logger     *zap.Logger
	backend    storage.Store
	chats      *chats.Store
}

// loadConfig resolves the configuration from the config file, environment
// and global flags, in that order of precedence (flags win).
func loadConfig(opts *Options) (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if opts.ConfigPath != "" {
		path = opts.ConfigPath
		cfg, err = config.LoadFromPath(path)
	} else {
		path = config.Path()
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}

	if opts.DataDir != "" {
		cfg.Storage.DataDir = opts.DataDir
	}
	if opts.Storage != "" {
		cfg.Storage.Backend = strings.ToLower(opts.Storage)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid config: %w", err)
	}
	return cfg, path, nil
}

// openEnv loads config, starts logging and opens the store.
func openEnv(opts *Options) (*env, error) {
	cfg, path, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to start logging: %w", err)
	}

	backend, err := storage.Open(cfg.Storage)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	e := &env{
		cfg:        cfg,
		configPath: path,
		logger:     logger,
		backend:    backend,
	}
	e.chats = chats.NewStore(backend,
		chats.WithLogger(logger),
		chats.WithOnDelete(e.deleteMessages),
	)
	e.chats.Load()

	logger.Debug("environment ready",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("data_dir", cfg.Storage.DataDir),
		zap.String("config", path))
	return e, nil
}

// deleteMessages removes a deleted chat's message record.
func (e *env) deleteMessages(chatID string) {
	if err := terminal.DeleteRecord(e.backend, chatID); err != nil {
		e.logger.Warn("failed to delete chat messages",
			zap.String("chat_id", chatID), zap.Error(err))
	}
}

// newSession opens a terminal session over the env's store.
func (e *env) newSession() *terminal.Session {
	return terminal.NewSession(e.backend, terminal.WithLogger(e.logger))
}

// findChat returns the chat with id or a not-found error.
func (e *env) findChat(id string) (chats.ChatSummary, error) {
	c, ok := e.chats.Snapshot().Find(id)
	if !ok {
		return chats.ChatSummary{}, fmt.Errorf("chat %q not found (see 'ragify chats list')", id)
	}
	return c, nil
}

func (e *env) Close() error {
	_ = e.logger.Sync()
	return e.backend.Close()
}
