// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for ragify.
//
// Supports TOML and YAML configuration files, with sensible defaults,
// environment variable overrides, validation and live reload.
//
// # Key Types
//
//   - Config: Main configuration structure
//   - StorageConfig: Persistence backend and data directory
//   - LogConfig: Log file, level and rotation
//   - UIConfig: Theme, typing animation and layout settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (RAGIFY_*)
//   - ~/.ragify/config.toml
//   - ~/.ragify/config.yaml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//
// Reload on change:
//
//	go config.Watch(ctx, path, func(cfg *config.Config, err error) { ... })
package config
