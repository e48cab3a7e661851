// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jeranaias/ragify-tui/internal/config"
)

// =============================================================================
// STORE INTERFACE
// =============================================================================

// Store is a synchronous key-value store of opaque records.
type Store interface {
	// Get returns the record stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)

	// Set replaces the record stored under key.
	Set(key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// Keys lists the stored keys starting with prefix, sorted.
	Keys(prefix string) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrNotFound is returned by Get when the key has no record.
// Use errors.Is(err, ErrNotFound) to check for it.
var ErrNotFound = errors.New("storage: record not found")

// Error wraps a backend failure with the operation and key involved.
type Error struct {
	Op  string
	Key string
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage: %s %q: %v", e.Op, e.Key, e.Err)
}

// Unwrap exposes the backend error to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// =============================================================================
// JSON HELPERS
// =============================================================================

// GetJSON loads the record under key and decodes it into v.
func GetJSON(s Store, key string, v any) error {
	data, err := s.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &Error{Op: "decode", Key: key, Err: err}
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &Error{Op: "encode", Key: key, Err: err}
	}
	return s.Set(key, data)
}

// =============================================================================
// BACKEND SELECTION
// =============================================================================

// Backend names accepted in the storage configuration.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open creates the store selected by cfg.Backend rooted at cfg.DataDir.
func Open(cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case BackendFile, "":
		return NewFileStore(filepath.Join(cfg.DataDir, "records"))
	case BackendSQLite:
		return NewSQLiteStore(filepath.Join(cfg.DataDir, "ragify.db"))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want file, sqlite or memory)", cfg.Backend)
	}
}
