// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jeranaias/ragify-tui/internal/util"
)

const recordExt = ".json"

// FileStore keeps each record in its own file under BaseDir.
//
// Keys are query-escaped into file names, so "ragify:chat:<id>:messages"
// becomes "ragify%3Achat%3A<id>%3Amessages.json" and is valid on every
// platform.
type FileStore struct {
	// BaseDir is the directory holding the record files.
	BaseDir string
}

// NewFileStore creates a file store, creating baseDir if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, &Error{Op: "open", Err: err}
	}
	return &FileStore{BaseDir: baseDir}, nil
}

// Get reads the record file for key.
func (s *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.filePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, &Error{Op: "get", Key: key, Err: err}
	}
	return data, nil
}

// Set writes the record file for key atomically with owner-only permissions.
func (s *FileStore) Set(key string, value []byte) error {
	if err := util.AtomicWriteFile(s.filePath(key), value, 0600); err != nil {
		return &Error{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Delete removes the record file for key.
func (s *FileStore) Delete(key string) error {
	if err := os.Remove(s.filePath(key)); err != nil && !os.IsNotExist(err) {
		return &Error{Op: "delete", Key: key, Err: err}
	}
	return nil
}

// Keys lists keys with the given prefix by scanning BaseDir.
func (s *FileStore) Keys(prefix string) ([]string, error) {
	entries, err := os.ReadDir(s.BaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, &Error{Op: "keys", Err: err}
	}

	keys := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, recordExt) {
			continue
		}
		key, err := url.QueryUnescape(strings.TrimSuffix(name, recordExt))
		if err != nil {
			continue // not one of ours
		}
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) filePath(key string) string {
	return filepath.Join(s.BaseDir, url.QueryEscape(key)+recordExt)
}
