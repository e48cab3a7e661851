// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"sort"
	"strings"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps records in process memory. Nothing survives a restart.
type MemoryStore struct {
	items *cache.Cache
}

// NewMemoryStore creates an empty memory store. Entries never expire and no
// janitor goroutine is started.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: cache.New(cache.NoExpiration, 0)}
}

// Get returns a copy of the record for key.
func (s *MemoryStore) Get(key string) ([]byte, error) {
	v, ok := s.items.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	return cloneBytes(v.([]byte)), nil
}

// Set stores a copy of value, so later caller writes to the slice are not
// visible through Get.
func (s *MemoryStore) Set(key string, value []byte) error {
	s.items.Set(key, cloneBytes(value), cache.NoExpiration)
	return nil
}

// Delete removes key.
func (s *MemoryStore) Delete(key string) error {
	s.items.Delete(key)
	return nil
}

// Keys lists keys with the given prefix, sorted.
func (s *MemoryStore) Keys(prefix string) ([]string, error) {
	keys := []string{}
	for key := range s.items.Items() {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close drops all records.
func (s *MemoryStore) Close() error {
	s.items.Flush()
	return nil
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
