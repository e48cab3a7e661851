// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storagetest provides storage fakes and deterministic id and clock
// sources for tests.
package storagetest

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jeranaias/ragify-tui/internal/storage"
)

// ErrInjected is returned by a FlakyStore operation set to fail.
var ErrInjected = errors.New("storagetest: injected failure")

// FlakyStore wraps a Store and fails selected operations on demand.
type FlakyStore struct {
	storage.Store

	mu        sync.Mutex
	failGet   bool
	failSet   bool
	sets      int
	setKeys   []string
	deletions []string
}

// NewFlakyStore wraps an in-memory store.
func NewFlakyStore() *FlakyStore {
	return &FlakyStore{Store: storage.NewMemoryStore()}
}

// FailGets makes Get fail while on is true.
func (f *FlakyStore) FailGets(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failGet = on
}

// FailSets makes Set and Delete fail while on is true.
func (f *FlakyStore) FailSets(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failSet = on
}

// Get implements storage.Store.
func (f *FlakyStore) Get(key string) ([]byte, error) {
	f.mu.Lock()
	fail := f.failGet
	f.mu.Unlock()
	if fail {
		return nil, &storage.Error{Op: "get", Key: key, Err: ErrInjected}
	}
	return f.Store.Get(key)
}

// Set implements storage.Store.
func (f *FlakyStore) Set(key string, value []byte) error {
	f.mu.Lock()
	fail := f.failSet
	f.sets++
	f.setKeys = append(f.setKeys, key)
	f.mu.Unlock()
	if fail {
		return &storage.Error{Op: "set", Key: key, Err: ErrInjected}
	}
	return f.Store.Set(key, value)
}

// Delete implements storage.Store.
func (f *FlakyStore) Delete(key string) error {
	f.mu.Lock()
	fail := f.failSet
	f.deletions = append(f.deletions, key)
	f.mu.Unlock()
	if fail {
		return &storage.Error{Op: "delete", Key: key, Err: ErrInjected}
	}
	return f.Store.Delete(key)
}

// Sets returns how many Set calls were attempted.
func (f *FlakyStore) Sets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sets
}

// SetKeys returns the keys passed to Set, in call order.
func (f *FlakyStore) SetKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.setKeys...)
}

// Deletions returns the keys passed to Delete, in call order.
func (f *FlakyStore) Deletions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deletions...)
}

// Sequence returns an id generator yielding prefix-1, prefix-2, ...
func Sequence(prefix string) func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}

// Clock is a manually advanced time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock stopped at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
