// Copyright (c) 2025 ProjectFlow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"sync"
)

// Keys under which the session lives, shared with the web app's browser storage.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUserKey      = "user_key"
)

// Store is the session storage the guard reads and clears.
// Get returns "" with a nil error for missing keys; Delete of a missing key is not an error.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryStore is a process-local Store, used for --ephemeral runs and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryStore returns a store pre-filled with initial (which is copied).
func NewMemoryStore(initial map[string]string) *MemoryStore {
	items := make(map[string]string, len(initial))
	for k, v := range initial {
		items[k] = v
	}
	return &MemoryStore{items: items}
}

func (m *MemoryStore) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items[key], nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// Has reports whether key holds a value.
func (m *MemoryStore) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[key]
	return ok
}
