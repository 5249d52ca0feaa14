// Copyright (c) 2025 ProjectFlow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package manifest

import "sync"

var (
	// Global cache of resolved manifests keyed by base URL.
	// Lives only in process memory and is cleared when CLI exits.
	globalCache     = map[string]*Manifest{}
	globalCacheLock sync.RWMutex
)

// GetCached returns the cached manifest for baseURL, or nil if not cached.
func GetCached(baseURL string) *Manifest {
	globalCacheLock.RLock()
	defer globalCacheLock.RUnlock()
	return globalCache[baseURL]
}

// SetCached stores the manifest in RAM.
func SetCached(m *Manifest) {
	globalCacheLock.Lock()
	defer globalCacheLock.Unlock()
	globalCache[m.BaseURL] = m
}

// ClearCache removes all manifests from RAM (primarily for testing).
func ClearCache() {
	globalCacheLock.Lock()
	defer globalCacheLock.Unlock()
	globalCache = map[string]*Manifest{}
}
