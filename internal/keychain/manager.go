// Copyright (c) 2025 ProjectFlow
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides centralized, thread-safe keychain operations for projectflow.
// It is the persistent session store: the access token, refresh token and user key
// live here under the same names the web app uses in browser storage.
//
// On macOS the native `security` command is preferred; elsewhere the 99designs
// keyring library picks Windows Credential Manager, Secret Service, KWallet, pass
// or an encrypted file in the XDG data directory.
package keychain

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/99designs/keyring"

	"projectflow/cli/internal/xdg"
)

// Global keychain manager instance
var (
	globalManager *Manager
	globalError   error
	mu            sync.Mutex
)

// ErrNotFound is returned by backends for missing keys. Manager.Get maps it to "".
var ErrNotFound = errors.New("key not found")

// Manager provides centralized, thread-safe operations for the OS keychain.
// It satisfies auth.Store.
type Manager struct {
	mu      sync.RWMutex
	ring    keyring.Keyring
	backend keychainBackend
	name    string
}

// keychainBackend defines the interface for keychain operations.
type keychainBackend interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "projectflow"

// Backend selection values accepted in Options.Backend.
const (
	BackendAuto = "auto"
	BackendFile = "file"
)

// Options controls which keyring backend is opened.
type Options struct {
	// Backend is "auto" (platform native, file as last resort) or "file".
	Backend string
	// FilePassword unlocks the encrypted file backend. When empty the user is
	// prompted on the terminal.
	FilePassword string
}

// NewManager creates a new keychain manager with the OS keyring initialized.
func NewManager(opts Options) (*Manager, error) {
	// Try native security backend first on macOS
	if runtime.GOOS == "darwin" && opts.Backend != BackendFile {
		backend, err := newSecurityBackend()
		if err == nil {
			return &Manager{backend: backend, name: "macos-security"}, nil
		}
		// Fall through to keyring library if security command fails
	}

	ring, err := openRing(opts)
	if err != nil {
		return nil, err
	}

	return &Manager{ring: ring, name: "keyring"}, nil
}

// NewManagerWithRing wraps an already opened keyring, e.g. keyring.NewArrayKeyring in tests.
func NewManagerWithRing(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring, name: "keyring"}
}

// GetManager returns the global keychain manager instance.
// If not initialized, it will be created on first call.
// If initialization fails, it will retry on subsequent calls.
func GetManager(opts Options) (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}

	globalManager, globalError = NewManager(opts)
	if globalError != nil {
		globalManager = nil
		return nil, globalError
	}

	return globalManager, nil
}

// openRing opens the keyring with the backends allowed on this platform.
func openRing(opts Options) (keyring.Keyring, error) {
	var allowedBackends []keyring.BackendType
	switch {
	case opts.Backend == BackendFile:
		allowedBackends = []keyring.BackendType{keyring.FileBackend}
	case runtime.GOOS == "darwin":
		// pass (password store) is the fallback when the Keychain is unusable
		allowedBackends = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case runtime.GOOS == "windows":
		allowedBackends = []keyring.BackendType{keyring.WinCredBackend}
	default:
		allowedBackends = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		}
	}

	cfg := keyring.Config{
		ServiceName:     ServiceName,
		AllowedBackends: allowedBackends,
		PassPrefix:      ServiceName,
		WinCredPrefix:   ServiceName,
	}

	for _, b := range allowedBackends {
		if b != keyring.FileBackend {
			continue
		}
		dir, err := xdg.DataDir()
		if err != nil {
			return nil, err
		}
		cfg.FileDir = dir
		if opts.FilePassword != "" {
			cfg.FilePasswordFunc = keyring.FixedStringPrompt(opts.FilePassword)
		} else {
			cfg.FilePasswordFunc = keyring.TerminalPrompt
		}
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open session keyring: %w", err)
	}

	return ring, nil
}

// Name identifies the active backend for status output.
func (m *Manager) Name() string {
	return m.name
}

// Get retrieves a value. Missing keys yield "" and no error.
// This method is thread-safe.
func (m *Manager) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.backend != nil {
		v, err := m.backend.Get(key)
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return v, err
	}

	it, err := m.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", nil
		}
		return "", err
	}
	return string(it.Data), nil
}

// Set stores a value under key, replacing any previous value.
// This method is thread-safe.
func (m *Manager) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.backend != nil {
		return m.backend.Set(key, value)
	}

	return m.ring.Set(keyring.Item{Key: key, Data: []byte(value), Label: ServiceName + " " + key})
}

// Delete removes key. Deleting a missing key is not an error.
// This method is thread-safe.
func (m *Manager) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.backend != nil {
		return m.backend.Delete(key)
	}

	err := m.ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
