// Package xdg provides helpers to resolve XDG Base Directory paths for projectflow.
// It implements the XDG Base Directory specification for determining appropriate
// locations for configuration files and the encrypted file keyring.
//
// The package handles fallback to traditional locations when XDG environment
// variables are not set and ensures private permissions on the directories it creates.
package xdg

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under every XDG base directory.
const AppName = "projectflow"

// ConfigDir returns the XDG config directory for projectflow.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/projectflow when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	return resolve("XDG_CONFIG_HOME", ".config")
}

// DataDir returns the XDG data directory for projectflow, used by the file keyring.
// It falls back to ~/.local/share/projectflow when XDG_DATA_HOME is unset.
func DataDir() (string, error) {
	return resolve("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func resolve(envVar, homeFallback string) (string, error) {
	base := os.Getenv(envVar)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, homeFallback)
	}
	dir := filepath.Join(base, AppName)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
