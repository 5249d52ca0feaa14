// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; tokens go to the session store.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"projectflow/cli/internal/xdg"
)

// Environment variables that override file settings.
const (
	EnvAPIURL          = "PROJECTFLOW_API_URL"
	EnvVerbose         = "PROJECTFLOW_VERBOSE"
	EnvKeyringPassword = "PROJECTFLOW_KEYRING_PASSWORD"
)

// DefaultAPIURL is the development server the web app runs on.
const DefaultAPIURL = "http://localhost:8000"

// Config holds non-sensitive CLI settings.
type Config struct {
	APIURL                string `json:"api_url"`
	LogLevel              string `json:"log_level"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
	OpenBrowser           bool   `json:"open_browser"`
	KeyringBackend        string `json:"keyring_backend"`
}

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		APIURL:                DefaultAPIURL,
		LogLevel:              "warn",
		RequestTimeoutSeconds: 10,
		KeyringBackend:        "auto",
	}
}

// RequestTimeout returns the per-request HTTP timeout.
func (c Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Verbose reports whether debug diagnostics were requested via config or env.
func (c Config) Verbose() bool {
	return os.Getenv(EnvVerbose) == "1" || strings.EqualFold(c.LogLevel, "debug")
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; missing file returns defaults.
// Environment overrides are applied in both cases.
func Load() (Config, error) {
	c := Defaults()
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&c)
			return c, nil
		}
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, err
	}
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	applyEnv(&c)
	return c, nil
}

func applyEnv(c *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		c.APIURL = v
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
