// Copyright (c) 2025 ProjectFlow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"projectflow/cli/internal/auth"
	"projectflow/cli/internal/backend"
	"projectflow/cli/internal/config"
	pferrors "projectflow/cli/internal/errors"
	"projectflow/cli/internal/httperrors"
	"projectflow/cli/internal/keychain"
	"projectflow/cli/internal/logging"
	"projectflow/cli/internal/manifest"
	"projectflow/cli/internal/ui"
)

// pageSession is everything one command needs to act as a loaded page:
// config, endpoints, session store, identity API, the page and its navigator.
type pageSession struct {
	cfg   config.Config
	m     *manifest.Manifest
	log   *zap.Logger
	store auth.Store
	api   *observedAPI
	page  *ui.Page
	nav   *ui.Redirector
	svc   *auth.Service
}

// newPageSession loads configuration and wires the guard for the page at path.
func newPageSession(path string) (*pageSession, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}

	log := logging.New(verbose || cfg.Verbose())

	m, err := manifest.GetEndpoints(cfg.APIURL)
	if err != nil {
		return nil, err
	}

	store, err := openStore(cfg, log)
	if err != nil {
		return nil, err
	}

	s := &pageSession{
		cfg:   cfg,
		m:     m,
		log:   log,
		store: store,
		api:   &observedAPI{API: backend.New(m.HTTPBaseURL(), m.HTTP, cfg.RequestTimeout())},
		page:  ui.NewLayout(path),
		nav:   ui.NewRedirector(m, cfg.OpenBrowser),
	}
	s.svc = auth.NewService(s.store, s.api, s.nav, s.page, auth.Options{
		LoginPath: m.Pages.Login,
		Logger:    log.Named("auth"),
	})

	log.Debug("session ready",
		zap.String("api", m.HTTPBaseURL()),
		zap.String("page", path),
		zap.String("store", storeName(store)),
	)
	return s, nil
}

// openStore returns the keychain-backed store, or a memory store with --ephemeral.
func openStore(cfg config.Config, log *zap.Logger) (auth.Store, error) {
	if ephemeral {
		return auth.NewMemoryStore(nil), nil
	}
	km, err := keychain.GetManager(keychain.Options{
		Backend:      cfg.KeyringBackend,
		FilePassword: os.Getenv(config.EnvKeyringPassword),
	})
	if err != nil {
		log.Debug("keychain unavailable", logging.Err(err))
		return nil, pferrors.Wrap(pferrors.StorageFailure, "open keychain", err)
	}
	return km, nil
}

func storeName(s auth.Store) string {
	if km, ok := s.(*keychain.Manager); ok {
		return km.Name()
	}
	return "memory"
}

// render prints the page as the visitor would see it.
func (s *pageSession) render() {
	ui.Render(os.Stdout, s.page, s.nav)
}

// reportNetwork explains the last transport failure of the identity call, if any.
func (s *pageSession) reportNetwork(action string) bool {
	err := s.api.NetworkError()
	if err == nil {
		return false
	}
	_ = httperrors.FormatNetworkError(err, action, httperrors.ExtractHostFromURL(s.m.BaseURL))
	return true
}

func (s *pageSession) close() {
	_ = s.log.Sync()
}

// observedAPI remembers the outcome of the last identity call so commands can
// explain what the guard only logs.
type observedAPI struct {
	backend.API

	mu      sync.Mutex
	profile *backend.Profile
	netErr  error
}

func (o *observedAPI) GetMe(ctx context.Context, accessToken string) (*backend.Profile, error) {
	p, err := o.API.GetMe(ctx, accessToken)

	o.mu.Lock()
	defer o.mu.Unlock()
	if err == nil {
		o.profile = p
		o.netErr = nil
	} else if pferrors.Is(err, pferrors.NetworkFailure) {
		o.netErr = err
	}
	return p, err
}

// Profile returns the last profile the identity endpoint returned.
func (o *observedAPI) Profile() *backend.Profile {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.profile
}

// NetworkError returns the last transport failure, or nil.
func (o *observedAPI) NetworkError() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.netErr
}
