// Copyright (c) 2025 ProjectFlow
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth implements the client-side session guard for ProjectFlow pages.
// It reads the token pair from a Store, validates the access token against the
// identity endpoint, redirects visitors without a valid session to the login
// page, drives the authenticated/guest menu state, and clears state on logout.
//
// None of this is access control. The API rejects bad tokens on its own; the
// guard only spares visitors from pages that would fail for them anyway.
package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"projectflow/cli/internal/backend"
	pferrors "projectflow/cli/internal/errors"
	"projectflow/cli/internal/logging"
)

// DefaultLoginPath is where unauthenticated visitors are sent.
const DefaultLoginPath = "/login/"

// Service centralizes session operations against the identity API, the
// session store and the current page.
type Service struct {
	store     Store
	api       backend.API
	nav       Navigator
	view      View
	log       *zap.Logger
	loginPath string
}

// Options tunes a Service. The zero value is usable.
type Options struct {
	LoginPath string
	Logger    *zap.Logger
}

// NewService wires a Service for one page.
func NewService(store Store, api backend.API, nav Navigator, view View, opts Options) *Service {
	if opts.LoginPath == "" {
		opts.LoginPath = DefaultLoginPath
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Service{
		store:     store,
		api:       api,
		nav:       nav,
		view:      view,
		log:       opts.Logger,
		loginPath: opts.LoginPath,
	}
}

// Authenticate is the single identity check behind every entry point.
// It returns the profile for the stored access token, or an error whose
// Kind is MissingToken, InvalidToken, NetworkFailure or MalformedProfile.
// An unreadable store counts as a missing token.
func (s *Service) Authenticate(ctx context.Context) (*backend.Profile, error) {
	token, err := s.accessToken()
	if err != nil {
		return nil, err
	}
	s.log.Debug("checking access token", logging.Token("token", token))
	return s.api.GetMe(ctx, token)
}

func (s *Service) accessToken() (string, error) {
	token, err := s.store.Get(KeyAccessToken)
	if err != nil {
		s.log.Warn("session store unreadable, treating as signed out", logging.Err(err))
		return "", pferrors.Wrap(pferrors.MissingToken, "read access token", err)
	}
	if token == "" {
		return "", pferrors.New(pferrors.MissingToken, "no access token")
	}
	return token, nil
}

// HasAccessToken reports whether an access token is stored.
func (s *Service) HasAccessToken() bool {
	token, err := s.store.Get(KeyAccessToken)
	return err == nil && token != ""
}

// CheckToken reports whether the visitor on path is authenticated.
// Without a token, or when the identity call fails for any reason, the token
// pair is cleared (if present) and the visitor is sent to the login page,
// except when already on a login or register page.
func (s *Service) CheckToken(ctx context.Context, path string) bool {
	_, err := s.Authenticate(ctx)
	if err == nil {
		return true
	}

	switch pferrors.KindOf(err) {
	case pferrors.MalformedProfile:
		// the server accepted the token; the body is not needed here
		return true
	case pferrors.MissingToken:
		s.log.Debug("no access token", zap.String("path", path))
		s.redirectUnlessOnAuthPage(path)
		return false
	case pferrors.NetworkFailure:
		s.log.Error("token check failed", logging.Err(err))
	default:
		s.log.Info("access token rejected", logging.Err(err))
	}

	s.clearTokens()
	s.redirectUnlessOnAuthPage(path)
	return false
}

func (s *Service) redirectUnlessOnAuthPage(path string) {
	if !onAuthPage(path) {
		s.nav.Navigate(s.loginPath)
	}
}

// UpdateUserInfo refreshes the username display and menus from the identity
// endpoint. It does nothing without a token. Any failure switches the page to
// the guest menus and is returned; tokens are left in place.
func (s *Service) UpdateUserInfo(ctx context.Context) error {
	if !s.HasAccessToken() {
		return nil
	}

	p, err := s.Authenticate(ctx)
	if err != nil {
		s.log.Error("could not load user info", logging.Err(err))
		if verr := showGuest(s.view); verr != nil {
			s.log.Error("could not show guest menu", logging.Err(verr))
			return errors.Join(err, verr)
		}
		return err
	}

	return showAuthenticated(s.view, p)
}

// Logout signs the visitor out. When a refresh token is stored it is sent to
// the logout endpoint on a best-effort basis. The access token, refresh token
// and user key are then removed and the visitor is sent to the login page
// no matter what happened before. The returned error only reports entries
// that could not be removed.
func (s *Service) Logout(ctx context.Context) error {
	refresh, err := s.store.Get(KeyRefreshToken)
	if err != nil {
		s.log.Warn("could not read refresh token", logging.Err(err))
	}
	if refresh != "" {
		access, _ := s.store.Get(KeyAccessToken)
		if err := s.api.Logout(ctx, access, refresh); err != nil {
			s.log.Warn("remote logout failed", logging.Err(err))
		}
	}

	var errs []error
	for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyUserKey} {
		if err := s.store.Delete(key); err != nil {
			errs = append(errs, pferrors.Wrap(pferrors.StorageFailure, "delete "+key, err))
		}
	}

	s.nav.Navigate(s.loginPath)
	return errors.Join(errs...)
}

// clearTokens removes the token pair after the server rejected it.
func (s *Service) clearTokens() {
	for _, key := range []string{KeyAccessToken, KeyRefreshToken} {
		if err := s.store.Delete(key); err != nil {
			s.log.Error("could not clear "+key, logging.Err(err))
		}
	}
}

// PageReady is the page-load handler. It runs CheckToken for its redirect
// and, when a token was present at load time, UpdateUserInfo alongside it,
// then binds the logout control. The two identity calls are independent and
// may finish in either order. The returned error comes from UpdateUserInfo.
func (s *Service) PageReady(ctx context.Context, path string) error {
	hadToken := s.HasAccessToken()

	var g errgroup.Group
	g.Go(func() error {
		s.CheckToken(ctx, path)
		return nil
	})
	if hadToken {
		g.Go(func() error {
			return s.UpdateUserInfo(ctx)
		})
	}

	// clicks happen after load; they must not die with the load context
	clickCtx := context.WithoutCancel(ctx)
	s.view.OnClick(ElementLogoutLink, func() {
		if err := s.Logout(clickCtx); err != nil {
			s.log.Error("logout incomplete", logging.Err(err))
		}
	})

	return g.Wait()
}
