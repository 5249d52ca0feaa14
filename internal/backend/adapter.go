// Copyright (c) 2025 ProjectFlow
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides interfaces and implementations for communicating with the
// ProjectFlow accounts API. It defines the API contract for the identity check and
// logout calls the session guard makes, and an HTTP implementation of it.
package backend

import "context"

// API defines backend operations the session guard depends on.
// Implementations may call real HTTP endpoints or provide mocks for tests.
type API interface {
	// GetMe retrieves the profile of the user owning accessToken.
	// Failures carry an errors.Kind: InvalidToken for non-2xx responses,
	// NetworkFailure when no response arrived, MalformedProfile for an
	// undecodable 2xx body.
	GetMe(ctx context.Context, accessToken string) (*Profile, error)
	// Logout asks the server to blacklist refreshToken. The access token is
	// sent as bearer auth when non-empty.
	Logout(ctx context.Context, accessToken, refreshToken string) error
}
