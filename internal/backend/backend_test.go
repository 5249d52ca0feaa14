// Copyright (c) 2025 ProjectFlow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	pferrors "projectflow/cli/internal/errors"
	"projectflow/cli/internal/manifest"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *HTTP {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return newHTTP(srv.URL+"/", manifest.DefaultHTTPEndpoints(), time.Second)
}

func TestGetMe(t *testing.T) {
	t.Run("success sends bearer and standard headers", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodGet, r.Method)
			require.Equal(t, "/api/auth/me/", r.URL.Path)
			require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			require.Equal(t, "application/json", r.Header.Get("Accept"))
			require.Equal(t, UserAgent, r.Header.Get("User-Agent"))
			_, err := uuid.Parse(r.Header.Get("X-Request-Id"))
			require.NoError(t, err)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":7,"username":"alice","email":"a@example.com","first_name":"Alice","last_name":"Smith","profile":{"id":3}}`))
		})

		p, err := c.GetMe(context.Background(), "tok-1")
		require.NoError(t, err)
		require.Equal(t, &Profile{ID: 7, Username: "alice", Email: "a@example.com", FirstName: "Alice", LastName: "Smith"}, p)
	})

	t.Run("any 2xx is success", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte(`{"username":"bob"}`))
		})
		p, err := c.GetMe(context.Background(), "tok")
		require.NoError(t, err)
		require.Equal(t, "bob", p.Username)
	})

	t.Run("non-2xx is invalid token", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Given token not valid for any token type"}`))
		})
		_, err := c.GetMe(context.Background(), "expired")
		require.Equal(t, pferrors.InvalidToken, pferrors.KindOf(err))

		var se *StatusError
		require.ErrorAs(t, err, &se)
		require.Equal(t, http.StatusUnauthorized, se.StatusCode)
		require.Contains(t, se.Error(), "get-me failed: 401")
	})

	t.Run("server error is invalid token too", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		_, err := c.GetMe(context.Background(), "tok")
		require.Equal(t, pferrors.InvalidToken, pferrors.KindOf(err))
	})

	t.Run("bad body is malformed profile", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		})
		_, err := c.GetMe(context.Background(), "tok")
		require.Equal(t, pferrors.MalformedProfile, pferrors.KindOf(err))
	})

	t.Run("unreachable server is network failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		c := newHTTP(srv.URL, manifest.DefaultHTTPEndpoints(), time.Second)

		_, err := c.GetMe(context.Background(), "tok")
		require.Equal(t, pferrors.NetworkFailure, pferrors.KindOf(err))
	})
}

func TestLogout(t *testing.T) {
	t.Run("posts refresh token with bearer auth", func(t *testing.T) {
		var got map[string]string
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/auth/logout/", r.URL.Path)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.Equal(t, "Bearer acc", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusResetContent)
		})

		require.NoError(t, c.Logout(context.Background(), "acc", "ref"))
		require.Equal(t, map[string]string{"refresh": "ref"}, got)
	})

	t.Run("omits authorization without access token", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Empty(t, r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Invalid token"}`))
		})

		err := c.Logout(context.Background(), "", "ref")
		var se *StatusError
		require.ErrorAs(t, err, &se)
		require.Equal(t, http.StatusBadRequest, se.StatusCode)
		require.Equal(t, `{"error":"Invalid token"}`, se.Body)
	})
}
