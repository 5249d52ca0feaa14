// Copyright (c) 2025 ProjectFlow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	pferrors "projectflow/cli/internal/errors"
)

// Profile is the identity endpoint payload. Only Username is guaranteed.
type Profile struct {
	ID        int64  `json:"id,omitempty"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// GetMe calls GET /api/auth/me/ with Authorization header.
// Any 2xx status is success; the body must then decode as a Profile.
func (h *HTTP) GetMe(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+h.endpoints.Me, nil)
	if err != nil {
		return nil, pferrors.Wrap(pferrors.NetworkFailure, "build identity request", err)
	}
	h.setStandardHeaders(req)
	setBearer(req, accessToken)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, pferrors.Wrap(pferrors.NetworkFailure, "identity request", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, pferrors.Wrap(pferrors.InvalidToken, "identity rejected token", &StatusError{
			Endpoint:   "get-me",
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(b)),
		})
	}

	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, pferrors.Wrap(pferrors.MalformedProfile, "decode identity response", err)
	}
	return &p, nil
}
