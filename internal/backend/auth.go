package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	pferrors "projectflow/cli/internal/errors"
)

// Logout calls POST /api/auth/logout/ with { "refresh": <token> } and the
// access token as bearer auth. The server answers 205 on success and 400
// when the refresh token is missing or already blacklisted.
func (h *HTTP) Logout(ctx context.Context, accessToken, refreshToken string) error {
	b, err := json.Marshal(map[string]string{"refresh": refreshToken})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+h.endpoints.Logout, bytes.NewReader(b))
	if err != nil {
		return pferrors.Wrap(pferrors.NetworkFailure, "build logout request", err)
	}
	h.setStandardHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	setBearer(req, accessToken)

	resp, err := h.client.Do(req)
	if err != nil {
		return pferrors.Wrap(pferrors.NetworkFailure, "logout request", err)
	}
	defer resp.Body.Close()

	if isSuccess(resp.StatusCode) {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{
		Endpoint:   "logout",
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
