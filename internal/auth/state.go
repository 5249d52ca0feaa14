package auth

import (
	"errors"
	"strings"
)

// State reports which session entries are stored.
type State struct {
	HasAccessToken  bool
	HasRefreshToken bool
	HasUserKey      bool
	// Access is set when the access token decodes as a JWT.
	Access *TokenInfo
}

// LoadState reads the session entries without contacting the server.
func LoadState(store Store) (State, error) {
	var st State

	access, err := store.Get(KeyAccessToken)
	if err != nil {
		return st, err
	}
	refresh, err := store.Get(KeyRefreshToken)
	if err != nil {
		return st, err
	}
	userKey, err := store.Get(KeyUserKey)
	if err != nil {
		return st, err
	}

	st.HasAccessToken = access != ""
	st.HasRefreshToken = refresh != ""
	st.HasUserKey = userKey != ""
	if st.HasAccessToken {
		if info, err := InspectToken(access); err == nil {
			st.Access = &info
		}
	}
	return st, nil
}

// SaveTokenPair stores a token pair handed over from the web login flow.
// Both tokens are required so the pair is never half written by us.
func SaveTokenPair(store Store, access, refresh string) error {
	access = strings.TrimSpace(access)
	refresh = strings.TrimSpace(refresh)
	if access == "" || refresh == "" {
		return errors.New("both access and refresh tokens are required")
	}
	if err := store.Set(KeyAccessToken, access); err != nil {
		return err
	}
	return store.Set(KeyRefreshToken, refresh)
}
