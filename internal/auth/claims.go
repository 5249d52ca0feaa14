package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what can be read from a JWT access token without its signing key.
// Nothing here is verified; it is for display only.
type TokenInfo struct {
	UserID    string
	TokenType string
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry before now.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

// InspectToken decodes the claims of a JWT without verifying its signature.
// Opaque tokens that are not JWTs return an error.
func InspectToken(token string) (TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, fmt.Errorf("decode token: %w", err)
	}

	var info TokenInfo
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	info.UserID = claimString(claims, "user_id")
	if info.UserID == "" {
		info.UserID, _ = claims.GetSubject()
	}
	info.TokenType = claimString(claims, "token_type")
	info.ID = claimString(claims, "jti")
	return info, nil
}

// claimString renders a string or numeric claim; simplejwt emits integer user ids.
func claimString(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}
