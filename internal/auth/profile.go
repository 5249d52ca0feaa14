package auth

import (
	"strings"

	"projectflow/cli/internal/backend"
)

// DisplayName prefers "first last" when either name part is set, else the username.
func DisplayName(p *backend.Profile) string {
	if p == nil {
		return ""
	}
	if p.FirstName != "" || p.LastName != "" {
		return strings.TrimSpace(p.FirstName + " " + p.LastName)
	}
	return p.Username
}
