package manifest

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pterm/pterm"
)

// GetEndpoints returns the manifest for baseURL, using the RAM cache if available.
// If not cached, it validates the origin and caches the default endpoint table.
func GetEndpoints(baseURL string) (*Manifest, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")

	if cached := GetCached(baseURL); cached != nil {
		return cached, nil
	}

	if err := validateBaseURL(baseURL); err != nil {
		return nil, formatConfigError(baseURL, err)
	}

	m := &Manifest{
		BaseURL: baseURL,
		HTTP:    DefaultHTTPEndpoints(),
		Pages:   DefaultPages(),
	}
	SetCached(m)

	return m, nil
}

func validateBaseURL(baseURL string) error {
	if baseURL == "" {
		return fmt.Errorf("empty API URL")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

// formatConfigError creates user-friendly error messages for a bad API origin.
func formatConfigError(baseURL string, err error) error {
	pterm.Error.Printfln("Invalid API URL %q", baseURL)
	pterm.Println()
	pterm.Info.Println("Please check:")
	pterm.Println("  • The --api-url flag or PROJECTFLOW_API_URL")
	pterm.Println("  • api_url in your projectflow config.json")
	pterm.Println("  • The URL starts with http:// or https://")
	pterm.Println()

	return fmt.Errorf("invalid api url: %w", err)
}
