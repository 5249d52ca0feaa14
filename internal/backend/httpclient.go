package backend

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"projectflow/cli/internal/manifest"
)

// UserAgent is sent with every request. cmd appends the build version.
var UserAgent = "projectflow-cli"

// HTTP implements API client over REST endpoints.
// It holds no user data between calls: every identity check goes to the server.
type HTTP struct {
	// baseURL is the base URL for all HTTP requests (e.g., "http://localhost:8000")
	baseURL string
	// endpoints contains the URL paths for various API endpoints
	endpoints manifest.HTTPEndpoints
	// client is the underlying HTTP client with configured timeout
	client *http.Client
}

// newHTTP creates a new HTTP client with the given base URL and endpoints.
// A non-positive timeout falls back to 10 seconds.
func newHTTP(baseURL string, endpoints manifest.HTTPEndpoints, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTP{
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoints: endpoints,
		client:    &http.Client{Timeout: timeout},
	}
}

// setStandardHeaders applies headers shared by every request: user agent,
// JSON accept and a fresh request id for server-side log correlation.
func (h *HTTP) setStandardHeaders(req *http.Request) {
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
}

// setBearer adds the Authorization header when a token is present.
func setBearer(req *http.Request, accessToken string) {
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
}

// StatusError is a non-2xx response from the API.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s failed: %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s failed: %d %s", e.Endpoint, e.StatusCode, e.Body)
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
