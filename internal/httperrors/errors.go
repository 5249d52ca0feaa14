// Copyright (c) 2025 ProjectFlow
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors turns transport failures of the identity API into
// messages a person can act on.
package httperrors

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
)

// Problem classifies a network failure.
type Problem int

const (
	Generic Problem = iota
	Timeout
	DNS
	ConnectionRefused
	TLS
	ServerError
)

// Classify inspects err and reports which kind of network failure it is.
func Classify(err error) Problem {
	switch {
	case err == nil:
		return Generic
	case isTimeout(err):
		return Timeout
	case isDNS(err):
		return DNS
	case isConnectionRefused(err):
		return ConnectionRefused
	case isTLS(err):
		return TLS
	case isServerError(err.Error()):
		return ServerError
	default:
		return Generic
	}
}

// FormatNetworkError prints a friendly explanation of err to stdout and
// returns err wrapped for the caller. action describes what was being done,
// e.g. "checking your session"; host names the API origin.
func FormatNetworkError(err error, action, host string) error {
	if err == nil {
		return nil
	}
	Describe(os.Stdout, err, action, host)
	return fmt.Errorf("network error: %w", err)
}

// Describe writes the explanation for err to w.
func Describe(w io.Writer, err error, action, host string) {
	if w == nil {
		w = io.Discard
	}
	p := func(format string, args ...any) { fmt.Fprintf(w, format+"\n", args...) }

	switch Classify(err) {
	case Timeout:
		p("⏱️  Connection timeout while %s", action)
		p("")
		p("%s took too long to respond. Check that the server is running", host)
		p("and reachable, or raise request_timeout_seconds in the config.")
	case DNS:
		p("🌐 Cannot resolve %s while %s", host, action)
		p("")
		p("Check the api_url setting and your DNS configuration.")
	case ConnectionRefused:
		p("🚫 Connection refused by %s while %s", host, action)
		p("")
		p("Nothing is listening there. Is the ProjectFlow server started?")
		p("Use --api-url or PROJECTFLOW_API_URL to point at another server.")
	case TLS:
		p("🔒 Secure connection to %s failed while %s", host, action)
		p("")
		p("Check the server certificate, any HTTPS proxy and your system clock.")
	case ServerError:
		p("⚠️  %s returned a server error while %s", host, action)
		p("")
		p("The problem is on the server side. Try again shortly.")
	default:
		p("❌ Cannot reach %s while %s", host, action)
		p("")
		p("Check your network connection and the api_url setting.")
		if details := err.Error(); details != "" {
			if len(details) > 100 {
				details = details[:100] + "..."
			}
			pterm.Debug.Printf("Technical details: %s\n", details)
		}
	}
	p("")
}

func isTimeout(err error) bool {
	lower := strings.ToLower(err.Error())
	if strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded") {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isDNS(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isConnectionRefused(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isTLS(err error) bool {
	lower := strings.ToLower(err.Error())
	for _, s := range []string{"tls", "x509", "certificate", "handshake"} {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

func isServerError(errStr string) bool {
	lower := strings.ToLower(errStr)
	for _, s := range []string{"500", "502", "503", "504", "internal server error", "bad gateway", "service unavailable", "gateway timeout"} {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// ExtractHostFromURL extracts the host from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
