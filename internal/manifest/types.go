// Copyright (c) 2025 ProjectFlow
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package manifest holds the endpoint table of the ProjectFlow web application.
package manifest

import (
	"strings"
)

// Manifest represents the endpoint configuration for one API origin.
type Manifest struct {
	BaseURL string        `json:"base_url"`
	HTTP    HTTPEndpoints `json:"http"`
	Pages   PageEndpoints `json:"pages"`
}

// HTTPEndpoints contains REST API endpoint paths.
type HTTPEndpoints struct {
	Me     string `json:"account_me"`     // e.g., "/api/auth/me/"
	Logout string `json:"account_logout"` // e.g., "/api/auth/logout/"
}

// PageEndpoints contains paths of the web pages the guard navigates to.
type PageEndpoints struct {
	Login string `json:"login"` // e.g., "/login/"
}

// DefaultHTTPEndpoints returns the routes served by the accounts app.
func DefaultHTTPEndpoints() HTTPEndpoints {
	return HTTPEndpoints{
		Me:     "/api/auth/me/",
		Logout: "/api/auth/logout/",
	}
}

// DefaultPages returns the page routes used for navigation.
func DefaultPages() PageEndpoints {
	return PageEndpoints{Login: "/login/"}
}

// HTTPBaseURL returns the API origin without a trailing slash.
func (m *Manifest) HTTPBaseURL() string {
	return strings.TrimRight(m.BaseURL, "/")
}

// PageURL joins a page path onto the origin, e.g. for opening it in a browser.
func (m *Manifest) PageURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return m.HTTPBaseURL() + path
}
