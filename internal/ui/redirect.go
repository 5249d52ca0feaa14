package ui

import (
	"sync"

	"projectflow/cli/internal/manifest"
)

// Redirector implements auth.Navigator for the terminal. The first navigation
// wins, as in a browser where the page is gone once location changes; later
// requests are only counted.
type Redirector struct {
	mu      sync.Mutex
	m       *manifest.Manifest
	open    bool
	opener  func(url string) error
	target  string
	count   int
	openErr error
}

// NewRedirector resolves paths against m. With open set, the first target is
// opened in the default browser.
func NewRedirector(m *manifest.Manifest, open bool) *Redirector {
	return &Redirector{m: m, open: open, opener: OpenBrowser}
}

// Navigate implements auth.Navigator.
func (r *Redirector) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.count++
	if r.target != "" {
		return
	}
	r.target = r.m.PageURL(path)
	if r.open && r.opener != nil {
		r.openErr = r.opener(r.target)
	}
}

// Location returns the URL navigated to, or "" when the page stayed put.
func (r *Redirector) Location() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.target
}

// Count returns how many navigations were requested.
func (r *Redirector) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// OpenError reports a failure to launch the browser.
func (r *Redirector) OpenError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.openErr
}
