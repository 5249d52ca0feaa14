// Copyright (c) 2025 ProjectFlow
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package ui provides the terminal stand-ins for the browser page the session
// guard drives: an element tree implementing auth.View, a Navigator that
// records (and optionally opens) redirects, and pterm rendering of both.
package ui

import (
	"sync"

	"projectflow/cli/internal/auth"
)

// Element is one addressable node of a Page.
type Element struct {
	ID      string
	Text    string
	Visible bool

	onClick func()
}

// Page is an in-memory element tree. It is safe for concurrent use, since the
// guard and the page-load handler may update it at the same time.
type Page struct {
	mu       sync.Mutex
	path     string
	elements map[string]*Element
}

// NewPage creates a page at path with the given element ids, all hidden and empty.
func NewPage(path string, ids ...string) *Page {
	p := &Page{path: path, elements: make(map[string]*Element, len(ids))}
	for _, id := range ids {
		p.elements[id] = &Element{ID: id}
	}
	return p
}

// NewLayout creates a page with the standard navbar: username slot, both
// menus and the logout link. The guest menu starts visible.
func NewLayout(path string) *Page {
	p := NewPage(path,
		auth.ElementCurrentUsername,
		auth.ElementAuthenticatedMenu,
		auth.ElementGuestMenu,
		auth.ElementLogoutLink,
	)
	p.elements[auth.ElementGuestMenu].Visible = true
	p.elements[auth.ElementLogoutLink].Visible = true
	return p
}

// Path returns the page's path.
func (p *Page) Path() string {
	return p.path
}

// SetText implements auth.View.
func (p *Page) SetText(id, text string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	el, ok := p.elements[id]
	if !ok {
		return false
	}
	el.Text = text
	return true
}

// SetVisible implements auth.View.
func (p *Page) SetVisible(id string, visible bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	el, ok := p.elements[id]
	if !ok {
		return auth.ErrElementMissing
	}
	el.Visible = visible
	return nil
}

// OnClick implements auth.View.
func (p *Page) OnClick(id string, handler func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	el, ok := p.elements[id]
	if !ok {
		return false
	}
	el.onClick = handler
	return true
}

// Click runs the element's click handler and reports whether one was bound.
func (p *Page) Click(id string) bool {
	p.mu.Lock()
	var handler func()
	if el, ok := p.elements[id]; ok {
		handler = el.onClick
	}
	p.mu.Unlock()

	if handler == nil {
		return false
	}
	handler()
	return true
}

// Element returns a copy of the element with the given id.
func (p *Page) Element(id string) (Element, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	el, ok := p.elements[id]
	if !ok {
		return Element{}, false
	}
	return Element{ID: el.ID, Text: el.Text, Visible: el.Visible}, true
}

// Visible reports whether the element exists and is shown.
func (p *Page) Visible(id string) bool {
	el, ok := p.Element(id)
	return ok && el.Visible
}
