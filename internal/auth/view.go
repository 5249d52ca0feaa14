// Copyright (c) 2025 ProjectFlow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"errors"
	"fmt"

	"projectflow/cli/internal/backend"
)

// Element ids of the page layout the session guard drives.
const (
	ElementCurrentUsername   = "currentUsername"
	ElementAuthenticatedMenu = "userAuthenticatedMenu"
	ElementGuestMenu         = "userGuestMenu"
	ElementLogoutLink        = "logoutLink"
)

// ErrElementMissing is returned by View.SetVisible when the element does not exist.
var ErrElementMissing = errors.New("element not found")

// View is the part of the page the guard writes to.
type View interface {
	// SetText sets an element's text and reports whether the element exists.
	SetText(id, text string) bool
	// SetVisible shows or hides an element. Missing elements yield ErrElementMissing.
	SetVisible(id string, visible bool) error
	// OnClick binds handler to an element's click and reports whether it exists.
	// Bound handlers replace the element's default action.
	OnClick(id string, handler func()) bool
}

// Navigator moves the visitor to another page.
type Navigator interface {
	Navigate(path string)
}

// showAuthenticated renders the signed-in state for p. The username element
// is optional; both menus are required.
func showAuthenticated(v View, p *backend.Profile) error {
	v.SetText(ElementCurrentUsername, DisplayName(p))
	return setMenus(v, true)
}

// showGuest renders the signed-out menu state.
func showGuest(v View) error {
	return setMenus(v, false)
}

func setMenus(v View, authenticated bool) error {
	if err := v.SetVisible(ElementAuthenticatedMenu, authenticated); err != nil {
		return fmt.Errorf("%s: %w", ElementAuthenticatedMenu, err)
	}
	if err := v.SetVisible(ElementGuestMenu, !authenticated); err != nil {
		return fmt.Errorf("%s: %w", ElementGuestMenu, err)
	}
	return nil
}
