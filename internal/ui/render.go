package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"projectflow/cli/internal/auth"
)

// Render prints the page state: a redirect notice when navigation happened,
// otherwise whichever menu is visible.
func Render(w io.Writer, page *Page, nav *Redirector) {
	if nav != nil {
		if loc := nav.Location(); loc != "" {
			fmt.Fprintln(w, RenderRedirect(loc))
			if err := nav.OpenError(); err != nil {
				fmt.Fprintln(w, pterm.Gray("   could not open browser: "+err.Error()))
			}
			return
		}
	}

	switch {
	case page.Visible(auth.ElementAuthenticatedMenu):
		fmt.Fprintln(w, RenderUserMenu(page))
	case page.Visible(auth.ElementGuestMenu):
		fmt.Fprintln(w, RenderGuestMenu())
	}
}

// RenderRedirect describes a navigation to the login page.
func RenderRedirect(location string) string {
	var b strings.Builder
	b.WriteString("🔒 Your session is not valid here.\n")
	b.WriteString("   Sign in at " + pterm.Cyan(location) + "\n")
	b.WriteString("   then run 'projectflow session import'.")
	return b.String()
}

// RenderUserMenu draws the authenticated menu with the display name.
func RenderUserMenu(page *Page) string {
	name := "user"
	if el, ok := page.Element(auth.ElementCurrentUsername); ok && el.Text != "" {
		name = el.Text
	}

	body := fmt.Sprintf("👤 %s\n\n%s  Sign out", name, pterm.Cyan("projectflow logout"))
	return pterm.DefaultBox.
		WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("ProjectFlow")).
		Sprint(body)
}

// RenderGuestMenu draws the guest menu.
func RenderGuestMenu() string {
	return "🔒 You're not logged in yet!\n   Sign in on the web, then run 'projectflow session import'."
}
