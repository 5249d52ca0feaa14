package auth

import "strings"

// guardExempt reports whether the guard leaves the page alone: the sign-in
// pages themselves and the Django admin, which has its own session.
func guardExempt(path string) bool {
	return strings.Contains(path, "/login") ||
		strings.Contains(path, "/register") ||
		strings.Contains(path, "/admin")
}

// onAuthPage reports whether path is a sign-in page, where a redirect to the
// login page would loop.
func onAuthPage(path string) bool {
	return strings.Contains(path, "/login") || strings.Contains(path, "/register")
}
