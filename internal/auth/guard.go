package auth

import (
	"context"

	"go.uber.org/zap"

	pferrors "projectflow/cli/internal/errors"
	"projectflow/cli/internal/logging"
)

// Guard is the page-load check that runs before anything else on a page.
// It shares the Service's identity check but not its failure handling:
// a network failure leaves the page as it is instead of signing out.
type Guard struct {
	svc *Service
}

// NewGuard returns a Guard using svc's store, API, navigator and view.
func NewGuard(svc *Service) *Guard {
	return &Guard{svc: svc}
}

// Run checks the session for the page at path.
//
// Sign-in and admin pages are skipped. Without a token the visitor is sent to
// the login page. A rejected token clears the token pair before redirecting.
// An accepted token fills in the username and shows the authenticated menu.
// Network failures and undecodable profiles are logged and change nothing.
func (g *Guard) Run(ctx context.Context, path string) {
	if guardExempt(path) {
		return
	}

	s := g.svc
	p, err := s.Authenticate(ctx)
	if err == nil {
		if verr := showAuthenticated(s.view, p); verr != nil {
			s.log.Error("could not show user menu", logging.Err(verr))
		}
		return
	}

	switch pferrors.KindOf(err) {
	case pferrors.MissingToken:
		s.log.Info("no token, redirecting to login", zap.String("path", path))
		s.nav.Navigate(s.loginPath)
	case pferrors.InvalidToken:
		s.log.Info("token rejected, redirecting to login", logging.Err(err))
		s.clearTokens()
		s.nav.Navigate(s.loginPath)
	default:
		s.log.Error("error checking token", logging.Err(err))
	}
}
