package nav

import "github.com/spec-kit/kclean/internal/session"

// Guard gates every navigation through the session manager's authorize
// decision.
type Guard struct {
	session *session.Manager
}

// NewGuard builds a guard over the session manager.
func NewGuard(manager *session.Manager) *Guard {
	return &Guard{session: manager}
}

// Check resolves a navigation attempt. Unknown paths redirect to the public
// root; public routes are always allowed; protected routes defer to the
// session manager.
func (g *Guard) Check(path string) session.Decision {
	route, ok := Lookup(path)
	if !ok {
		return session.Decision{Kind: session.DecisionRedirect, RedirectPath: PublicRoot}
	}
	if route.Public {
		return session.Decision{Kind: session.DecisionAllow}
	}
	return g.session.Authorize(route.Roles...)
}
