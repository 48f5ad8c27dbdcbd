// Package redirect chooses the post-authentication navigation target.
package redirect

import (
	"strings"

	"github.com/aadeshbhujbal/healthcare-auth/domain"
)

// Resolver maps a resolved user and an optional explicit target to a path
type Resolver struct {
	dashboards map[domain.Role]string
	loginPath  string
	authPrefix string
}

// NewResolver creates a resolver from the configured path map
func NewResolver(dashboards map[domain.Role]string, loginPath, authPrefix string) *Resolver {
	return &Resolver{
		dashboards: dashboards,
		loginPath:  loginPath,
		authPrefix: authPrefix,
	}
}

// Resolve picks the destination path. An explicit redirect wins unless it
// points back into the auth section; then the user's role dashboard; then
// the login path. The ordering is load-bearing: it preserves "return to
// where the user came from" without bouncing back into auth pages.
func (r *Resolver) Resolve(user *domain.User, explicit string) string {
	if explicit != "" && !r.targetsAuth(explicit) {
		return explicit
	}
	if user != nil {
		if path, ok := r.dashboards[user.Role]; ok {
			return path
		}
	}
	return r.loginPath
}

// LoginPath returns the fallback destination
func (r *Resolver) LoginPath() string { return r.loginPath }

// Dashboard returns the configured landing page for a role, or the login
// path when the role has none
func (r *Resolver) Dashboard(role domain.Role) string {
	if path, ok := r.dashboards[role]; ok {
		return path
	}
	return r.loginPath
}

func (r *Resolver) targetsAuth(path string) bool {
	return r.authPrefix != "" && strings.HasPrefix(path, r.authPrefix)
}
