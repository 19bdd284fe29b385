package core

import (
	"net/http"
	"slices"

	"github.com/joeydtaylor/steeze-plugin/pkg/manifest"
	"github.com/joeydtaylor/steeze-plugin/pkg/middleware/auth"
)

// withGuard admits a caller that is authenticated and, when listed, matches one
// of the guard's users and one of its roles. The admin role matches both.
func withGuard(next http.HandlerFunc, a *auth.Middleware, g manifest.Guard) http.HandlerFunc {
	if !g.Active() {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		// Without auth middleware nobody can satisfy a guard.
		if a == nil || !a.IsAuthenticated(ctx) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if len(g.Users) > 0 && !slices.ContainsFunc(g.Users, func(u string) bool { return a.IsUser(ctx, u) }) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		if len(g.Roles) > 0 && !slices.ContainsFunc(g.Roles, func(role string) bool { return a.IsRole(ctx, auth.Role{Name: role}) }) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}
