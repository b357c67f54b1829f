package server

import (
	"context"
	"net/http"

	"github.com/clinicore/go-clinic-server/auth"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyPrincipal stores the authenticated caller.
const ContextKeyPrincipal ContextKey = "principal"

// PrincipalFromContext returns the authenticated principal injected by
// RequireAuth, or nil when the request never passed through it.
func PrincipalFromContext(ctx context.Context) *auth.Principal {
	principal, _ := ctx.Value(ContextKeyPrincipal).(*auth.Principal)
	return principal
}

// RequireAuth is middleware that validates a Bearer access token and injects
// the resulting principal into the request context.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			principal, err := s.guard.Authenticate(r.Header.Get("Authorization"))
			if err != nil {
				s.writeError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyPrincipal, principal)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireRole is middleware that enforces an exact role match. It must be
// chained after RequireAuth.
func (s *Server) RequireRole(role string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalFromContext(r.Context())
			if principal == nil {
				s.writeError(w, r, auth.InvalidAccessTokenErr)
				return
			}
			if err := s.guard.AuthorizeRole(role, principal.Role); err != nil {
				s.writeError(w, r, err)
				return
			}
			next(w, r)
		}
	}
}
