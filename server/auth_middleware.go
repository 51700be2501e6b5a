package server

import (
	"net/http"

	"github.com/tareahub/go-tarea-server/auth"
)

// RequireAuth runs the session core over the request's Authorization and
// x-refreshtoken headers. On success the principal lands in the request
// context and any rotated tokens are echoed back as response headers, so a
// client that sees a new Authorization or x-refreshtoken header must replace
// its stored copies.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			principal, err := s.auth.Authenticate(r.Context(),
				r.Header.Get("Authorization"), r.Header.Get(HeaderRefreshToken))
			if err != nil {
				writeError(w, err)
				return
			}

			w.Header().Set("Authorization", "Bearer "+principal.AccessToken)
			if principal.RefreshRotated {
				w.Header().Set(HeaderRefreshToken, principal.RefreshToken)
			}

			next(w, r.WithContext(auth.ContextWithPrincipal(r.Context(), principal)))
		}
	}
}

// RequireTareaOwner rejects requests whose authenticated principal does not
// own the tarea named by the {id} path value. Must be chained after
// RequireAuth.
func (s *Server) RequireTareaOwner() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			principal, _ := auth.PrincipalFromContext(r.Context())
			if err := s.auth.AuthorizeTareaOwner(r.Context(), principal, r.PathValue("id")); err != nil {
				writeError(w, err)
				return
			}
			next(w, r)
		}
	}
}
