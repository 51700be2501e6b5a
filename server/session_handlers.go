package server

import (
	"encoding/json"
	"net/http"

	"github.com/tareahub/go-tarea-server/auth"
	"github.com/tareahub/go-tarea-server/internal/apperrors"
)

type loginRequest struct {
	Correo     string `json:"correo"`
	Contrasena string `json:"contrasena"`
}

// LoginHandler exchanges credentials for a token pair. The pair is returned
// both in the envelope and as Authorization / x-refreshtoken headers so
// clients can pick either channel.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apperrors.BadRequestf("invalid request body"))
			return
		}

		pair, err := s.auth.Login(r.Context(), req.Correo, req.Contrasena)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Authorization", "Bearer "+pair.Token)
		w.Header().Set(HeaderRefreshToken, pair.RefreshToken)
		writeResponse(w, successResponse("login successful", pair, http.StatusOK))
	}
}

// LogoutHandler revokes the authenticated principal's access token and ends
// the session. Runs behind RequireAuth, so the token here has already passed
// the session core.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := auth.PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, apperrors.Unauthorizedf("user not found"))
			return
		}

		if err := s.auth.Logout(r.Context(), principal.AccessToken); err != nil {
			writeError(w, err)
			return
		}
		writeResponse(w, successResponse("logout successful", nil, http.StatusOK))
	}
}

// VerifyTokenHandler reports whether the caller's tokens pass the session
// core. The middleware does the actual work; reaching the handler means
// success, with any rotated tokens already on the response headers.
func (s *Server) VerifyTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, successResponse("token verified", nil, http.StatusOK))
	}
}
