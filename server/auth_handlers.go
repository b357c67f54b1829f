package server

import (
	"net/http"
	"time"

	"github.com/clinicore/go-clinic-server/users"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// RegisterHandler creates a new user account. Registration never starts a
// session; the client logs in afterwards.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		user, err := s.sessions.Register(r.Context(), req.Email, req.Password)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, registerResponse{
			ID:    user.ID,
			Email: user.Email,
			Role:  string(user.Role),
		})
	}
}

// LoginHandler verifies credentials and returns an access token in the body.
// The refresh token travels only in an httpOnly cookie so script can never
// read it.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		pair, err := s.sessions.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		s.setRefreshCookie(w, pair.RefreshToken)
		writeJSON(w, http.StatusOK, tokenResponse{AccessToken: pair.AccessToken})
	}
}

// RefreshHandler rotates the refresh token presented in the cookie (or, for
// non-browser clients, the request body) and returns a fresh access token.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		presented := s.presentedRefreshToken(r)

		pair, err := s.sessions.Refresh(r.Context(), presented)
		if err != nil {
			s.clearRefreshCookie(w)
			s.writeError(w, r, err)
			return
		}

		s.setRefreshCookie(w, pair.RefreshToken)
		writeJSON(w, http.StatusOK, tokenResponse{AccessToken: pair.AccessToken})
	}
}

// LogoutHandler ends the session named by the refresh cookie. It always
// returns 200: logout reveals nothing about token validity, and a store
// failure is logged rather than surfaced.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.sessions.Logout(r.Context(), s.presentedRefreshToken(r)); err != nil {
			s.logger.Error().Err(err).Msg("logout failed to clear session")
		}

		s.clearRefreshCookie(w)
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

type validatePasswordRequest struct {
	Password string `json:"password"`
}

type validatePasswordResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ValidatePasswordHandler lets clients pre-check password strength before
// submitting a registration form.
func (s *Server) ValidatePasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req validatePasswordRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		if err := users.ValidatePasswordStrength(req.Password); err != nil {
			writeJSON(w, http.StatusOK, validatePasswordResponse{Valid: false, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, validatePasswordResponse{Valid: true})
	}
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// presentedRefreshToken prefers the cookie and falls back to the body.
func (s *Server) presentedRefreshToken(r *http.Request) string {
	if cookie, err := r.Cookie(s.config.GetCookieName()); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		return ""
	}
	return req.RefreshToken
}

func (s *Server) setRefreshCookie(w http.ResponseWriter, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.GetCookieName(),
		Value:    refreshToken,
		Path:     s.config.GetCookiePath(),
		MaxAge:   int(s.config.GetRefreshTokenExpiry() / time.Second),
		HttpOnly: true,
		Secure:   s.config.GetCookieSecure(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.GetCookieName(),
		Value:    "",
		Path:     s.config.GetCookiePath(),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.config.GetCookieSecure(),
		SameSite: http.SameSiteLaxMode,
	})
}
