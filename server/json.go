package server

import (
	"encoding/json"
	"net/http"

	"github.com/clinicore/go-clinic-server/auth"
	apperrors "github.com/clinicore/go-clinic-server/internal/errors"
	"github.com/clinicore/go-clinic-server/users"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}

func decodeJSON(r *http.Request, into any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		return apperrors.Validationf("invalid request body")
	}
	return nil
}

// writeError maps domain errors onto the HTTP taxonomy. Anything unrecognised
// is an internal error: logged in full, reported with a generic body so no
// storage or token detail leaks to clients.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrValidation),
		apperrors.Is(err, auth.MissingCredentialsErr):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))

	case apperrors.Is(err, auth.InvalidCredentialsErr),
		apperrors.Is(err, auth.InvalidRefreshTokenErr),
		apperrors.Is(err, auth.TokenReuseErr),
		apperrors.Is(err, auth.InvalidAccessTokenErr):
		writeJSON(w, http.StatusUnauthorized, errorBody(err.Error()))

	case apperrors.Is(err, auth.ForbiddenErr):
		writeJSON(w, http.StatusForbidden, errorBody(err.Error()))

	case apperrors.Is(err, apperrors.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))

	case apperrors.Is(err, apperrors.ErrConflict),
		apperrors.Is(err, users.EmailTakenErr):
		writeJSON(w, http.StatusConflict, errorBody(err.Error()))

	default:
		s.logger.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorBody("internal server error"))
	}
}
