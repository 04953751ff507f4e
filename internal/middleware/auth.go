package middleware

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/s/bitmentor/internal/session"
)

// RequireLogin builds a wrapper that lets only signed-in users through.
// Anonymous requests are redirected to the login page; the resolved session
// is attached to the request context for the wrapped handler.
func RequireLogin(m *session.Manager, logger zerolog.Logger) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			s, err := m.Current(r)
			if err != nil {
				if errors.Is(err, session.ErrUnauthenticated) {
					http.Redirect(w, r, "/login", http.StatusSeeOther)
					return
				}
				logger.Error().Err(err).Str("path", r.URL.Path).Msg("session lookup failed")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
		}
	}
}
