package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/andrasnagy-data/careeradvisor/internal/components/session"
	"github.com/andrasnagy-data/careeradvisor/internal/shared/cookie"
	"github.com/rs/zerolog/hlog"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const sessionKey contextKey = "session"

// GetSession returns the visitor's session attached by NewSessionMiddleware.
func GetSession(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey).(*session.Session)
	return sess
}

// WithSession attaches sess to ctx.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// NewSessionMiddleware resolves the session cookie into a stored session.
// Visitors without a valid cookie get a fresh LoggedOut session that is only stored on login.
func NewSessionMiddleware(store session.Storer, codec *cookie.Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess *session.Session

			if id, err := codec.Get(r); err == nil {
				if stored, ok := store.Get(id); ok {
					sess = stored
				}
			} else if !errors.Is(err, http.ErrNoCookie) {
				hlog.FromRequest(r).Debug().Err(err).Msg("Ignoring invalid session cookie")
			}

			if sess == nil {
				sess = store.New()
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

// RequireLogin sends LoggedOut sessions to /login. HTMX requests get an HX-Redirect instead of a 303.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := GetSession(r.Context())
		if sess == nil || !sess.LoggedIn() {
			if r.Header.Get("HX-Request") == "true" {
				w.Header().Set("HX-Redirect", "/login")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
