package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andrasnagy-data/careeradvisor/internal/components/session"
	"github.com/andrasnagy-data/careeradvisor/internal/shared/cookie"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (session.Storer, *cookie.Codec) {
	t.Helper()
	codec, err := cookie.NewCodec([]byte("0123456789abcdef"), false)
	require.NoError(t, err)
	return session.NewStore(zerolog.Nop()), codec
}

func captureSession(got **session.Session) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = GetSession(r.Context())
	})
}

func TestSessionMiddlewareResolvesStoredSession(t *testing.T) {
	store, codec := setup(t)
	sess := store.New()
	sess.LogIn("dipak")
	store.Save(sess)

	rec := httptest.NewRecorder()
	require.NoError(t, codec.Set(rec, sess.ID()))

	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	var got *session.Session
	NewSessionMiddleware(store, codec)(captureSession(&got)).ServeHTTP(httptest.NewRecorder(), req)

	assert.Same(t, sess, got)
}

func TestSessionMiddlewareFreshSession(t *testing.T) {
	store, codec := setup(t)

	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{name: "no cookie"},
		{name: "forged cookie", cookie: &http.Cookie{Name: cookie.Name, Value: "forged"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}

			var got *session.Session
			NewSessionMiddleware(store, codec)(captureSession(&got)).ServeHTTP(httptest.NewRecorder(), req)

			require.NotNil(t, got)
			assert.Equal(t, session.LoggedOut, got.State())
			assert.Equal(t, 0, store.Count())
		})
	}
}

func TestRequireLogin(t *testing.T) {
	store, _ := setup(t)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	loggedIn := store.New()
	loggedIn.LogIn("test")

	tests := []struct {
		name       string
		sess       *session.Session
		htmx       bool
		wantStatus int
		wantHeader string
	}{
		{name: "logged in passes", sess: loggedIn, wantStatus: http.StatusTeapot},
		{name: "logged out redirects", sess: store.New(), wantStatus: http.StatusSeeOther},
		{name: "htmx gets HX-Redirect", sess: store.New(), htmx: true, wantStatus: http.StatusUnauthorized, wantHeader: "/login"},
		{name: "missing session redirects", wantStatus: http.StatusSeeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/chat", nil)
			if tt.sess != nil {
				req = req.WithContext(WithSession(req.Context(), tt.sess))
			}
			if tt.htmx {
				req.Header.Set("HX-Request", "true")
			}

			rec := httptest.NewRecorder()
			RequireLogin(ok).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantHeader, rec.Header().Get("HX-Redirect"))
		})
	}
}
