package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"testing"

	"github.com/andrasnagy-data/careeradvisor/internal/components/advisor"
	"github.com/andrasnagy-data/careeradvisor/internal/components/auth"
	"github.com/andrasnagy-data/careeradvisor/internal/components/session"
	"github.com/andrasnagy-data/careeradvisor/internal/shared/config"
	"github.com/andrasnagy-data/careeradvisor/internal/shared/cookie"
	"github.com/andrasnagy-data/careeradvisor/internal/shared/telemetry"
	"github.com/andrasnagy-data/careeradvisor/web"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, session.Storer) {
	t.Helper()

	cfg := &config.Config{
		Version:     "test",
		Environment: "dev",
		SeedUsers:   map[string]string{"dipak": "hackathon", "test": "1234"},
	}
	logger := zerolog.Nop()

	codec, err := cookie.NewCodec([]byte("0123456789abcdef"), false)
	require.NoError(t, err)
	templates, err := web.NewTemplates()
	require.NoError(t, err)

	sessions := session.NewStore(logger)
	responder, err := advisor.NewResponder(advisor.NewGenerator(cfg), logger, telemetry.Noop())
	require.NoError(t, err)

	srv := NewServer(params{
		Config:        cfg,
		Logger:        logger,
		HealthHandler: NewHealthHandler(NewHealthSrvc(sessions, responder)),
		Sessions:      sessions,
		Codec:         codec,
		AuthRouter:    auth.NewRouter(auth.NewAuthService(cfg, logger), sessions, codec, templates, cfg),
		AdvisorRouter: advisor.NewRouter(advisor.NewService(responder), templates),
	})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, sessions
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func post(t *testing.T, c *http.Client, target string, values url.Values) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	resp, err := c.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "serving", body.Status)
	assert.Equal(t, 0, body.ActiveSessions)
	assert.False(t, body.RemoteEnabled)
}

func TestChatRedirectsToLogin(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := newClient(t).Get(ts.URL + "/chat")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLoginAskLogout(t *testing.T) {
	ts, sessions := newTestServer(t)
	c := newClient(t)

	resp := post(t, c, ts.URL+"/login", url.Values{"username": {"dipak"}, "password": {"hackathon"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/chat", resp.Header.Get("HX-Redirect"))
	assert.Equal(t, 1, sessions.Count())

	page, err := c.Get(ts.URL + "/chat")
	require.NoError(t, err)
	page.Body.Close()
	assert.Equal(t, http.StatusOK, page.StatusCode)

	resp = post(t, c, ts.URL+"/chat/ask", url.Values{"question": {"I need internship and resume tips"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = post(t, c, ts.URL+"/chat/ask", url.Values{"question": {"   "}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = post(t, c, ts.URL+"/logout", nil)
	assert.Equal(t, "/login", resp.Header.Get("HX-Redirect"))
	assert.Equal(t, 0, sessions.Count())

	after, err := c.Get(ts.URL + "/chat")
	require.NoError(t, err)
	after.Body.Close()
	assert.Equal(t, http.StatusSeeOther, after.StatusCode)
}

func TestSignUpThenLogin(t *testing.T) {
	ts, _ := newTestServer(t)
	c := newClient(t)

	resp := post(t, c, ts.URL+"/login/signup", url.Values{"username": {"alice"}, "password": {"pw"}})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = post(t, c, ts.URL+"/login/signup", url.Values{"username": {"test"}, "password": {"pw"}})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = post(t, c, ts.URL+"/login", url.Values{"username": {"test"}, "password": {"pw"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = post(t, c, ts.URL+"/login", url.Values{"username": {"alice"}, "password": {"pw"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
