package auth

import (
	"errors"
	"fmt"
	"html"
	"html/template"
	"net/http"

	"github.com/andrasnagy-data/careeradvisor/internal/components/session"
	"github.com/andrasnagy-data/careeradvisor/internal/shared/config"
	"github.com/andrasnagy-data/careeradvisor/internal/shared/cookie"
	"github.com/andrasnagy-data/careeradvisor/internal/shared/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
)

type (
	Router struct {
		service   servicer
		sessions  session.Storer
		codec     *cookie.Codec
		templates *template.Template
		version   string
	}
)

func NewRouter(service servicer, sessions session.Storer, codec *cookie.Codec, templates *template.Template, cfg *config.Config) chi.Router {
	router := &Router{
		service:   service,
		sessions:  sessions,
		codec:     codec,
		templates: templates,
		version:   cfg.Version,
	}
	return router.Routes()
}

func (r *Router) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", r.Home)
	router.Get("/login", r.LoginPage)
	router.Post("/login", r.HandleLogInFlow)
	router.Post("/login/signup", r.HandleSignUp)
	router.Post("/logout", r.HandleLogOut)
	return router
}

// Home sends visitors to the page matching their session state
func (r *Router) Home(w http.ResponseWriter, req *http.Request) {
	if middleware.GetSession(req.Context()).LoggedIn() {
		http.Redirect(w, req, "/chat", http.StatusSeeOther)
		return
	}
	http.Redirect(w, req, "/login", http.StatusSeeOther)
}

func (r *Router) LoginPage(w http.ResponseWriter, req *http.Request) {
	logger := hlog.FromRequest(req)

	if middleware.GetSession(req.Context()).LoggedIn() {
		http.Redirect(w, req, "/chat", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	if err := r.templates.ExecuteTemplate(w, "login.html", loginPageData{Version: r.version}); err != nil {
		logger.Error().Err(err).Msg("Failed to execute login template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (r *Router) HandleLogInFlow(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	in := credentialsFromForm(req)
	logger.Debug().Str("username", in.Username).Msg("Login attempt")

	user, err := r.service.Login(ctx, in.Username, in.Password)
	if err != nil {
		logger.Warn().Err(err).Str("username", in.Username).Msg("Login failed: invalid credentials")
		writeFragment(w, http.StatusUnauthorized, "error", "Invalid username or password ❌")
		return
	}

	// A fresh session ID on every login so a pre-login cookie is never promoted
	sess := r.sessions.New()
	sess.LogIn(user.Username)

	if err := r.codec.Set(w, sess.ID()); err != nil {
		logger.Error().Err(err).Str("username", in.Username).Msg("Login failed: could not set cookie")
		writeFragment(w, http.StatusInternalServerError, "error", "Login failed. Please try again.")
		return
	}
	r.sessions.Save(sess)

	if prev := middleware.GetSession(ctx); prev != nil && prev.LoggedIn() {
		prev.LogOut()
		r.sessions.Delete(prev.ID())
	}

	logger.Info().Str("username", user.Username).Str("session_id", sess.ID().String()).Msg("Login successful")

	w.Header().Set("HX-Redirect", "/chat")
	writeFragment(w, http.StatusOK, "success", fmt.Sprintf("Login Successful! Welcome %s 👋", user.Username))
}

func (r *Router) HandleSignUp(w http.ResponseWriter, req *http.Request) {
	logger := hlog.FromRequest(req)

	in := credentialsFromForm(req)

	err := r.service.SignUp(req.Context(), in.Username, in.Password)
	if errors.Is(err, ErrUsernameTaken) {
		logger.Warn().Str("username", in.Username).Msg("Sign-up rejected: username taken")
		writeFragment(w, http.StatusConflict, "error", "Username already exists ❌")
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("username", in.Username).Msg("Sign-up failed")
		writeFragment(w, http.StatusInternalServerError, "error", "Sign-up failed. Please try again.")
		return
	}

	writeFragment(w, http.StatusCreated, "success", "Account created! Please login 🔑")
}

// HandleLogOut resets the session and forgets it
func (r *Router) HandleLogOut(w http.ResponseWriter, req *http.Request) {
	logger := hlog.FromRequest(req)

	sess := middleware.GetSession(req.Context())
	if sess != nil {
		username := sess.Username()
		sess.LogOut()
		r.sessions.Delete(sess.ID())
		logger.Info().Str("username", username).Str("session_id", sess.ID().String()).Msg("Logged out")
	}
	r.codec.Clear(w)

	if req.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, req, "/login", http.StatusSeeOther)
}

func credentialsFromForm(req *http.Request) CredentialsIn {
	return CredentialsIn{
		Username: req.FormValue("username"),
		Password: req.FormValue("password"),
	}
}

// writeFragment writes an HTMX message fragment
func writeFragment(w http.ResponseWriter, status int, class, message string) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<div class="%s">%s</div>`, class, html.EscapeString(message))
}
