package advisor

import (
	"encoding/csv"
	"errors"
	"html/template"
	"net/http"

	"github.com/andrasnagy-data/careeradvisor/internal/components/session"
	"github.com/andrasnagy-data/careeradvisor/internal/shared/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
)

type (
	Router struct {
		service   servicer
		templates *template.Template
	}
)

func NewRouter(service servicer, templates *template.Template) chi.Router {
	router := &Router{service: service, templates: templates}
	return router.Routes()
}

func (r *Router) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireLogin)

	router.Get("/", r.ChatPage)
	router.Post("/ask", r.Ask)
	router.Get("/export", r.ExportCSV)

	return router
}

// ChatPage renders the question form and the transcript, newest first
func (r *Router) ChatPage(w http.ResponseWriter, req *http.Request) {
	logger := hlog.FromRequest(req)
	view := middleware.GetSession(req.Context()).View()

	data := chatPageData{Username: view.Username, Entries: view.Entries}

	w.Header().Set("Content-Type", "text/html")
	if err := r.templates.ExecuteTemplate(w, "chat.html", data); err != nil {
		logger.Error().Err(err).Msg("Failed to execute chat template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Ask answers one question and returns the refreshed transcript fragment for HTMX
func (r *Router) Ask(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)
	sess := middleware.GetSession(ctx)

	question, err := ValidateQuestion(req.FormValue("question"))
	if err != nil {
		logger.Debug().Msg("Rejected blank question")
		r.renderTranscript(w, req, http.StatusUnprocessableEntity, sess, "Please type a question.")
		return
	}

	answer, err := sess.Exchange(ctx, question, r.service.Respond)
	if errors.Is(err, session.ErrNotLoggedIn) {
		// logged out while the answer was being produced
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("Error answering question")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	logger.Info().
		Str("username", sess.Username()).
		Int("question_length", len(question)).
		Int("answer_length", len(answer.Message)).
		Msg("Question answered")

	r.renderTranscript(w, req, http.StatusOK, sess, "")
}

func (r *Router) renderTranscript(w http.ResponseWriter, req *http.Request, status int, sess *session.Session, warning string) {
	view := sess.View()
	data := chatPageData{Username: view.Username, Warning: warning, Entries: view.Entries}

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(status)
	if err := r.templates.ExecuteTemplate(w, "transcript", data); err != nil {
		hlog.FromRequest(req).Error().Err(err).Msg("Failed to execute transcript template")
	}
}

// ExportCSV exports the transcript in insertion order
func (r *Router) ExportCSV(w http.ResponseWriter, req *http.Request) {
	logger := hlog.FromRequest(req)
	sess := middleware.GetSession(req.Context())

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=transcript.csv")

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Role", "Message", "Created At"}); err != nil {
		logger.Error().Err(err).Msg("Error writing CSV header")
		return
	}

	for _, entry := range sess.Entries() {
		record := []string{
			string(entry.Role),
			entry.Message,
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			logger.Error().Err(err).Msg("Error writing CSV record")
			return
		}
	}
}
