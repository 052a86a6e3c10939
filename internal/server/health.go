package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/andrasnagy-data/careeradvisor/internal/components/advisor"
	"github.com/andrasnagy-data/careeradvisor/internal/components/session"
	"github.com/rs/zerolog/hlog"
)

type (
	// HealthSrvc reports the active session count and whether remote inference is configured
	HealthSrvc struct {
		sessions  session.Storer
		responder *advisor.Responder
		now       func() time.Time
	}

	// HealthResponse represents the response structure for health check endpoint
	HealthResponse struct {
		Status         string    `json:"status"`
		Timestamp      time.Time `json:"timestamp"`
		ActiveSessions int       `json:"active_sessions"`
		RemoteEnabled  bool      `json:"remote_enabled"`
	}
)

func NewHealthHandler(srvc *HealthSrvc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := hlog.FromRequest(r)

		response := srvc.check()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Error().Err(err).Msg("Failed to encode health check response")
			return
		}
		logger.Debug().Int("active_sessions", response.ActiveSessions).Msg("Healthcheck ok")
	}
}

func NewHealthSrvc(sessions session.Storer, responder *advisor.Responder) *HealthSrvc {
	return &HealthSrvc{sessions: sessions, responder: responder, now: time.Now}
}

func (s *HealthSrvc) check() HealthResponse {
	return HealthResponse{
		Status:         "serving",
		Timestamp:      s.now().UTC(),
		ActiveSessions: s.sessions.Count(),
		RemoteEnabled:  s.responder.RemoteEnabled(),
	}
}
