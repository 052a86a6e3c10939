package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type (
	// Storer keeps logged-in sessions in process memory.
	Storer interface {
		New() *Session
		Save(*Session)
		Get(uuid.UUID) (*Session, bool)
		Delete(uuid.UUID)
		Count() int
	}

	store struct {
		logger   zerolog.Logger
		mu       sync.RWMutex
		sessions map[uuid.UUID]*Session
		now      func() time.Time
	}
)

func NewStore(logger zerolog.Logger) Storer {
	return newStore(logger, time.Now)
}

func newStore(logger zerolog.Logger, now func() time.Time) *store {
	return &store{
		logger:   logger.With().Str("component", "session").Logger(),
		sessions: make(map[uuid.UUID]*Session),
		now:      now,
	}
}

// New returns a fresh LoggedOut session that is not yet stored.
// Anonymous visitors never reach the map, so it only grows with logins.
func (s *store) New() *Session {
	return newSession(uuid.New(), s.now)
}

func (s *store) Save(sess *Session) {
	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	count := len(s.sessions)
	s.mu.Unlock()

	s.logger.Debug().Str("session_id", sess.ID().String()).Int("active", count).Msg("Session saved")
}

func (s *store) Get(id uuid.UUID) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *store) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	s.logger.Debug().Str("session_id", id.String()).Msg("Session deleted")
}

func (s *store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
