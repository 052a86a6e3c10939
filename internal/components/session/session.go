package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotLoggedIn = errors.New("session is not logged in")

type (
	// Session is the per-visitor record: login state, username and transcript.
	Session struct {
		id uuid.UUID

		// exchange serializes question/answer pairs so their two appends stay adjacent
		exchange sync.Mutex

		mu         sync.RWMutex
		state      State
		username   string
		transcript Transcript
		// generation bumps on every logout so an in-flight answer is not written into a reset session
		generation uint64
	}

	// View is a read-only snapshot for rendering.
	View struct {
		ID       uuid.UUID
		State    State
		Username string
		// Entries are ordered most-recent-first
		Entries []ChatEntry
	}

	// Responder produces an answer for a validated question.
	Responder func(ctx context.Context, question string) string
)

func newSession(id uuid.UUID, now func() time.Time) *Session {
	return &Session{
		id:         id,
		state:      LoggedOut,
		transcript: newTranscript(now),
	}
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) LoggedIn() bool {
	return s.State() == LoggedIn
}

func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// LogIn moves the session to LoggedIn for username.
func (s *Session) LogIn(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = LoggedIn
	s.username = username
}

// LogOut resets the session to its initial state, dropping the username and transcript.
func (s *Session) LogOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = LoggedOut
	s.username = ""
	s.transcript.reset()
	s.generation++
}

// Exchange appends the question, asks respond for an answer and appends it.
// The question must already be validated as non-blank.
func (s *Session) Exchange(ctx context.Context, question string, respond Responder) (ChatEntry, error) {
	s.exchange.Lock()
	defer s.exchange.Unlock()

	s.mu.Lock()
	if s.state != LoggedIn {
		s.mu.Unlock()
		return ChatEntry{}, ErrNotLoggedIn
	}
	s.transcript.Append(RoleUser, question)
	gen := s.generation
	s.mu.Unlock()

	answer := respond(ctx, question)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return ChatEntry{}, ErrNotLoggedIn
	}
	return s.transcript.Append(RoleAI, answer), nil
}

// Entries returns the transcript in insertion order.
func (s *Session) Entries() []ChatEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transcript.Entries()
}

func (s *Session) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{
		ID:       s.id,
		State:    s.state,
		Username: s.username,
		Entries:  s.transcript.Latest(),
	}
}
