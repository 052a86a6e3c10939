package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/andrasnagy-data/careeradvisor/internal/shared/config"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
)

type (
	servicer interface {
		Login(ctx context.Context, username, password string) (*User, error)
		SignUp(ctx context.Context, username, password string) error
	}

	// service is the in-memory credential store. Passwords are compared verbatim.
	service struct {
		logger zerolog.Logger
		mu     sync.RWMutex
		users  map[string]string
	}
)

func NewAuthService(cfg *config.Config, logger zerolog.Logger) servicer {
	return newService(cfg.SeedUsers, logger)
}

func newService(seed map[string]string, logger zerolog.Logger) *service {
	users := make(map[string]string, len(seed))
	for username, password := range seed {
		users[username] = password
	}

	logger = logger.With().Str("component", "auth").Logger()
	logger.Debug().Int("seeded_users", len(users)).Msg("Credential store ready")

	return &service{logger: logger, users: users}
}

// Login succeeds iff username exists and its password matches exactly.
func (s *service) Login(_ context.Context, username, password string) (*User, error) {
	s.mu.RLock()
	stored, ok := s.users[username]
	s.mu.RUnlock()

	if !ok || stored != password {
		return nil, ErrInvalidCredentials
	}
	return &User{Username: username}, nil
}

// SignUp registers a new user. An existing username is never overwritten.
func (s *service) SignUp(_ context.Context, username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; ok {
		return ErrUsernameTaken
	}
	s.users[username] = password

	s.logger.Info().Str("username", username).Int("users", len(s.users)).Msg("User signed up")
	return nil
}
