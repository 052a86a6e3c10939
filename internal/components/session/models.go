package session

import "time"

type (
	Role string

	// ChatEntry is one message in a transcript. Entries are never modified after Append.
	ChatEntry struct {
		Role      Role      `json:"role"`
		Message   string    `json:"message"`
		CreatedAt time.Time `json:"created_at"`
	}

	// State of a visitor's session.
	State int
)

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	switch s {
	case LoggedIn:
		return "logged_in"
	default:
		return "logged_out"
	}
}
