package session

import (
	"slices"
	"time"
)

// Transcript is an append-only log of chat entries in insertion order.
// It is not safe for concurrent use; Session serializes access.
type Transcript struct {
	entries []ChatEntry
	now     func() time.Time
}

func newTranscript(now func() time.Time) Transcript {
	return Transcript{now: now}
}

func (t *Transcript) Append(role Role, message string) ChatEntry {
	entry := ChatEntry{Role: role, Message: message, CreatedAt: t.now()}
	t.entries = append(t.entries, entry)
	return entry
}

// Entries returns a copy in insertion order.
func (t *Transcript) Entries() []ChatEntry {
	return slices.Clone(t.entries)
}

// Latest returns a copy ordered most-recent-first, for display.
func (t *Transcript) Latest() []ChatEntry {
	out := slices.Clone(t.entries)
	slices.Reverse(out)
	return out
}

func (t *Transcript) reset() {
	t.entries = nil
}
