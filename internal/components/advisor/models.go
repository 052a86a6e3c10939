package advisor

import "github.com/andrasnagy-data/careeradvisor/internal/components/session"

type (
	inferenceRequest struct {
		Inputs string `json:"inputs"`
	}

	// inferenceResult is one element of the text-generation response array
	inferenceResult struct {
		GeneratedText *string `json:"generated_text"`
	}

	// Source says which stage produced an answer
	Source string

	chatPageData struct {
		Username string
		Warning  string
		// Entries are most-recent-first
		Entries []session.ChatEntry
	}
)

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)
