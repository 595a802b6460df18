package gateway

import (
	"strings"

	"github.com/abhisek/betopper/internal/llm"
	"github.com/abhisek/betopper/internal/prompts"
)

// Session is the client-held state of one chat conversation. Nothing is
// kept server side; the full history travels with every turn.
type Session struct {
	Language string
	History  []llm.Message

	// Fallback is recorded in History in place of a blank reply, so later
	// turns never carry an empty assistant message.
	Fallback string
}

// NewSession starts an empty conversation in the given reply language.
func NewSession(language string) *Session {
	if strings.TrimSpace(language) == "" {
		language = prompts.DefaultLanguage
	}
	return &Session{Language: language}
}

// Exchanges returns the number of completed user/assistant round trips.
func (s *Session) Exchanges() int {
	return len(s.History) / 2
}
