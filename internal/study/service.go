// Package study runs each learner action end to end: build the prompt,
// dispatch it, normalize the reply and award points once the action has
// completed.
package study

import (
	"context"
	"encoding/json"
	"math/rand/v2"

	"github.com/abhisek/betopper/internal/gateway"
	"github.com/abhisek/betopper/internal/ledger"
	"github.com/abhisek/betopper/internal/llm"
	"github.com/abhisek/betopper/internal/logger"
	"github.com/abhisek/betopper/internal/prompts"
)

// Generator is the subset of the gateway the study actions use.
type Generator interface {
	GenerateText(ctx context.Context, req *prompts.Request) (string, error)
	GenerateStructured(ctx context.Context, req *prompts.Request) (json.RawMessage, error)
	GenerateImage(ctx context.Context, req *prompts.Request) ([]llm.Part, error)
	ConverseTurn(ctx context.Context, s *gateway.Session, message string) (string, error)
}

// Awarder applies point awards. *ledger.Service satisfies it.
type Awarder interface {
	Award(ctx context.Context, a ledger.PointAward) (ledger.Profile, error)
}

// Service runs study actions.
type Service struct {
	gen    Generator
	awards Awarder
	log    *logger.Logger

	// IntN returns a value in [0, n); tests replace it to pin paper codes.
	IntN func(n int) int
}

// NewService creates a study service. log may be nil.
func NewService(gen Generator, awards Awarder, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{gen: gen, awards: awards, log: log, IntN: rand.IntN}
}

// award applies a after a completed action. A failed award is logged and
// does not fail the action whose content was already produced.
func (s *Service) award(ctx context.Context, a ledger.PointAward) {
	if _, err := s.awards.Award(ctx, a); err != nil {
		s.log.Warn("award failed", "reason", a.Reason, "amount", a.Amount, "error", err)
	}
}
