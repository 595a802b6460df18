package study

import (
	"context"
	"fmt"

	"github.com/abhisek/betopper/internal/ledger"
	"github.com/abhisek/betopper/internal/normalize"
	"github.com/abhisek/betopper/internal/prompts"
)

// SetKind distinguishes question bank sets from daily practice sets.
type SetKind string

const (
	SetQuestionBank  SetKind = "question-bank"
	SetDailyPractice SetKind = "dpp"
)

// QuestionSet is a generated set together with which solutions the
// learner has already revealed.
type QuestionSet struct {
	Kind     SetKind
	Params   prompts.Params
	Items    []normalize.QuestionItem
	revealed map[int]bool
}

// Revealed reports whether item i's solution has been shown.
func (q *QuestionSet) Revealed(i int) bool {
	return q.revealed[i]
}

// QuestionBank generates a practice set and awards the set bonus.
func (s *Service) QuestionBank(ctx context.Context, p prompts.Params) (*QuestionSet, error) {
	set, err := s.questionSet(ctx, SetQuestionBank, p, prompts.QuestionBank)
	if err != nil {
		return nil, fmt.Errorf("question bank: %w", err)
	}
	s.award(ctx, ledger.AwardQuestionBank)
	return set, nil
}

// DailyPractice generates a daily practice set and awards the set bonus.
func (s *Service) DailyPractice(ctx context.Context, p prompts.Params) (*QuestionSet, error) {
	set, err := s.questionSet(ctx, SetDailyPractice, p, prompts.DailyPractice)
	if err != nil {
		return nil, fmt.Errorf("daily practice: %w", err)
	}
	s.award(ctx, ledger.AwardDPP)
	return set, nil
}

// RevealSolution returns item i and awards the reveal bonus the first
// time that item is revealed. first reports whether this was that time.
func (s *Service) RevealSolution(ctx context.Context, set *QuestionSet, i int) (item normalize.QuestionItem, first bool, err error) {
	if i < 0 || i >= len(set.Items) {
		return item, false, fmt.Errorf("reveal solution: question %d out of range 1-%d", i+1, len(set.Items))
	}
	item = set.Items[i]
	if set.revealed[i] {
		return item, false, nil
	}
	if set.revealed == nil {
		set.revealed = map[int]bool{}
	}
	set.revealed[i] = true

	switch set.Kind {
	case SetDailyPractice:
		s.award(ctx, ledger.AwardDPPRevealed)
	default:
		s.award(ctx, ledger.AwardQuestionRevealed)
	}
	return item, true, nil
}

func (s *Service) questionSet(ctx context.Context, kind SetKind, p prompts.Params, build func(prompts.Params) (*prompts.Request, error)) (*QuestionSet, error) {
	req, err := build(p)
	if err != nil {
		return nil, err
	}
	raw, err := s.gen.GenerateStructured(ctx, req)
	if err != nil {
		return nil, err
	}
	res, err := normalize.Items(raw)
	if err != nil {
		s.log.Warn("rejected question set", "kind", string(kind), "error", err)
		return nil, err
	}
	return &QuestionSet{Kind: kind, Params: p, Items: res.Items}, nil
}
