package study

import (
	"context"
	"fmt"
	"io"

	"github.com/abhisek/betopper/internal/curriculum"
	"github.com/abhisek/betopper/internal/ledger"
	"github.com/abhisek/betopper/internal/normalize"
	"github.com/abhisek/betopper/internal/prompts"
)

// Notes fetches revision notes and awards the notes bonus.
func (s *Service) Notes(ctx context.Context, p prompts.Params) (normalize.TextResult, error) {
	req, err := prompts.Notes(p)
	if err != nil {
		return normalize.TextResult{}, fmt.Errorf("notes: %w", err)
	}
	res, err := s.text(ctx, req)
	if err != nil {
		return res, fmt.Errorf("notes: %w", err)
	}
	s.award(ctx, ledger.AwardNotes)
	return res, nil
}

// SaveNotes writes fetched notes to w and awards the copy bonus. When w
// is also an io.Closer it is closed here, and the bonus is only awarded
// once the write and the close both succeed.
func (s *Service) SaveNotes(ctx context.Context, w io.Writer, notes normalize.TextResult) error {
	_, err := io.WriteString(w, notes.Body)
	if c, ok := w.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	s.award(ctx, ledger.AwardNoteCopied)
	return nil
}

// ExpectedQuestions fetches a list of likely exam questions.
func (s *Service) ExpectedQuestions(ctx context.Context, p prompts.Params) (normalize.TextResult, error) {
	req, err := prompts.ExpectedQuestions(p)
	if err != nil {
		return normalize.TextResult{}, fmt.Errorf("expected questions: %w", err)
	}
	res, err := s.text(ctx, req)
	if err != nil {
		return res, fmt.Errorf("expected questions: %w", err)
	}
	return res, nil
}

// Activity fetches a lab activity write-up.
func (s *Service) Activity(ctx context.Context, class curriculum.ClassLevel, topic string) (normalize.TextResult, error) {
	req, err := prompts.Activity(class, topic)
	if err != nil {
		return normalize.TextResult{}, fmt.Errorf("activity: %w", err)
	}
	res, err := s.text(ctx, req)
	if err != nil {
		return res, fmt.Errorf("activity: %w", err)
	}
	return res, nil
}

// AnswerKey fetches a marking scheme and awards the review bonus.
func (s *Service) AnswerKey(ctx context.Context, kind prompts.AnswerKeyKind, p prompts.Params) (normalize.TextResult, error) {
	req, err := prompts.AnswerKey(kind, p)
	if err != nil {
		return normalize.TextResult{}, fmt.Errorf("answer key: %w", err)
	}
	res, err := s.text(ctx, req)
	if err != nil {
		return res, fmt.Errorf("answer key: %w", err)
	}
	s.award(ctx, ledger.AwardAnswerKey)
	return res, nil
}

func (s *Service) text(ctx context.Context, req *prompts.Request) (normalize.TextResult, error) {
	raw, err := s.gen.GenerateText(ctx, req)
	if err != nil {
		return normalize.TextResult{}, err
	}
	return normalize.Text(raw)
}
