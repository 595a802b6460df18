package study

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/betopper/internal/normalize"
	"github.com/abhisek/betopper/internal/prompts"
)

// Paper is a generated sample paper split for page-by-page reading.
type Paper struct {
	Code       string
	Serial     string
	Mode       prompts.PaperMode
	Cycle      string
	TotalMarks int
	Text       string
	Sections   []string
}

// SamplePaper generates a full-length paper. No points are awarded.
func (s *Service) SamplePaper(ctx context.Context, p prompts.Params, mode prompts.PaperMode, cycle string) (*Paper, error) {
	if strings.TrimSpace(cycle) == "" {
		cycle = prompts.DefaultPaperCycle
	}
	req, err := prompts.SamplePaper(p, mode, cycle)
	if err != nil {
		return nil, fmt.Errorf("sample paper: %w", err)
	}
	res, err := s.text(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("sample paper: %w", err)
	}
	return &Paper{
		Code:       s.paperCode(p.Board, p.Subject),
		Serial:     fmt.Sprintf("%06d", 100000+s.IntN(900000)),
		Mode:       mode,
		Cycle:      cycle,
		TotalMarks: prompts.PaperTotalMarks(),
		Text:       res.Body,
		Sections:   normalize.SplitPaperSections(res.Body),
	}, nil
}

// paperCode renders BT-<board>-<subject>-<nnn> using the first two letters
// of board and subject.
func (s *Service) paperCode(board, subject string) string {
	return fmt.Sprintf("BT-%s-%s-%d", prefix(board), prefix(subject), 100+s.IntN(900))
}

func prefix(s string) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.ToUpper(string(r))
}
