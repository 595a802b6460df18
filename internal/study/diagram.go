package study

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/betopper/internal/curriculum"
	"github.com/abhisek/betopper/internal/normalize"
	"github.com/abhisek/betopper/internal/prompts"
)

// DiagramPackage joins the description and image halves of a diagram.
// Either half may be missing; its error says why.
type DiagramPackage struct {
	Topic          string
	Description    *normalize.DiagramResult
	Image          *normalize.ImageResult
	DescriptionErr error
	ImageErr       error
}

// Diagram issues the description and image requests concurrently and
// waits for both. It fails only when neither half succeeded.
func (s *Service) Diagram(ctx context.Context, class curriculum.ClassLevel, topic string) (*DiagramPackage, error) {
	req, err := prompts.Diagram(class, topic)
	if err != nil {
		return nil, fmt.Errorf("diagram: %w", err)
	}

	pkg := &DiagramPackage{Topic: topic}
	var g errgroup.Group
	g.Go(func() error {
		raw, err := s.gen.GenerateStructured(ctx, req)
		if err == nil {
			var d normalize.DiagramResult
			if d, err = normalize.Diagram(raw); err == nil {
				pkg.Description = &d
			}
		}
		pkg.DescriptionErr = err
		return nil
	})
	g.Go(func() error {
		parts, err := s.gen.GenerateImage(ctx, req)
		if err == nil {
			var img normalize.ImageResult
			if img, err = normalize.Image(parts); err == nil {
				pkg.Image = &img
			}
		}
		pkg.ImageErr = err
		return nil
	})
	_ = g.Wait()

	if pkg.DescriptionErr != nil {
		s.log.Warn("diagram description failed", "topic", topic, "error", pkg.DescriptionErr)
	}
	if pkg.ImageErr != nil {
		s.log.Warn("diagram image failed", "topic", topic, "error", pkg.ImageErr)
	}
	if pkg.Description == nil && pkg.Image == nil {
		return nil, fmt.Errorf("diagram: %w", pkg.DescriptionErr)
	}
	return pkg, nil
}
