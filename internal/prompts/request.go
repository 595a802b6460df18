package prompts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/betopper/internal/curriculum"
	"github.com/abhisek/betopper/internal/llm"
)

// Default item counts per category.
const (
	DefaultQuestionBankCount  = 15
	DefaultDailyPracticeCount = 5
	DefaultExpectedCount      = 10
)

// DiagramAspectRatio is the aspect ratio requested for diagram images.
const DiagramAspectRatio = "1:1"

// Request is a fully built generation request. It is never mutated after
// a builder returns it.
type Request struct {
	Category Category

	// Instruction is the complete prompt text, policy included. For chat
	// it is the system instruction.
	Instruction string

	// Messages carries chat history followed by the new user message.
	// Empty for single-turn categories.
	Messages []llm.Message

	// Schema is set for structured categories.
	Schema *llm.Schema

	Modality Modality

	// Image is set for the diagram category's paired image request.
	Image *ImageSpec
}

// ImageSpec describes the image half of a text+image request.
type ImageSpec struct {
	Prompt      string
	AspectRatio string
}

// Params carries the learner-supplied inputs shared by most builders.
type Params struct {
	Class      curriculum.ClassLevel
	Subject    string
	Topic      string
	Difficulty curriculum.Difficulty
	Board      string

	// Count overrides the category's default number of items when > 0.
	Count int
}

// ErrInvalidParameter is matched by every *InvalidParameterError.
var ErrInvalidParameter = errors.New("invalid prompt parameter")

// InvalidParameterError reports a missing or out-of-range builder input.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

func requireText(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return &InvalidParameterError{Field: field, Reason: "must not be empty"}
	}
	return nil
}

func requireClass(c curriculum.ClassLevel) error {
	if !c.Valid() {
		return &InvalidParameterError{Field: "class", Reason: fmt.Sprintf("%d is outside 9-12", c)}
	}
	return nil
}

func requireDifficulty(d curriculum.Difficulty) error {
	if !d.Valid() {
		return &InvalidParameterError{Field: "difficulty", Reason: fmt.Sprintf("unknown difficulty %q", d)}
	}
	return nil
}

func resolveCount(n, def int) (int, error) {
	switch {
	case n < 0:
		return 0, &InvalidParameterError{Field: "count", Reason: fmt.Sprintf("%d is not positive", n)}
	case n == 0:
		return def, nil
	}
	return n, nil
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
