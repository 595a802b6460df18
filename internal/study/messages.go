package study

import "github.com/abhisek/betopper/internal/normalize"

// UserMessage turns any action failure into the message shown to the
// learner. Each failure category has its own wording.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return normalize.AsError(err).Message
}
