package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/abhisek/betopper/internal/llm"
)

// ErrorKind classifies a failed generation call.
type ErrorKind string

const (
	KindNetwork           ErrorKind = "network"
	KindRateLimit         ErrorKind = "rate_limit"
	KindInvalidCredential ErrorKind = "invalid_credential"
	KindUnknown           ErrorKind = "unknown"
)

// Error is returned by every Gateway method when the provider call fails.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway %s (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Classify maps a provider error onto the gateway taxonomy.
func Classify(err error) ErrorKind {
	var (
		rateLimit   *llm.ErrRateLimit
		credential  *llm.ErrInvalidCredential
		unavailable *llm.ErrProviderUnavailable
		netErr      net.Error
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &rateLimit):
		return KindRateLimit
	case errors.As(err, &credential):
		return KindInvalidCredential
	case errors.As(err, &unavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr):
		return KindNetwork
	}
	return KindUnknown
}

func wrap(op string, err error) error {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return err
	}
	return &Error{Kind: Classify(err), Op: op, Err: err}
}
