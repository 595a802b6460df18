package normalize

import (
	"errors"
	"fmt"

	"github.com/abhisek/betopper/internal/gateway"
	"github.com/abhisek/betopper/internal/prompts"
)

var (
	// ErrEmptyResponse means a text reply had no content. Callers show a
	// fallback message instead.
	ErrEmptyResponse = errors.New("empty response")

	// ErrMalformedStructuredResponse is matched by *MalformedResponseError.
	ErrMalformedStructuredResponse = errors.New("malformed structured response")

	// ErrImageAbsent means a multi-part reply carried no inline image.
	ErrImageAbsent = errors.New("no image in response")
)

// MalformedResponseError reports a structured reply that failed to parse
// or did not match its schema.
type MalformedResponseError struct {
	Schema string
	Raw    []byte
	Err    error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed %s response: %v", e.Schema, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedStructuredResponse
}

// ErrorKind is the user-visible failure category.
type ErrorKind string

const (
	ErrorNetwork           ErrorKind = "network"
	ErrorRateLimit         ErrorKind = "rate_limit"
	ErrorInvalidCredential ErrorKind = "invalid_credential"
	ErrorEmpty             ErrorKind = "empty_response"
	ErrorMalformed         ErrorKind = "malformed_response"
	ErrorImageAbsent       ErrorKind = "image_absent"
	ErrorInvalidParameter  ErrorKind = "invalid_parameter"
	ErrorUnknown           ErrorKind = "unknown"
)

// ErrorResult is a failure reduced to a category and a message fit for
// display.
type ErrorResult struct {
	Kind    ErrorKind
	Message string
}

var errorMessages = map[ErrorKind]string{
	ErrorNetwork:           "Could not reach the study service. Check your connection and try again.",
	ErrorRateLimit:         "The study service is busy right now. Please wait a moment and try again.",
	ErrorInvalidCredential: "The API key was rejected. Check your configuration and try again.",
	ErrorEmpty:             "Nothing found for this topic. Try a different topic or try again.",
	ErrorMalformed:         "Could not generate a valid question set. Please try again.",
	ErrorImageAbsent:       "The diagram image is not available right now.",
	ErrorUnknown:           "Something went wrong. Please try again.",
}

// AsError reduces any failure from building, dispatching or normalizing a
// request to an ErrorResult. Every kind has its own message.
func AsError(err error) ErrorResult {
	var (
		gwErr    *gateway.Error
		paramErr *prompts.InvalidParameterError
	)
	switch {
	case errors.As(err, &paramErr):
		return ErrorResult{
			Kind:    ErrorInvalidParameter,
			Message: fmt.Sprintf("Please provide a valid %s.", paramErr.Field),
		}
	case errors.Is(err, ErrEmptyResponse):
		return errorResult(ErrorEmpty)
	case errors.Is(err, ErrMalformedStructuredResponse):
		return errorResult(ErrorMalformed)
	case errors.Is(err, ErrImageAbsent):
		return errorResult(ErrorImageAbsent)
	case errors.As(err, &gwErr):
		switch gwErr.Kind {
		case gateway.KindNetwork:
			return errorResult(ErrorNetwork)
		case gateway.KindRateLimit:
			return errorResult(ErrorRateLimit)
		case gateway.KindInvalidCredential:
			return errorResult(ErrorInvalidCredential)
		}
	}
	return errorResult(ErrorUnknown)
}

func errorResult(k ErrorKind) ErrorResult {
	return ErrorResult{Kind: k, Message: errorMessages[k]}
}
