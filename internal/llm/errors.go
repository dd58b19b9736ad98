package llm

import (
	"errors"
	"fmt"
)

// Kind classifies a completion failure into the closed set the rest of the
// service is built around. Provider-specific error types never escape this
// package.
type Kind string

const (
	KindTimeout     Kind = "timeout"
	KindRateLimited Kind = "rate_limited"
	KindAuthFailed  Kind = "auth_failed"
	KindUpstream    Kind = "upstream_error"
)

// Error is a classified completion failure. Message is safe to show to
// callers; Err carries the underlying provider error for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the classification of err. Anything that escaped
// classification counts as an upstream failure.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUpstream
}
