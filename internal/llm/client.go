// Package llm wraps the completion provider behind a small interface that
// returns a closed set of classified failures.
package llm

import "context"

// Request is a single completion call.
type Request struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
}

// Client is the completion capability the pipeline depends on. Complete
// returns the model's text, or an *Error classifying the failure.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
