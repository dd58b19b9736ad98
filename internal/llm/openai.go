package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"
)

// OpenAIClient calls the OpenAI chat completions API.
type OpenAIClient struct {
	client  openai.Client
	timeout time.Duration

	// Stats collects per-call latency samples for the stats endpoint.
	Stats *Stats
}

// NewOpenAIClient builds a client with a per-call timeout. baseURL is
// optional and exists for OpenAI-compatible gateways.
func NewOpenAIClient(apiKey, baseURL string, timeout time.Duration) *OpenAIClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &OpenAIClient{
		client:  openai.NewClient(opts...),
		timeout: timeout,
		Stats:   NewStats(time.Hour),
	}
}

// Complete issues one chat completion and classifies any failure.
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.Prompt),
		},
		Temperature: param.NewOpt(req.Temperature),
	}

	start := time.Now()
	completion, err := c.client.Chat.Completions.New(callCtx, params)
	c.Stats.Record(time.Since(start).Milliseconds())

	if err != nil {
		return "", classify(err)
	}
	if len(completion.Choices) == 0 {
		return "", &Error{Kind: KindUpstream, Message: "completion had no choices"}
	}
	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", &Error{Kind: KindUpstream, Message: "completion text was empty"}
	}
	return text, nil
}

// classify is the single boundary translating provider errors into the
// closed Kind set.
func classify(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Kind: KindTimeout, Message: "upstream model timed out", Err: err}
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &Error{Kind: KindAuthFailed, Message: "upstream authentication failed", Err: err}
		case http.StatusTooManyRequests:
			return &Error{Kind: KindRateLimited, Message: "upstream quota or rate limit", Err: err}
		}
	}
	return &Error{Kind: KindUpstream, Message: "upstream model error", Err: err}
}
