package summarize

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dgallion1/brevity/internal/cache"
	"github.com/dgallion1/brevity/internal/chunker"
	"github.com/dgallion1/brevity/internal/llm"
)

// Options configure a Pipeline.
type Options struct {
	Model         string        // default model when the request carries no override
	MaxChars      int           // per-chunk character budget
	Timeout       time.Duration // aggregate wall-clock budget per request
	MaxConcurrent int           // parallel stage-summary calls
	Temperature   float64       // conservative sampling to minimize invented content
}

// Pipeline drives chunking, per-chunk summarization, and synthesis for one
// request. Safe for concurrent use; no state is shared across requests
// beyond the injected client and cache.
type Pipeline struct {
	client llm.Client
	cache  cache.Cache // may be nil
	log    *slog.Logger
	opts   Options
}

func NewPipeline(client llm.Client, c cache.Cache, log *slog.Logger, opts Options) *Pipeline {
	if opts.Model == "" {
		opts.Model = "gpt-4o-mini"
	}
	if opts.MaxChars <= 0 {
		opts.MaxChars = chunker.DefaultMaxChars
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 4
	}
	if opts.Temperature <= 0 {
		opts.Temperature = 0.2
	}
	return &Pipeline{client: client, cache: c, log: log, opts: opts}
}

// Run executes the full pipeline for text under style. modelOverride, when
// non-empty, replaces the configured default for this request only.
func (p *Pipeline) Run(ctx context.Context, text string, style Style, modelOverride string) (Result, error) {
	model := p.opts.Model
	if modelOverride != "" {
		model = modelOverride
	}

	key := cache.Key(model, string(style.Tone), style.MaxUnits, text)
	if p.cache != nil {
		if cached, ok := p.cache.Get(ctx, key); ok {
			return Result{Summary: cached, Model: model, Chunks: 0, Cached: true}, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	start := time.Now()
	pieces := chunker.Chunk(text, p.opts.MaxChars)
	chunks := make([]TextChunk, len(pieces))
	for i, content := range pieces {
		chunks[i] = TextChunk{Index: i, Total: len(pieces), Content: content}
	}
	p.log.Debug("chunked input", "chunks", len(chunks), "model", model)

	summary, err := p.run(ctx, chunks, style, model)
	if err != nil {
		return Result{}, p.deadline(ctx, err)
	}

	if p.cache != nil {
		p.cache.Set(context.WithoutCancel(ctx), key, summary)
	}
	p.log.Info("summarized",
		"chunks", len(chunks),
		"model", model,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return Result{Summary: summary, Model: model, Chunks: len(chunks)}, nil
}

// run is the state machine: a single chunk is summarized directly, more than
// one goes through stage summaries and synthesis.
func (p *Pipeline) run(ctx context.Context, chunks []TextChunk, style Style, model string) (string, error) {
	if len(chunks) == 1 {
		partial, err := p.summarizeChunk(ctx, chunks[0], style, model)
		if err != nil {
			return "", err
		}
		return partial.Text, nil
	}

	partials, err := p.fanOut(ctx, chunks, style, model)
	if err != nil {
		return "", err
	}
	return p.synthesize(ctx, partials, style, model)
}

// summarizeChunk produces the partial summary for one chunk.
func (p *Pipeline) summarizeChunk(ctx context.Context, chunk TextChunk, style Style, model string) (PartialSummary, error) {
	text, err := p.client.Complete(ctx, llm.Request{
		Model:       model,
		System:      systemInstruction,
		Prompt:      stagePrompt(chunk, style),
		Temperature: p.opts.Temperature,
	})
	if err != nil {
		return PartialSummary{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return PartialSummary{}, &llm.Error{Kind: llm.KindUpstream, Message: "model returned an empty summary"}
	}
	return PartialSummary{ChunkIndex: chunk.Index, Text: text}, nil
}

// fanOut summarizes every chunk with bounded concurrency and reassembles the
// results in original chunk order. The first failure cancels the siblings
// and fails the whole request; in-flight calls are abandoned, not drained.
func (p *Pipeline) fanOut(ctx context.Context, chunks []TextChunk, style Style, model string) ([]PartialSummary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := make([]PartialSummary, len(chunks))
	sem := make(chan struct{}, p.opts.MaxConcurrent)
	errc := make(chan error, 1)
	var wg sync.WaitGroup

	for i := range chunks {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			partial, err := p.summarizeChunk(ctx, chunks[i], style, model)
			if err != nil {
				select {
				case errc <- err:
				default:
				}
				cancel()
				return
			}
			out[i] = partial
		}(i)
	}
	wg.Wait()

	select {
	case err := <-errc:
		return nil, err
	default:
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// synthesize merges the ordered partials into the final summary.
func (p *Pipeline) synthesize(ctx context.Context, partials []PartialSummary, style Style, model string) (string, error) {
	text, err := p.client.Complete(ctx, llm.Request{
		Model:       model,
		System:      systemInstruction,
		Prompt:      synthesisPrompt(partials, style),
		Temperature: p.opts.Temperature,
	})
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &llm.Error{Kind: llm.KindUpstream, Message: "model returned an empty synthesis"}
	}
	return text, nil
}

// deadline maps any failure that coincides with the aggregate budget
// expiring to a timeout, regardless of which stage was in flight.
func (p *Pipeline) deadline(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &llm.Error{Kind: llm.KindTimeout, Message: "summarization exceeded the time budget", Err: err}
	}
	return err
}
