// Package summarize implements the chunk → stage-summary → synthesis
// pipeline: arbitrary text is split into model-sized pieces, each piece is
// summarized independently, and for long inputs the partial summaries are
// merged into one bounded final summary.
package summarize

// TextChunk is one bounded piece of the input, read-only after creation.
// Index and Total give the model positional context for multi-part inputs.
type TextChunk struct {
	Index   int
	Total   int
	Content string
}

// PartialSummary is the per-chunk model output. ChunkIndex ties it back to
// the chunk that produced it; the sequence handed to synthesis must be in
// chunk order.
type PartialSummary struct {
	ChunkIndex int
	Text       string
}

// Result is the terminal pipeline output.
type Result struct {
	Summary string
	Model   string
	Chunks  int
	Cached  bool
}
