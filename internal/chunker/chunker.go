// Package chunker splits raw text into bounded-size pieces along natural
// boundaries so each piece fits a single model call.
package chunker

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxChars is the default per-chunk character budget. Character-based
// rather than token-based: it only needs to keep requests well under provider
// payload limits, not match a tokenizer.
const DefaultMaxChars = 3500

// boundaryFraction is the minimum position, as a fraction of maxChars, at
// which a found boundary is still worth cutting at. Boundaries closer to the
// window start are ignored in favor of a hard cut so oversized segments don't
// shatter into tiny chunks. Tunable policy, not a correctness requirement.
const boundaryFraction = 0.4

// Chunk splits text into ordered pieces of at most maxChars characters each.
// Line-level segments are greedily packed together; a segment that alone
// exceeds maxChars is sliced at the best boundary within each window.
// Blank input yields a single empty chunk so callers always get one piece.
func Chunk(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	var chunks []string
	var buf strings.Builder
	bufLen := 0 // rune length of buf

	flush := func() {
		if bufLen > 0 {
			chunks = append(chunks, buf.String())
			buf.Reset()
			bufLen = 0
		}
	}

	for _, seg := range segments(text) {
		segLen := utf8.RuneCountInString(seg)

		if segLen > maxChars {
			flush()
			chunks = append(chunks, sliceOversized(seg, maxChars)...)
			continue
		}

		need := segLen
		if bufLen > 0 {
			need++ // separating newline
		}
		if bufLen+need > maxChars {
			flush()
		}
		if bufLen > 0 {
			buf.WriteByte('\n')
			bufLen++
		}
		buf.WriteString(seg)
		bufLen += segLen
	}
	flush()

	if len(chunks) == 0 {
		return []string{""}
	}
	return chunks
}

// segments breaks text into trimmed, non-blank line-level pieces.
func segments(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// sliceOversized cuts a single segment longer than maxChars into in-order
// pieces. Each cut prefers the last sentence or line boundary within the
// window, falling back to a hard cut at maxChars when no boundary lands past
// boundaryFraction of the window. Every iteration consumes at least one
// character, so progress is guaranteed for any maxChars.
func sliceOversized(seg string, maxChars int) []string {
	runes := []rune(seg)
	floor := int(float64(maxChars) * boundaryFraction)

	var out []string
	for len(runes) > 0 {
		if len(runes) <= maxChars {
			out = append(out, string(runes))
			break
		}

		cut := maxChars
		if b := boundaryBefore(runes, maxChars); b > floor {
			cut = b
		}

		piece := strings.TrimSpace(string(runes[:cut]))
		if piece != "" {
			out = append(out, piece)
		}
		runes = runes[cut:]
		for len(runes) > 0 && unicode.IsSpace(runes[0]) {
			runes = runes[1:]
		}
	}
	return out
}

// boundaryBefore returns the cut position just after the last paragraph or
// sentence boundary in runes[:limit], or 0 if there is none. Scans backward
// from the window end so the largest possible piece wins.
func boundaryBefore(runes []rune, limit int) int {
	for i := limit - 1; i > 0; i-- {
		r := runes[i]
		if r == '\n' {
			return i + 1
		}
		if (r == '.' || r == '!' || r == '?') && i+1 < limit && unicode.IsSpace(runes[i+1]) {
			return i + 2
		}
	}
	return 0
}
