// Package cache provides best-effort memoization of summaries keyed by a
// content hash. Misses and backend failures are indistinguishable on
// purpose: the pipeline must work identically with no cache at all.
package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
)

// Cache stores summary text under a content-hash key with a backend-owned
// TTL. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

// Key derives the cache key for one summarization request. Everything that
// changes the output participates in the hash.
func Key(model, tone string, maxUnits int, text string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%d\x00%s", model, tone, maxUnits, text)
	return fmt.Sprintf("%x", h.Sum(nil))
}
