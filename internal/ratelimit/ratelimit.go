// Package ratelimit provides a per-caller request limiter.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// defaultIdleTTL is how long a caller's limiter survives without traffic
// before Cleanup may drop it.
const defaultIdleTTL = 10 * time.Minute

type caller struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// Limiter hands out a token-bucket limiter per caller key and evicts idle
// entries so the registry doesn't grow without bound.
type Limiter struct {
	mu      sync.Mutex
	callers map[string]*caller
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
}

func New(rps float64, burst int) *Limiter {
	if rps <= 0 {
		rps = 2
	}
	if burst <= 0 {
		burst = 5
	}
	return &Limiter{
		callers: make(map[string]*caller),
		rps:     rate.Limit(rps),
		burst:   burst,
		idleTTL: defaultIdleTTL,
	}
}

// Allow reports whether the caller identified by key may proceed now.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.callers[key]
	if !ok {
		c = &caller{lim: rate.NewLimiter(l.rps, l.burst)}
		l.callers[key] = c
	}
	c.lastSeen = time.Now()
	return c.lim.Allow()
}

// Cleanup drops callers not seen within the idle window.
func (l *Limiter) Cleanup() {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, c := range l.callers {
		if now.Sub(c.lastSeen) > l.idleTTL {
			delete(l.callers, key)
		}
	}
}

// Len reports the number of tracked callers.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.callers)
}
