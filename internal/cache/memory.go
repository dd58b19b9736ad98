package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// Memory is an in-process TTL cache. Expired entries are dropped lazily on
// read and swept by Cleanup.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", false
	}
	if time.Now().After(e.expiresAt) {
		delete(m.entries, key)
		return "", false
	}
	return e.value, true
}

func (m *Memory) Set(_ context.Context, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{value: value, expiresAt: time.Now().Add(m.ttl)}
}

// Cleanup removes expired entries.
func (m *Memory) Cleanup() {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, key)
		}
	}
}

// Len reports the current entry count, including not-yet-swept expired ones.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
