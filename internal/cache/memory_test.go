package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemory_SetGet(t *testing.T) {
	c := NewMemory(time.Minute)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Error("expected miss for unknown key")
	}

	c.Set(ctx, "k", "a summary")
	got, ok := c.Get(ctx, "k")
	if !ok {
		t.Fatal("expected hit after set")
	}
	if got != "a summary" {
		t.Errorf("expected stored value, got %q", got)
	}
}

func TestMemory_Expiry(t *testing.T) {
	c := NewMemory(10 * time.Millisecond)
	ctx := context.Background()

	c.Set(ctx, "k", "v")
	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestMemory_Cleanup(t *testing.T) {
	c := NewMemory(10 * time.Millisecond)
	ctx := context.Background()

	c.Set(ctx, "a", "1")
	c.Set(ctx, "b", "2")
	time.Sleep(25 * time.Millisecond)

	c.Cleanup()
	if n := c.Len(); n != 0 {
		t.Errorf("expected 0 entries after cleanup, got %d", n)
	}
}

func TestKey_Deterministic(t *testing.T) {
	a := Key("gpt-4o-mini", "precise", 3, "hello world")
	b := Key("gpt-4o-mini", "precise", 3, "hello world")
	if a != b {
		t.Error("identical inputs must hash identically")
	}

	variants := []string{
		Key("gpt-4o", "precise", 3, "hello world"),
		Key("gpt-4o-mini", "bullet", 3, "hello world"),
		Key("gpt-4o-mini", "precise", 5, "hello world"),
		Key("gpt-4o-mini", "precise", 3, "other text"),
	}
	for i, v := range variants {
		if v == a {
			t.Errorf("variant %d unexpectedly collided with base key", i)
		}
	}
}
