package telemetry

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, window time.Duration) *Store {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := NewStore(filepath.Join(t.TempDir(), "telemetry.db"), window, log)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RecordAndAggregate(t *testing.T) {
	s := newTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, "summarize", "extension"))
	require.NoError(t, s.Record(ctx, "summarize", "extension"))
	require.NoError(t, s.Record(ctx, "install", ""))

	snap, err := s.Aggregate(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, snap.Total)
	assert.Equal(t, 2, snap.Events["summarize"])
	assert.Equal(t, 1, snap.Events["install"])
	assert.Equal(t, time.Hour.String(), snap.Window)
}

func TestStore_EmptyAggregate(t *testing.T) {
	s := newTestStore(t, time.Hour)

	snap, err := s.Aggregate(context.Background())
	require.NoError(t, err)

	assert.Zero(t, snap.Total)
	assert.Empty(t, snap.Events)
}

func TestStore_WindowExcludesOldPings(t *testing.T) {
	s := newTestStore(t, 50*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, "old", ""))
	time.Sleep(80 * time.Millisecond)
	require.NoError(t, s.Record(ctx, "fresh", ""))

	snap, err := s.Aggregate(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, snap.Total)
	assert.Contains(t, snap.Events, "fresh")
	assert.NotContains(t, snap.Events, "old")
}

func TestStore_Prune(t *testing.T) {
	s := newTestStore(t, 50*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, "old", ""))
	time.Sleep(80 * time.Millisecond)
	require.NoError(t, s.Record(ctx, "fresh", ""))

	removed, err := s.Prune(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	snap, err := s.Aggregate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Total)
}
