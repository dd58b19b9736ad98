package llm

import (
	"testing"
	"time"
)

func TestStats_EmptySnapshot(t *testing.T) {
	s := NewStats(time.Hour)
	snap := s.Snapshot()
	if snap.Count != 0 {
		t.Errorf("expected count 0, got %d", snap.Count)
	}
	if snap.AvgMs != 0 || snap.P95Ms != 0 {
		t.Errorf("expected zero aggregates, got %+v", snap)
	}
}

func TestStats_BasicAggregates(t *testing.T) {
	s := NewStats(time.Hour)
	for _, ms := range []int64{100, 200, 300} {
		s.Record(ms)
	}

	snap := s.Snapshot()
	if snap.Count != 3 {
		t.Fatalf("expected count 3, got %d", snap.Count)
	}
	if snap.MinMs != 100 || snap.MaxMs != 300 {
		t.Errorf("expected min 100 max 300, got min %d max %d", snap.MinMs, snap.MaxMs)
	}
	if snap.AvgMs != 200 {
		t.Errorf("expected avg 200, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 200 {
		t.Errorf("expected p50 200, got %f", snap.P50Ms)
	}
}

func TestStats_NegativeDurationClamped(t *testing.T) {
	s := NewStats(time.Hour)
	s.Record(-50)
	snap := s.Snapshot()
	if snap.MinMs != 0 {
		t.Errorf("expected negative duration clamped to 0, got %d", snap.MinMs)
	}
}

func TestStats_WindowEviction(t *testing.T) {
	s := NewStats(10 * time.Millisecond)
	s.Record(100)
	time.Sleep(25 * time.Millisecond)
	s.Record(200)

	snap := s.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected 1 sample after eviction, got %d", snap.Count)
	}
	if snap.MinMs != 200 {
		t.Errorf("expected surviving sample 200, got %d", snap.MinMs)
	}
}

func TestStats_PercentileInterpolation(t *testing.T) {
	values := []int64{10, 20, 30, 40}
	if got := percentile(values, 50); got != 25 {
		t.Errorf("expected interpolated p50 25, got %f", got)
	}
	if got := percentile(values, 100); got != 40 {
		t.Errorf("expected p100 40, got %f", got)
	}
	if got := percentile(values, 0); got != 10 {
		t.Errorf("expected p0 10, got %f", got)
	}
}
