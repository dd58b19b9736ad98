// Package telemetry ingests lightweight usage pings and aggregates them over
// a rolling window.
package telemetry

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// Snapshot is the aggregate view of pings within the rolling window.
type Snapshot struct {
	Window string         `json:"window"`
	Total  int            `json:"total"`
	Events map[string]int `json:"events"`
}

// Store persists pings in SQLite and answers windowed aggregates.
type Store struct {
	db     *sql.DB
	window time.Duration
	log    *slog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS pings (
	id         TEXT PRIMARY KEY,
	event      TEXT NOT NULL,
	source     TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pings_created_at ON pings (created_at);
`

// NewStore opens (or creates) the ping database at path. window bounds both
// aggregation and retention.
func NewStore(path string, window time.Duration, log *slog.Logger) (*Store, error) {
	if window <= 0 {
		window = 24 * time.Hour
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating telemetry directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening telemetry database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating telemetry schema: %w", err)
	}

	return &Store{db: db, window: window, log: log}, nil
}

// Record stores one ping.
func (s *Store) Record(ctx context.Context, event, source string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pings (id, event, source, created_at) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), event, source, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("recording ping: %w", err)
	}
	return nil
}

// Aggregate counts pings per event within the rolling window.
func (s *Store) Aggregate(ctx context.Context) (Snapshot, error) {
	cutoff := time.Now().Add(-s.window).UnixMilli()

	rows, err := s.db.QueryContext(ctx,
		`SELECT event, COUNT(*) FROM pings WHERE created_at >= ? GROUP BY event`,
		cutoff,
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("aggregating pings: %w", err)
	}
	defer rows.Close()

	snap := Snapshot{
		Window: s.window.String(),
		Events: map[string]int{},
	}
	for rows.Next() {
		var event string
		var count int
		if err := rows.Scan(&event, &count); err != nil {
			return Snapshot{}, fmt.Errorf("scanning ping aggregate: %w", err)
		}
		snap.Events[event] = count
		snap.Total += count
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("reading ping aggregates: %w", err)
	}
	return snap, nil
}

// Prune deletes pings that have aged out of the window.
func (s *Store) Prune(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.window).UnixMilli()
	res, err := s.db.ExecContext(ctx, `DELETE FROM pings WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning pings: %w", err)
	}
	return res.RowsAffected()
}

// Start launches the periodic prune loop; it exits when ctx is canceled.
func (s *Store) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n, err := s.Prune(ctx); err != nil {
					s.log.Warn("telemetry prune failed", "error", err)
				} else if n > 0 {
					s.log.Debug("pruned pings", "removed", n)
				}
			}
		}
	}()
}

func (s *Store) Close() error {
	return s.db.Close()
}
