package scoreboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/lixenwraith/typecast/scoreboard/migrations"
)

// ErrNotConfigured is returned by operations on a closed or nil store
var ErrNotConfigured = errors.New("scoreboard store is not configured")

// Ledger persists finished runs
type Ledger interface {
	SaveRun(ctx context.Context, run Run) error
	Runs(ctx context.Context, limit int) ([]Run, error)
	Close() error
}

// SQLiteStore keeps runs in a sqlite database
type SQLiteStore struct {
	db *sql.DB
}

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(v int64) time.Time { return time.UnixMilli(v).UTC() }

// Open opens the database at path and applies embedded migrations
func Open(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database handle
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// SaveRun inserts or replaces one run
func (s *SQLiteStore) SaveRun(ctx context.Context, run Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return ErrNotConfigured
	}
	if run.ID == uuid.Nil {
		return fmt.Errorf("run id is required")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (
		   id, script, started_at, ended_at,
		   words, global_typos, fired, dropped, kills, player_hits,
		   player_hp, defeated
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.Script, toMillis(run.Started), toMillis(run.Ended),
		run.Words, run.GlobalTypos, run.Fired, run.Dropped, run.Kills, run.PlayerHits,
		run.PlayerHP, run.Defeated,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Runs returns the most recent runs first, at most limit when limit > 0
func (s *SQLiteStore) Runs(ctx context.Context, limit int) ([]Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil {
		return nil, ErrNotConfigured
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, script, started_at, ended_at,
		        words, global_typos, fired, dropped, kills, player_hits,
		        player_hp, defeated
		   FROM runs
		  ORDER BY started_at DESC, id
		  LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run            Run
			id             string
			started, ended int64
		)
		if err := rows.Scan(&id, &run.Script, &started, &ended,
			&run.Words, &run.GlobalTypos, &run.Fired, &run.Dropped, &run.Kills, &run.PlayerHits,
			&run.PlayerHP, &run.Defeated,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse run id %q: %w", id, err)
		}
		run.Started = fromMillis(started)
		run.Ended = fromMillis(ended)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// MemoryStore keeps runs for the lifetime of the process
// Used when the database cannot be opened
type MemoryStore struct {
	mu   sync.Mutex
	runs []Run
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) SaveRun(ctx context.Context, run Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if run.ID == uuid.Nil {
		return fmt.Errorf("run id is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = slices.DeleteFunc(m.runs, func(r Run) bool { return r.ID == run.ID })
	m.runs = append(m.runs, run)
	return nil
}

func (m *MemoryStore) Runs(ctx context.Context, limit int) ([]Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	runs := slices.Clone(m.runs)
	m.mu.Unlock()

	slices.SortStableFunc(runs, func(a, b Run) int { return b.Started.Compare(a.Started) })
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (m *MemoryStore) Close() error { return nil }

// OpenLedger opens the sqlite store, falling back to memory when path is empty or unusable
// The returned error reports why the fallback was taken
func OpenLedger(path string) (Ledger, error) {
	if strings.TrimSpace(path) == "" {
		return NewMemoryStore(), nil
	}
	store, err := Open(path)
	if err != nil {
		return NewMemoryStore(), err
	}
	return store, nil
}
