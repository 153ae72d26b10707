// Package storage persists the whole application state as one JSON blob
// in a SQLite key-value table. The snapshot is rewritten after every
// mutation, never updated incrementally.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var ErrNotFound = errors.New("storage: not found")

// StateKey is the fixed key the app snapshot lives under.
const StateKey = "anchor-storage"

const snapshotTimeLayout = time.RFC3339Nano

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	key TEXT PRIMARY KEY,
	payload TEXT NOT NULL,
	saved_at TEXT NOT NULL
);`

type Snapshots struct {
	db *sql.DB
}

func NewSnapshots(db *sql.DB) (*Snapshots, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Snapshots{db: db}, nil
}

func OpenSQLite(path string) (*Snapshots, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	snaps, err := NewSnapshots(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return snaps, nil
}

func (s *Snapshots) Close() error {
	return s.db.Close()
}

// Save writes the payload under key, replacing any previous snapshot.
func (s *Snapshots) Save(ctx context.Context, key string, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, payload, saved_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`,
		key, string(payload), time.Now().UTC().Format(snapshotTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}

// Load returns the payload stored under key, ErrNotFound on first run.
func (s *Snapshots) Load(ctx context.Context, key string) ([]byte, error) {
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE key = ?`, key)
	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return []byte(payload), nil
}

// SavedAt reports when the snapshot under key was last written.
func (s *Snapshots) SavedAt(ctx context.Context, key string) (time.Time, error) {
	row := s.db.QueryRowContext(ctx, `SELECT saved_at FROM snapshots WHERE key = ?`, key)
	var raw string
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, fmt.Errorf("load snapshot time %s: %w", key, err)
	}
	at, err := time.Parse(snapshotTimeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse snapshot time %s: %w", key, err)
	}
	return at, nil
}
