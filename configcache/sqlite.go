package configcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS afterpay_cache (
		slot       TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at DATETIME NOT NULL
	);
`

// SQLiteStore persists the cache slots in a SQLite database, one row per
// slot. It suits single-host processes that must keep their freshness window
// across restarts.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens the database at path, creating it, its parent
// directory and the cache table if needed.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("migrate sqlite store: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Configuration(ctx context.Context) ([]byte, error) {
	return s.get(ctx, slotConfiguration)
}

func (s *SQLiteStore) SetConfiguration(ctx context.Context, raw []byte) error {
	return s.set(ctx, slotConfiguration, raw)
}

func (s *SQLiteStore) LastFetch(ctx context.Context) (time.Time, error) {
	raw, err := s.get(ctx, slotLastFetch)
	if err != nil || raw == nil {
		return time.Time{}, err
	}
	return parseFetchTime(raw)
}

func (s *SQLiteStore) SetLastFetch(ctx context.Context, at time.Time) error {
	if at.IsZero() {
		return s.set(ctx, slotLastFetch, nil)
	}
	return s.set(ctx, slotLastFetch, formatFetchTime(at))
}

func (s *SQLiteStore) get(ctx context.Context, slot string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM afterpay_cache WHERE slot = ?`, slot).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", slot, err)
	}
	return value, nil
}

func (s *SQLiteStore) set(ctx context.Context, slot string, value []byte) error {
	if value == nil {
		if _, err := s.db.ExecContext(ctx,
			`DELETE FROM afterpay_cache WHERE slot = ?`, slot); err != nil {
			return fmt.Errorf("clear %s: %w", slot, err)
		}
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO afterpay_cache (slot, value, updated_at)
		VALUES (?, ?, ?)`, slot, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write %s: %w", slot, err)
	}
	return nil
}
