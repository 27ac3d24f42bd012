package configcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/lib/pq"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS afterpay_cache (
		slot       TEXT PRIMARY KEY,
		value      BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

// PostgresStore persists the cache slots in Postgres. Like RedisStore it is
// meant for fleets; unlike it, the slots live next to whatever relational
// state the host already operates.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an open connection and ensures the cache table
// exists.
func NewPostgresStore(ctx context.Context, db *sql.DB) (*PostgresStore, error) {
	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("migrate postgres store: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Configuration(ctx context.Context) ([]byte, error) {
	return s.get(ctx, slotConfiguration)
}

func (s *PostgresStore) SetConfiguration(ctx context.Context, raw []byte) error {
	return s.set(ctx, slotConfiguration, raw)
}

func (s *PostgresStore) LastFetch(ctx context.Context) (time.Time, error) {
	raw, err := s.get(ctx, slotLastFetch)
	if err != nil || raw == nil {
		return time.Time{}, err
	}
	return parseFetchTime(raw)
}

func (s *PostgresStore) SetLastFetch(ctx context.Context, at time.Time) error {
	if at.IsZero() {
		return s.set(ctx, slotLastFetch, nil)
	}
	return s.set(ctx, slotLastFetch, formatFetchTime(at))
}

func (s *PostgresStore) get(ctx context.Context, slot string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM afterpay_cache WHERE slot = $1`, slot).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", slot, err)
	}
	return value, nil
}

func (s *PostgresStore) set(ctx context.Context, slot string, value []byte) error {
	if value == nil {
		if _, err := s.db.ExecContext(ctx,
			`DELETE FROM afterpay_cache WHERE slot = $1`, slot); err != nil {
			return fmt.Errorf("clear %s: %w", slot, err)
		}
		return nil
	}
	// Insert first; a unique violation means another writer holds the slot,
	// so fall back to an update.
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO afterpay_cache (slot, value, updated_at)
		VALUES ($1, $2, now())`, slot, value)
	if isUniqueViolation(err) {
		_, err = s.db.ExecContext(ctx, `
			UPDATE afterpay_cache SET value = $2, updated_at = now()
			WHERE slot = $1`, slot, value)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", slot, err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}
