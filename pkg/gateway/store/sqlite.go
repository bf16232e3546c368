// Package store provides a local SQLite-backed source of gateway records.
//
// It implements gateway.Fetcher for self-hosted deployments that run without
// a remote management service: gateway records live in a single database
// file seeded through Upsert (or any SQLite tooling).
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"nimbus-hq/nimbus/pkg/gateway"
)

// Config contains configuration for the SQLite gateway store.
type Config struct {
	// Path is the database file path. Use ":memory:" for an in-memory
	// database in tests.
	Path string

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	WALMode bool
}

// SQLiteStore implements gateway.Fetcher backed by a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (and if needed initializes) the gateway database at cfg.Path.
func Open(cfg Config) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite store path must not be empty")
	}
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open gateway database %q: %w", cfg.Path, err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: slog.Default().With("component", "gateway.store"),
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.BusyTimeout.Milliseconds())); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if cfg.WALMode {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize gateway schema: %w", err)
	}

	return s, nil
}

// FetchGateway returns the gateway record with the given ID.
func (s *SQLiteStore) FetchGateway(ctx context.Context, id string) (*gateway.Config, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, requires_auth, cache_ttl,
		       rate_limit_limit, rate_limit_interval, rate_limit_technique,
		       created_at, modified_at
		FROM gateways WHERE id = ?`, id)

	cfg, err := scanGateway(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &gateway.NotFoundError{ID: id}
		}
		return nil, &gateway.NotFoundError{ID: id, Cause: err}
	}
	return cfg, nil
}

// ListGateways returns all gateway records ordered by ID.
func (s *SQLiteStore) ListGateways(ctx context.Context) ([]*gateway.Config, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, requires_auth, cache_ttl,
		       rate_limit_limit, rate_limit_interval, rate_limit_technique,
		       created_at, modified_at
		FROM gateways ORDER BY id`)
	if err != nil {
		return nil, &gateway.FetchError{Cause: err}
	}
	defer rows.Close()

	var configs []*gateway.Config
	for rows.Next() {
		cfg, err := scanGateway(rows)
		if err != nil {
			return nil, &gateway.FetchError{Cause: err}
		}
		configs = append(configs, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, &gateway.FetchError{Cause: err}
	}
	return configs, nil
}

// Upsert inserts or replaces a gateway record. CreatedAt is preserved for
// existing records; ModifiedAt is always set to now.
func (s *SQLiteStore) Upsert(ctx context.Context, cfg *gateway.Config) error {
	now := time.Now().UTC()
	created := cfg.CreatedAt
	if created.IsZero() {
		created = now
	}

	var limit, interval sql.NullInt64
	var technique sql.NullString
	if cfg.RateLimit != nil {
		limit = sql.NullInt64{Int64: int64(cfg.RateLimit.Limit), Valid: true}
		interval = sql.NullInt64{Int64: int64(cfg.RateLimit.Interval), Valid: true}
		technique = sql.NullString{String: cfg.RateLimit.Technique, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO gateways (id, name, requires_auth, cache_ttl,
		                      rate_limit_limit, rate_limit_interval, rate_limit_technique,
		                      created_at, modified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			requires_auth = excluded.requires_auth,
			cache_ttl = excluded.cache_ttl,
			rate_limit_limit = excluded.rate_limit_limit,
			rate_limit_interval = excluded.rate_limit_interval,
			rate_limit_technique = excluded.rate_limit_technique,
			modified_at = excluded.modified_at`,
		cfg.ID, cfg.Name, cfg.RequiresAuth, cfg.CacheTTL,
		limit, interval, technique,
		created.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert gateway %q: %w", cfg.ID, err)
	}
	return nil
}

// Delete removes a gateway record. Deleting an unknown ID is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM gateways WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete gateway %q: %w", id, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanner abstracts *sql.Row and *sql.Rows for scanGateway.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanGateway(sc scanner) (*gateway.Config, error) {
	var cfg gateway.Config
	var limit, interval sql.NullInt64
	var technique sql.NullString
	var createdAt, modifiedAt string

	if err := sc.Scan(&cfg.ID, &cfg.Name, &cfg.RequiresAuth, &cfg.CacheTTL,
		&limit, &interval, &technique, &createdAt, &modifiedAt); err != nil {
		return nil, err
	}

	if limit.Valid || interval.Valid || technique.Valid {
		cfg.RateLimit = &gateway.RateLimit{
			Limit:     int(limit.Int64),
			Interval:  int(interval.Int64),
			Technique: technique.String,
		}
	}

	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		cfg.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339Nano, modifiedAt); err == nil {
		cfg.ModifiedAt = t
	}

	return &cfg, nil
}
