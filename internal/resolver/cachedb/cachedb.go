// Package cachedb persists resolved canonical keys in a local SQLite
// database so identity mappings survive restarts and do not re-spend
// provider quota.
package cachedb

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"game-data-service/internal/domain"
	"game-data-service/internal/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS resolved_names (
	normalized_name TEXT PRIMARY KEY,
	key_json        TEXT NOT NULL,
	updated_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Store is a SQLite-backed resolver cache. Read and write failures degrade
// to cache misses; the resolver just searches again.
type Store struct {
	conn   *sql.DB
	logger *slog.Logger
}

// Open opens or creates the cache database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening resolver cache: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrating resolver cache: %w", err)
	}
	return &Store{conn: conn, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) Get(normalized string) (domain.CanonicalGameKey, bool) {
	var raw string
	err := s.conn.QueryRow(
		`SELECT key_json FROM resolved_names WHERE normalized_name = ?`, normalized,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CanonicalGameKey{}, false
	}
	if err != nil {
		logging.Warn(s.logger, "resolver cache read failed", logging.FieldGame, normalized, "error", err)
		return domain.CanonicalGameKey{}, false
	}

	var key domain.CanonicalGameKey
	if err := json.Unmarshal([]byte(raw), &key); err != nil {
		logging.Warn(s.logger, "resolver cache entry corrupt", logging.FieldGame, normalized, "error", err)
		return domain.CanonicalGameKey{}, false
	}
	return key, true
}

func (s *Store) Put(normalized string, key domain.CanonicalGameKey) {
	raw, err := json.Marshal(key)
	if err != nil {
		logging.Warn(s.logger, "resolver cache encode failed", logging.FieldGame, normalized, "error", err)
		return
	}
	_, err = s.conn.Exec(`
		INSERT INTO resolved_names (normalized_name, key_json, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(normalized_name) DO UPDATE SET
			key_json = excluded.key_json,
			updated_at = CURRENT_TIMESTAMP`,
		normalized, string(raw))
	if err != nil {
		logging.Warn(s.logger, "resolver cache write failed", logging.FieldGame, normalized, "error", err)
	}
}
