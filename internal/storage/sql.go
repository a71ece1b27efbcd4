package storage

import (
	"context"
	"database/sql"
	"errors"
)

// SQL persists entries in the kv_entries table (see database.EnsureSchema).
// Writes are upserts, so concurrent writers resolve as last write wins.
type SQL struct {
	db *sql.DB
}

// NewSQL returns a Port backed by db.
func NewSQL(db *sql.DB) *SQL { return &SQL{db: db} }

// DB exposes the underlying handle.
func (s *SQL) DB() *sql.DB { return s.db }

func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	const q = `SELECT v FROM kv_entries WHERE k = ?`
	var v string
	err := s.db.QueryRowContext(ctx, q, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *SQL) Set(ctx context.Context, key, value string) error {
	const q = `INSERT INTO kv_entries (k, v) VALUES (?, ?)
               ON DUPLICATE KEY UPDATE v = VALUES(v), updated_at = UTC_TIMESTAMP()`
	_, err := s.db.ExecContext(ctx, q, key, value)
	return err
}

func (s *SQL) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE k = ?`, key)
	return err
}
