// internal/store/sqlite.go
//
// SQLite-backed Store implementation. Values live in the session_state
// table (UNIQUE(session_id, key)); writes are upserts. The *sql.DB is
// opened and migrated by the caller.

package store

import (
	"context"
	"database/sql"
	"time"
)

type sqlite struct {
	db *sql.DB
}

// NewSQLiteStore wraps an already-open database handle as a Store.
func NewSQLiteStore(db *sql.DB) Store {
	return &sqlite{db: db}
}

// Save upserts the value under (sessionID, key).
func (s *sqlite) Save(ctx context.Context, sessionID, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO session_state (session_id, key, value, updated_at)
        VALUES (?,?,?,?)
        ON CONFLICT(session_id, key)
        DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		sessionID, key, value, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Load reads the value under (sessionID, key), mapping sql.ErrNoRows to
// ErrNotFound.
func (s *sqlite) Load(ctx context.Context, sessionID, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM session_state WHERE session_id=? AND key=?`,
		sessionID, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Delete removes the value if present.
func (s *sqlite) Delete(ctx context.Context, sessionID, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM session_state WHERE session_id=? AND key=?`, sessionID, key)
	return err
}
