// Package sqlite implements the store.KV interface on a single-table
// SQLite database.
//
// SQLite is embedded — the whole store is one file next to the binary, no
// server to run. modernc.org/sqlite is a pure Go translation of the SQLite
// sources, so the binary cross-compiles without a C toolchain.
//
// The schema is deliberately a flat kv table rather than per-entity tables:
// the data model this service is compatible with stores whole JSON blobs
// under fixed logical keys, and the read/modify/write granularity of every
// operation is one blob. A relational schema would change the persisted
// format, not just the implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"

	"github.com/sakif/hackhub/internal/store"
)

// compile-time check that *DB implements store.KV
var _ store.KV = (*DB)(nil)

// DB wraps a sql.DB connection pool and provides the KV methods.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and prepares the schema.
//
// dbPath examples:
//   - "data/hackhub.db" → file-based, persistent
//   - ":memory:"        → in-memory, lost on close (used by tests)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Force an immediate connection so a bad path surfaces here, not on
	// the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool, flushing the WAL.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating kv table: %w", err)
	}
	return nil
}

// Get returns the raw value for key, or store.ErrNoKey if absent.
func (db *DB) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := db.conn.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNoKey
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading key %s: %w", key, err)
	}
	return value, nil
}

// Put replaces the value for key. Upsert on the primary key keeps this a
// single statement: INSERT the first time, overwrite afterwards.
func (db *DB) Put(ctx context.Context, key string, value []byte) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: writing key %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Absent keys delete cleanly.
func (db *DB) Delete(ctx context.Context, key string) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("sqlite: deleting key %s: %w", key, err)
	}
	return nil
}
