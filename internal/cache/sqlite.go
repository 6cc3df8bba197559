package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

func nowUnixMilli() int64 { return time.Now().UnixMilli() }

// sqliteBackend is the durable tier: entries survive process restarts.
type sqliteBackend struct {
	db *sql.DB
}

// OpenSqliteBackend opens (or creates) the cache database at path and
// ensures the schema exists. WAL journal mode keeps concurrent reads
// cheap.
func OpenSqliteBackend(path string) (Backend, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS cache_entries (
		key TEXT PRIMARY KEY,
		entry BLOB NOT NULL,
		expires_at INTEGER NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, err
	}
	// Purge entries that expired while the process was down.
	if _, err := db.Exec(`DELETE FROM cache_entries WHERE expires_at < ?`, nowUnixMilli()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteBackend{db: db}, nil
}

func (s *sqliteBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT entry FROM cache_entries WHERE key = ?`, key)
	var entry []byte
	if err := row.Scan(&entry); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return entry, true, nil
}

func (s *sqliteBackend) Set(ctx context.Context, key string, entry []byte, expiresAt int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cache_entries (key, entry, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET entry = excluded.entry, expires_at = excluded.expires_at`,
		key, entry, expiresAt)
	return err
}

func (s *sqliteBackend) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = ?`, key)
	return err
}

// Close releases the underlying database handle.
func (s *sqliteBackend) Close() error { return s.db.Close() }
