package ingest

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Cache is a SQLite-backed key/value store for extracted document text. It is
// constructed explicitly and owned by the caller; there is no process-wide
// instance. Keys are the ingestion tags (pdf:<path>, textfile:<path>,
// url:<url>).
type Cache struct {
	db   *sql.DB
	path string
}

// OpenCache opens (or creates) the cache database inside dir.
func OpenCache(dir string) (*Cache, error) {
	if dir == "" {
		dir = "cache_dir"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, "documents.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping cache database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		key        TEXT PRIMARY KEY,
		text       TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize cache schema: %w", err)
	}

	return &Cache{db: db, path: dbPath}, nil
}

// Get returns the cached text for key. The second return value reports
// whether the key was present.
func (c *Cache) Get(key string) (string, bool, error) {
	var text string
	err := c.db.QueryRow(`SELECT text FROM documents WHERE key = ?`, key).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get %q: %w", key, err)
	}

	return text, true, nil
}

// Put stores text under key, replacing any previous entry.
func (c *Cache) Put(key, text string) error {
	_, err := c.db.Exec(
		`INSERT INTO documents (key, text, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET text = excluded.text, created_at = excluded.created_at`,
		key, text, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("cache put %q: %w", key, err)
	}

	return nil
}

// Path returns the cache database file path.
func (c *Cache) Path() string {
	return c.path
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
