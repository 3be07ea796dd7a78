package store

import (
	"crypto/sha256"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is a persistent Store backed by a local sqlite database. Variants
// survive process restarts, which is what makes repeated transform calls on
// the same source effectively free.
type SQLite struct {
	db   *sql.DB
	path string
}

// Stats summarizes the contents of a persistent store.
type Stats struct {
	Variants int
	Bytes    int64
}

// NewSQLite opens (creating if necessary) a variant database at path. An
// empty path defaults to ~/.cache/svgx/variants.db.
func NewSQLite(path string) (*SQLite, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, ".cache", "svgx", "variants.db")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	s := &SQLite{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *SQLite) Path() string {
	return s.path
}

// cacheKey collapses a Key into a fixed-width primary key.
func cacheKey(key Key) string {
	hash := sha256.Sum256([]byte(key.String()))
	return fmt.Sprintf("%x", hash)
}

func (s *SQLite) Exists(key Key) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM variants WHERE cache_key = ?", cacheKey(key)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check variant: %w", err)
	}
	return true, nil
}

func (s *SQLite) Get(key Key) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM variants WHERE cache_key = ?", cacheKey(key)).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get variant: %w", err)
	}

	_, _ = s.db.Exec("UPDATE variants SET accessed_at = CURRENT_TIMESTAMP WHERE cache_key = ?", cacheKey(key))

	return data, nil
}

func (s *SQLite) Put(key Key, data []byte) error {
	// INSERT OR REPLACE keeps Put last-write-wins: racing generations of the
	// same key carry identical bytes, so the winner is irrelevant.
	query := `
		INSERT OR REPLACE INTO variants (
			cache_key, file_id, hash, variant, data, created_at, accessed_at
		) VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`
	_, err := s.db.Exec(query, cacheKey(key), key.FileID, key.Hash, key.Variant, data)
	if err != nil {
		return fmt.Errorf("failed to put variant: %w", err)
	}
	return nil
}

// Purge removes every variant belonging to fileID, across all content hashes.
// Used by maintenance tooling to drop variants orphaned by re-uploads.
func (s *SQLite) Purge(fileID string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM variants WHERE file_id = ?", fileID)
	if err != nil {
		return 0, fmt.Errorf("failed to purge variants: %w", err)
	}
	return res.RowsAffected()
}

// Clear removes all variants.
func (s *SQLite) Clear() error {
	if _, err := s.db.Exec("DELETE FROM variants"); err != nil {
		return fmt.Errorf("failed to clear variants: %w", err)
	}
	return nil
}

// Stats reports the number of stored variants and their total size.
func (s *SQLite) Stats() (Stats, error) {
	var stats Stats
	err := s.db.QueryRow("SELECT COUNT(*), COALESCE(SUM(LENGTH(data)), 0) FROM variants").
		Scan(&stats.Variants, &stats.Bytes)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read store stats: %w", err)
	}
	return stats, nil
}

func (s *SQLite) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS variants (
		cache_key TEXT PRIMARY KEY,
		file_id TEXT NOT NULL,
		hash TEXT NOT NULL,
		variant TEXT NOT NULL,
		data BLOB NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		accessed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_variants_file
		ON variants(file_id, hash);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}
