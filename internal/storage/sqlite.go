package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteFileName is the database file name inside the data directory.
const SQLiteFileName = "mystart.db"

const currentSchemaVersion = 2

// SQLiteKV implements KV using a SQLite database.
type SQLiteKV struct {
	db   *sql.DB
	path string
}

// NewSQLiteKV opens (or creates) the database at path and migrates it.
func NewSQLiteKV(path string) (*SQLiteKV, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteKV{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteKV) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteKV) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the migrated schema version.
func (s *SQLiteKV) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

func (s *SQLiteKV) migrate() error {
	version, err := s.SchemaVersion()
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	if version < currentSchemaVersion {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteKV) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY NOT NULL,
			value TEXT NOT NULL
		);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 adds the updated_at column.
func (s *SQLiteKV) migrateV2() error {
	migration := `
		ALTER TABLE kv ADD COLUMN updated_at TEXT NOT NULL DEFAULT '';
		UPDATE schema_version SET version = 2;
	`
	_, err := s.db.Exec(migration)
	return err
}

// Get reads the value for key.
func (s *SQLiteKV) Get(key string) ([]byte, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(value), nil
}

// Set writes the value for key, replacing any previous value.
func (s *SQLiteKV) Set(key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(value), time.Now().UTC().Format(time.RFC3339))
	return err
}

// UpdatedAt returns when key was last written.
func (s *SQLiteKV) UpdatedAt(key string) (time.Time, error) {
	var updatedAt string
	err := s.db.QueryRow("SELECT updated_at FROM kv WHERE key = ?", key).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, updatedAt)
}
