package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - Initial schema (signatures table + extension index)
const currentSchemaVersion = 1

// Store is the persistent signature database.
// Uses SQLite with WAL mode; reads during validation never block each other.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Option configures a Store during Open.
type Option func(*Store)

// WithLogger sets the logger used for diagnostic output.
// By default the store logs nowhere; the CLI boundary injects the
// process-wide logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open creates or opens a SQLite signature database at the given path.
// Applies required pragmas and migrations automatically. The parent
// directory is created if it does not exist.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//
// This function is idempotent - safe to call multiple times.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:   path,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &Error{Code: ErrCodeStorage, Message: fmt.Sprintf("create database directory %q", dir), Err: err}
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &Error{Code: ErrCodeStorage, Message: fmt.Sprintf("open database %q", path), Err: err}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &Error{Code: ErrCodeStorage, Message: fmt.Sprintf("connect to database %q", path), Err: err}
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, &Error{Code: ErrCodeStorage, Message: "apply pragmas", Err: err}
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, &Error{Code: ErrCodeStorage, Message: "apply schema", Err: err}
	}

	s.db = db
	s.logger.Debug("signature store opened", "path", path)
	return s, nil
}

// Close closes the database connection.
// Idempotent - calling Close on an already-closed store is a no-op.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return &Error{Code: ErrCodeStorage, Message: "close database", Err: err}
	}
	s.logger.Debug("signature store closed", "path", s.path)
	return nil
}

// Path returns the filesystem location of the backing database.
func (s *Store) Path() string {
	return s.path
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and records the schema
// version. Idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < currentSchemaVersion {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
	}

	return nil
}
