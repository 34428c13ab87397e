// Package store is the SQLite analysis catalog. It persists per-file
// analysis results (symbols, imports, metrics, detections, diagnostics)
// plus the project-level dependency edges and importance scores, and
// tracks content hashes so unchanged files can be skipped on
// re-analysis.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite data access layer for keystone's 9 tables.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use in transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates all 9 tables and indexes. Idempotent.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(schemaDDL)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
-- Per-file catalog tables

CREATE TABLE IF NOT EXISTS files (
  id              INTEGER PRIMARY KEY,
  path            TEXT NOT NULL UNIQUE,
  language        TEXT NOT NULL,
  hash            TEXT NOT NULL,
  size_bytes      INTEGER NOT NULL DEFAULT 0,
  line_count      INTEGER NOT NULL DEFAULT 0,
  last_analyzed   TIMESTAMP
);

CREATE TABLE IF NOT EXISTS symbols (
  id              INTEGER PRIMARY KEY,
  file_id         INTEGER NOT NULL REFERENCES files(id),
  name            TEXT NOT NULL,
  kind            TEXT NOT NULL,
  start_line      INTEGER,
  end_line        INTEGER,
  signature       TEXT,
  complexity      INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS imports (
  id              INTEGER PRIMARY KEY,
  file_id         INTEGER NOT NULL REFERENCES files(id),
  path            TEXT NOT NULL,
  line            INTEGER
);

CREATE TABLE IF NOT EXISTS metrics (
  file_id         INTEGER PRIMARY KEY REFERENCES files(id),
  code_lines      INTEGER NOT NULL DEFAULT 0,
  comment_lines   INTEGER NOT NULL DEFAULT 0,
  blank_lines     INTEGER NOT NULL DEFAULT 0,
  total_lines     INTEGER NOT NULL DEFAULT 0,
  cyclomatic      INTEGER NOT NULL DEFAULT 0,
  cognitive       INTEGER NOT NULL DEFAULT 0,
  halstead_volume REAL NOT NULL DEFAULT 0,
  halstead_difficulty REAL NOT NULL DEFAULT 0,
  halstead_effort REAL NOT NULL DEFAULT 0,
  maintainability REAL NOT NULL DEFAULT 0,
  functions       INTEGER NOT NULL DEFAULT 0,
  types           INTEGER NOT NULL DEFAULT 0,
  imports         INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS detections (
  id              INTEGER PRIMARY KEY,
  file_id         INTEGER NOT NULL REFERENCES files(id),
  name            TEXT NOT NULL,
  category        TEXT NOT NULL,
  confidence      REAL NOT NULL,
  version_hints   TEXT
);

CREATE TABLE IF NOT EXISTS diagnostics (
  id              INTEGER PRIMARY KEY,
  file_id         INTEGER NOT NULL REFERENCES files(id),
  message         TEXT NOT NULL
);

-- Project-level tables

CREATE TABLE IF NOT EXISTS edges (
  id              INTEGER PRIMARY KEY,
  from_id         INTEGER NOT NULL REFERENCES files(id),
  to_id           INTEGER NOT NULL REFERENCES files(id),
  UNIQUE (from_id, to_id)
);

CREATE TABLE IF NOT EXISTS scores (
  file_id         INTEGER PRIMARY KEY REFERENCES files(id),
  overall         REAL NOT NULL DEFAULT 0,
  size            REAL NOT NULL DEFAULT 0,
  centrality      REAL NOT NULL DEFAULT 0,
  complexity      REAL NOT NULL DEFAULT 0,
  dependency      REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS metadata (
  key             TEXT PRIMARY KEY,
  value           TEXT NOT NULL
);

-- Indexes

CREATE INDEX IF NOT EXISTS idx_files_language ON files(language);
CREATE INDEX IF NOT EXISTS idx_symbols_file ON symbols(file_id);
CREATE INDEX IF NOT EXISTS idx_symbols_name ON symbols(name);
CREATE INDEX IF NOT EXISTS idx_imports_file ON imports(file_id);
CREATE INDEX IF NOT EXISTS idx_imports_path ON imports(path);
CREATE INDEX IF NOT EXISTS idx_detections_file ON detections(file_id);
CREATE INDEX IF NOT EXISTS idx_detections_name ON detections(name);
CREATE INDEX IF NOT EXISTS idx_diagnostics_file ON diagnostics(file_id);
CREATE INDEX IF NOT EXISTS idx_edges_from ON edges(from_id);
CREATE INDEX IF NOT EXISTS idx_edges_to ON edges(to_id);
`

// DeleteFileData transactionally removes a file and every row that
// references it. Deletes in reverse-dependency order to respect FK
// constraints.
func (s *Store) DeleteFileData(fileID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM edges WHERE from_id = ? OR to_id = ?", fileID, fileID); err != nil {
		return fmt.Errorf("delete edges: %w", err)
	}
	for _, q := range []string{
		"DELETE FROM scores WHERE file_id = ?",
		"DELETE FROM diagnostics WHERE file_id = ?",
		"DELETE FROM detections WHERE file_id = ?",
		"DELETE FROM metrics WHERE file_id = ?",
		"DELETE FROM imports WHERE file_id = ?",
		"DELETE FROM symbols WHERE file_id = ?",
		"DELETE FROM files WHERE id = ?",
	} {
		if _, err := tx.Exec(q, fileID); err != nil {
			return fmt.Errorf("delete file data: %w", err)
		}
	}
	return tx.Commit()
}
