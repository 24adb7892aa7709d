package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"
)

func init() {
	// Registers vec0 with every connection opened by the sqlite3 driver.
	sqlite_vec.Auto()
}

// ErrDimensionMismatch is returned when a database was built with a different
// embedding dimension than the one requested.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

const dimensionKey = "embedding_dimension"

// New opens a SQLite database connection at the given path.
// WAL journaling, foreign keys, a busy timeout and recursive triggers are
// enabled through the DSN so every pooled connection carries them.
func New(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000&_recursive_triggers=on", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Close checkpoints the WAL into the main database file and closes db.
func Close(db *sql.DB) error {
	// Best effort; a failed checkpoint leaves the WAL for the next open.
	_, _ = db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	return db.Close()
}

// Migrate creates the schema. It is idempotent and can be run multiple times safely.
// When dim > 0 the chunks_vec vector table is created with that dimension and
// the dimension is recorded; a later call with a different dimension fails
// with ErrDimensionMismatch. dim == 0 leaves vector storage untouched.
func Migrate(db *sql.DB, dim int) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS chunks (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			title TEXT,
			content TEXT NOT NULL,
			chunk_index INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_chunks_source ON chunks(source);`,
		`CREATE TABLE IF NOT EXISTS sources (
			path TEXT PRIMARY KEY,
			hash TEXT NOT NULL,
			title TEXT,
			indexed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS chunks_fts USING fts5(
			title,
			content,
			content=chunks,
			content_rowid=rowid,
			tokenize='porter unicode61'
		);`,
		`CREATE TRIGGER IF NOT EXISTS chunks_ai AFTER INSERT ON chunks BEGIN
			INSERT INTO chunks_fts(rowid, title, content)
			VALUES (NEW.rowid, NEW.title, NEW.content);
		END;`,
		`CREATE TRIGGER IF NOT EXISTS chunks_ad AFTER DELETE ON chunks BEGIN
			INSERT INTO chunks_fts(chunks_fts, rowid, title, content)
			VALUES ('delete', OLD.rowid, OLD.title, OLD.content);
		END;`,
		`CREATE TRIGGER IF NOT EXISTS chunks_au AFTER UPDATE ON chunks BEGIN
			INSERT INTO chunks_fts(chunks_fts, rowid, title, content)
			VALUES ('delete', OLD.rowid, OLD.title, OLD.content);
			INSERT INTO chunks_fts(rowid, title, content)
			VALUES (NEW.rowid, NEW.title, NEW.content);
		END;`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	if dim <= 0 {
		return nil
	}
	return migrateVectors(db, dim)
}

func migrateVectors(db *sql.DB, dim int) error {
	stored, err := EmbeddingDimension(db)
	if err != nil {
		return err
	}
	if stored != 0 && stored != dim {
		return fmt.Errorf("%w: database has %d, requested %d", ErrDimensionMismatch, stored, dim)
	}

	stmt := fmt.Sprintf(`CREATE VIRTUAL TABLE IF NOT EXISTS chunks_vec USING vec0(
		id TEXT PRIMARY KEY,
		embedding float[%d]
	);`, dim)
	if _, err := db.Exec(stmt); err != nil {
		return fmt.Errorf("failed to create vector table: %w", err)
	}

	if _, err := db.Exec(
		"INSERT INTO metadata (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		dimensionKey, strconv.Itoa(dim),
	); err != nil {
		return fmt.Errorf("failed to record embedding dimension: %w", err)
	}
	return nil
}

// EmbeddingDimension returns the recorded embedding dimension, or 0 when the
// database has never stored vectors.
func EmbeddingDimension(db *sql.DB) (int, error) {
	var value string
	err := db.QueryRow("SELECT value FROM metadata WHERE key = ?", dimensionKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read embedding dimension: %w", err)
	}

	dim, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid embedding dimension %q: %w", value, err)
	}
	return dim, nil
}

// DatabaseName derives a display name from a database path: the file name
// without extension, upper-cased.
func DatabaseName(path string) string {
	base := filepath.Base(path)
	return strings.ToUpper(strings.TrimSuffix(base, filepath.Ext(base)))
}
