// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Holds the document as a single-row JSON blob with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/zenshell/zenshell/internal/document"
)

// SQLiteStore implements the Store interface using SQLite. The document
// remains the unit of atomicity: the whole JSON blob is replaced on save.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a SQLite store at the given path. The schema is
// created if it doesn't exist and parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &StoreError{Kind: KindDirectoryUnwritable, Path: dir, Err: err}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// WAL mode for concurrent reads
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS library_document (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			body TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return &SQLiteStore{db: db, logger: logger}, nil
}

// Load reads the single document row. No row yields the canonical empty
// document; malformed stored content is recovered, never an error.
func (s *SQLiteStore) Load(ctx context.Context) (*document.Document, error) {
	var body string
	err := s.db.QueryRowContext(ctx, "SELECT body FROM library_document WHERE id = 1").Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return document.Empty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}
	return document.Normalize([]byte(body)), nil
}

// Save replaces the document row with the serialized whole document.
func (s *SQLiteStore) Save(ctx context.Context, doc *document.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return &StoreError{Kind: KindWriteFailed, Path: "library_document", Err: err}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO library_document (id, body, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`, string(data), time.Now().UTC())
	if err != nil {
		return &StoreError{Kind: KindWriteFailed, Path: "library_document", Err: err}
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
