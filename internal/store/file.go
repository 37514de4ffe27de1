// ABOUTME: JSON file implementation of the Store interface
// ABOUTME: Atomic whole-file replace with directory creation and a static-path guard artifact

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/zenshell/zenshell/internal/document"
)

// guardFileName is the access-control artifact written next to the data file
// to block direct retrieval through a co-located web server's static path.
const guardFileName = ".htaccess"

// FileStore persists the document as a pretty-printed JSON file.
//
// Saves are serialized within the process and written atomically (temp file
// plus rename), so a load never observes a partial write. There is no
// cross-process locking: the last writer wins.
type FileStore struct {
	path      string
	skipGuard bool
	logger    *slog.Logger

	mu sync.Mutex
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithSkipGuard disables creation of the static-path guard artifact.
func WithSkipGuard(skip bool) FileOption {
	return func(s *FileStore) { s.skipGuard = skip }
}

// NewFileStore creates a file store for the document at path. Unless
// disabled, a guard artifact denying static fetch of the data file is
// written alongside it on startup; this is deployment hardening, not part
// of the data contract, and an existing artifact is left untouched.
func NewFileStore(path string, opts ...FileOption) *FileStore {
	s := &FileStore{
		path:   path,
		logger: slog.Default().With("component", "store"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if !s.skipGuard {
		s.writeGuard()
	}

	return s
}

// writeGuard creates the guard artifact next to the data file if the
// directory already exists and no artifact is present. Failures are logged
// and ignored: the guard is best-effort hardening.
func (s *FileStore) writeGuard() {
	dir := filepath.Dir(s.path)
	if _, err := os.Stat(dir); err != nil {
		return
	}
	guardPath := filepath.Join(dir, guardFileName)
	if _, err := os.Stat(guardPath); err == nil {
		return
	}
	content := fmt.Sprintf("<Files %q>\n  Order Deny,Allow\n  Deny from all\n</Files>\n", filepath.Base(s.path))
	if err := os.WriteFile(guardPath, []byte(content), 0644); err != nil {
		s.logger.Warn("failed to write guard file", "path", guardPath, "error", err)
		return
	}
	s.logger.Info("guard file created", "path", guardPath)
}

// Load reads the persisted document. A missing file yields the canonical
// empty document; malformed or legacy content is recovered, never an error.
func (s *FileStore) Load(_ context.Context) (*document.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return document.Empty(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	return document.Normalize(data), nil
}

// Save serializes the whole document and replaces the file in one rename.
// The parent directory is created if needed.
func (s *FileStore) Save(_ context.Context, doc *document.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &StoreError{Kind: KindDirectoryUnwritable, Path: dir, Err: err}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &StoreError{Kind: KindWriteFailed, Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return &StoreError{Kind: KindWriteFailed, Path: s.path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StoreError{Kind: KindWriteFailed, Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StoreError{Kind: KindWriteFailed, Path: s.path, Err: err}
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return &StoreError{Kind: KindWriteFailed, Path: s.path, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &StoreError{Kind: KindWriteFailed, Path: s.path, Err: err}
	}

	return nil
}

// Close is a no-op; the file store holds no open handles between calls.
func (s *FileStore) Close() error { return nil }
