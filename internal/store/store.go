// ABOUTME: Store interface and error taxonomy for document persistence
// ABOUTME: Backends persist the whole document as a single atomic unit

package store

import (
	"context"
	"fmt"

	"github.com/zenshell/zenshell/internal/document"
)

// ErrorKind classifies persistence failures for operational reporting.
type ErrorKind int

const (
	// KindDirectoryUnwritable means the data directory could not be created.
	KindDirectoryUnwritable ErrorKind = iota
	// KindWriteFailed means the document bytes could not be written.
	KindWriteFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindDirectoryUnwritable:
		return "directory unwritable"
	case KindWriteFailed:
		return "write failed"
	default:
		return "unknown"
	}
}

// StoreError reports a persistence failure with the underlying I/O detail.
// These are the only errors worth logging operationally: they indicate
// deployment misconfiguration rather than caller misuse.
type StoreError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Kind, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Store defines durable read/write of the document as an atomic unit.
//
// Load never fails for a missing or malformed resource: it recovers the
// canonical shape instead (see document.Normalize). Save replaces the whole
// document; there is no locking across processes, so concurrent savers race
// and the last write wins with no merge.
type Store interface {
	Load(ctx context.Context) (*document.Document, error)
	Save(ctx context.Context, doc *document.Document) error
	Close() error
}
