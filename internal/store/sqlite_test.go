package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenshell/zenshell/internal/document"
)

// setupSQLiteStore creates a temporary SQLite store for testing.
func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestSQLiteStore_LoadEmpty(t *testing.T) {
	s := setupSQLiteStore(t)

	doc, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, doc.HasCredential())
	assert.Empty(t, doc.Scripts)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s := setupSQLiteStore(t)
	ctx := context.Background()

	doc := document.Empty()
	doc.SetCredential("$2a$10$hash")
	doc.Scripts = []document.Snippet{
		{ID: "a", Title: "List", Command: "ls -la", Tags: []string{"fs"}, CreatedAt: 1700000000000},
	}

	require.NoError(t, s.Save(ctx, doc))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
}

func TestSQLiteStore_WholeDocumentReplace(t *testing.T) {
	s := setupSQLiteStore(t)
	ctx := context.Background()

	first := document.Empty()
	first.Scripts = []document.Snippet{{ID: "a", Title: "A", Command: "ls", Tags: []string{}}}
	require.NoError(t, s.Save(ctx, first))

	second := document.Empty()
	second.Scripts = []document.Snippet{{ID: "b", Title: "B", Command: "df", Tags: []string{}}}
	require.NoError(t, s.Save(ctx, second))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Scripts, 1)
	assert.Equal(t, "b", loaded.Scripts[0].ID)
}
