package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenshell/zenshell/internal/document"
	"github.com/zenshell/zenshell/internal/store"
)

func setupGate(t *testing.T) (*Gate, store.Store) {
	t.Helper()
	st := store.NewFileStore(filepath.Join(t.TempDir(), "data.json"), store.WithSkipGuard(true))
	return NewGate(st), st
}

func TestNeedsSetup(t *testing.T) {
	doc := document.Empty()
	assert.True(t, NeedsSetup(doc))

	doc.SetCredential("$2a$10$hash")
	assert.False(t, NeedsSetup(doc))
}

func TestGate_BootstrapThenVerify(t *testing.T) {
	gate, _ := setupGate(t)
	ctx := context.Background()

	require.NoError(t, gate.Bootstrap(ctx, "hunter2"))

	assert.NoError(t, gate.Verify(ctx, "hunter2"))
	assert.ErrorIs(t, gate.Verify(ctx, "wrong"), ErrMismatch)
	assert.ErrorIs(t, gate.Verify(ctx, ""), ErrMismatch)
}

func TestGate_BootstrapEmpty(t *testing.T) {
	gate, st := setupGate(t)
	ctx := context.Background()

	assert.ErrorIs(t, gate.Bootstrap(ctx, ""), ErrEmptyCredential)

	// Rejected before any persistence attempt.
	doc, err := st.Load(ctx)
	require.NoError(t, err)
	assert.False(t, doc.HasCredential())
}

func TestGate_BootstrapSingleUse(t *testing.T) {
	gate, _ := setupGate(t)
	ctx := context.Background()

	require.NoError(t, gate.Bootstrap(ctx, "first"))

	assert.ErrorIs(t, gate.Bootstrap(ctx, "second"), ErrAlreadyBootstrapped)
	assert.ErrorIs(t, gate.Bootstrap(ctx, "first"), ErrAlreadyBootstrapped)

	// The original credential still verifies.
	assert.NoError(t, gate.Verify(ctx, "first"))
	assert.ErrorIs(t, gate.Verify(ctx, "second"), ErrMismatch)
}

func TestGate_VerifyBeforeBootstrap(t *testing.T) {
	gate, _ := setupGate(t)

	assert.ErrorIs(t, gate.Verify(context.Background(), "anything"), ErrNoCredential)
}

func TestGate_VerifyDoesNotMutate(t *testing.T) {
	gate, st := setupGate(t)
	ctx := context.Background()

	require.NoError(t, gate.Bootstrap(ctx, "hunter2"))
	before, err := st.Load(ctx)
	require.NoError(t, err)

	_ = gate.Verify(ctx, "hunter2")
	_ = gate.Verify(ctx, "wrong")

	after, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
