package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenshell/zenshell/internal/auth"
	"github.com/zenshell/zenshell/internal/document"
	"github.com/zenshell/zenshell/internal/server"
	"github.com/zenshell/zenshell/internal/store"
)

// setupClient runs a real action API server and returns a client for it.
func setupClient(t *testing.T) *Client {
	t.Helper()

	st := store.NewFileStore(filepath.Join(t.TempDir(), "data.json"), store.WithSkipGuard(true))
	srv := server.New(st, auth.NewGate(st), auth.NewIssuer([]byte("test-secret")), server.Options{
		SessionTTL: time.Hour,
		MaxTags:    3,
	})

	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	return New(ts.URL)
}

func TestClient_SetupFlow(t *testing.T) {
	c := setupClient(t)
	ctx := context.Background()

	needsSetup, err := c.InitCheck(ctx)
	require.NoError(t, err)
	assert.True(t, needsSetup)

	token, err := c.Setup(ctx, "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	needsSetup, err = c.InitCheck(ctx)
	require.NoError(t, err)
	assert.False(t, needsSetup)
}

func TestClient_LoginWrongPassword(t *testing.T) {
	c := setupClient(t)
	ctx := context.Background()

	_, err := c.Setup(ctx, "hunter2")
	require.NoError(t, err)

	_, err = New(c.baseURL).Login(ctx, "wrong")
	assert.ErrorContains(t, err, "invalid password")
}

func TestClient_SaveAndGet(t *testing.T) {
	c := setupClient(t)
	ctx := context.Background()

	_, err := c.Setup(ctx, "hunter2")
	require.NoError(t, err)

	scripts := []document.Snippet{
		{ID: "a", Title: "List", Command: "ls", Tags: []string{"fs"}, CreatedAt: 1700000000000},
	}
	require.NoError(t, c.SaveData(ctx, scripts))

	loaded, err := c.GetData(ctx)
	require.NoError(t, err)
	assert.Equal(t, scripts, loaded)
}

func TestClient_SaveWithoutToken(t *testing.T) {
	c := setupClient(t)
	ctx := context.Background()

	_, err := c.Setup(ctx, "hunter2")
	require.NoError(t, err)

	fresh := New(c.baseURL)
	err = fresh.SaveData(ctx, []document.Snippet{{Title: "A", Command: "ls"}})
	assert.ErrorContains(t, err, "authentication required")
}

func TestClient_GetDataAnonymous(t *testing.T) {
	c := setupClient(t)
	ctx := context.Background()

	_, err := c.Setup(ctx, "hunter2")
	require.NoError(t, err)
	require.NoError(t, c.SaveData(ctx, []document.Snippet{{ID: "a", Title: "A", Command: "ls"}}))

	// Reads stay anonymous: share links must work without credentials.
	loaded, err := New(c.baseURL).GetData(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}
