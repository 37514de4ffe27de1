package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResume_InitialStates(t *testing.T) {
	tests := []struct {
		name       string
		trusted    bool
		shareIDs   []string
		needsSetup bool
		want       State
	}{
		{"fresh client, credential exists", false, nil, false, StateLocked},
		{"share link, untrusted", false, []string{"a"}, false, StateShared},
		{"share link overrides trust flag", true, []string{"a"}, false, StateShared},
		{"trust flag survives restart", true, nil, false, StateAdmin},
		{"needs setup overrides everything", true, []string{"a"}, true, StateBootstrapping},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Resume(tt.trusted, "tok", tt.shareIDs, tt.needsSetup)
			assert.Equal(t, tt.want, s.State())
		})
	}
}

func TestSession_VerifySuccessDiscardsShareIDs(t *testing.T) {
	s := Resume(false, "", []string{"a", "b"}, false)
	require.Equal(t, StateShared, s.State())
	require.Equal(t, []string{"a", "b"}, s.ShareIDs())

	s.Authenticated("token-123")

	assert.Equal(t, StateAdmin, s.State())
	assert.Nil(t, s.ShareIDs(), "admin sees the full collection, not the shared subset")
	assert.Equal(t, "token-123", s.Token())
	assert.True(t, s.CanWrite())
}

func TestSession_LockedToAdmin(t *testing.T) {
	s := Resume(false, "", nil, false)
	require.Equal(t, StateLocked, s.State())
	assert.False(t, s.CanWrite())

	s.Authenticated("tok")
	assert.Equal(t, StateAdmin, s.State())
}

func TestSession_BootstrappingToAdmin(t *testing.T) {
	s := Resume(false, "", nil, true)
	require.Equal(t, StateBootstrapping, s.State())
	assert.False(t, s.CanWrite())

	s.Authenticated("tok")
	assert.Equal(t, StateAdmin, s.State())
}

func TestSession_Logout(t *testing.T) {
	s := Resume(true, "tok", nil, false)
	require.Equal(t, StateAdmin, s.State())

	s.Logout()

	assert.Equal(t, StateLocked, s.State())
	assert.Empty(t, s.Token())
	assert.False(t, s.CanWrite())
}

func TestSession_SharedOffersNoWrites(t *testing.T) {
	s := Resume(false, "", []string{"a"}, false)
	assert.False(t, s.CanWrite())
}

func TestStateFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.json")

	require.NoError(t, SaveStateFile(path, &StateFile{Trusted: true, Token: "tok"}))

	sf := LoadStateFile(path)
	assert.True(t, sf.Trusted)
	assert.Equal(t, "tok", sf.Token)
}

func TestStateFile_MissingIsZero(t *testing.T) {
	sf := LoadStateFile(filepath.Join(t.TempDir(), "nope.json"))

	assert.False(t, sf.Trusted)
	assert.Empty(t, sf.Token)
}

func TestStateFile_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, SaveStateFile(path, &StateFile{Trusted: true}))

	require.NoError(t, ClearStateFile(path))
	require.NoError(t, ClearStateFile(path), "clearing twice is fine")

	assert.False(t, LoadStateFile(path).Trusted)
}
