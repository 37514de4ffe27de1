package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmpty(t *testing.T) {
	doc := Empty()

	assert.Nil(t, doc.Meta.PasswordHash)
	assert.NotNil(t, doc.Scripts)
	assert.Empty(t, doc.Scripts)
	assert.False(t, doc.HasCredential())
}

func TestEmpty_SerializesCanonicalShape(t *testing.T) {
	data, err := json.Marshal(Empty())
	require.NoError(t, err)

	assert.JSONEq(t, `{"meta":{"passwordHash":null},"scripts":[]}`, string(data))
}

func TestHasCredential(t *testing.T) {
	doc := Empty()
	assert.False(t, doc.HasCredential())

	empty := ""
	doc.Meta.PasswordHash = &empty
	assert.False(t, doc.HasCredential(), "empty hash should count as absent")

	doc.SetCredential("$2a$10$hash")
	assert.True(t, doc.HasCredential())
}

func TestNormalize_MissingAndEmpty(t *testing.T) {
	for _, payload := range []string{"", "   ", "null", "{}", "0", `""`} {
		doc := Normalize([]byte(payload))
		assert.False(t, doc.HasCredential(), "payload %q", payload)
		assert.Empty(t, doc.Scripts, "payload %q", payload)
		assert.NotNil(t, doc.Scripts, "payload %q", payload)
	}
}

func TestNormalize_BareList(t *testing.T) {
	payload := `[{"id":"a","title":"One","command":"ls"},{"id":"b","title":"Two","command":"pwd"}]`

	doc := Normalize([]byte(payload))

	assert.Nil(t, doc.Meta.PasswordHash)
	require.Len(t, doc.Scripts, 2)
	assert.Equal(t, "a", doc.Scripts[0].ID)
	assert.Equal(t, "b", doc.Scripts[1].ID)
}

func TestNormalize_Canonical(t *testing.T) {
	payload := `{"meta":{"passwordHash":"$2a$10$abc"},"scripts":[{"id":"x","title":"X","command":"date"}]}`

	doc := Normalize([]byte(payload))

	require.NotNil(t, doc.Meta.PasswordHash)
	assert.Equal(t, "$2a$10$abc", *doc.Meta.PasswordHash)
	require.Len(t, doc.Scripts, 1)
	assert.Equal(t, "x", doc.Scripts[0].ID)
}

func TestNormalize_LegacySnakeCaseHash(t *testing.T) {
	payload := `{"meta":{"password_hash":"$2a$10$legacy"},"scripts":[]}`

	doc := Normalize([]byte(payload))

	require.NotNil(t, doc.Meta.PasswordHash)
	assert.Equal(t, "$2a$10$legacy", *doc.Meta.PasswordHash)
}

func TestNormalize_MissingMeta(t *testing.T) {
	payload := `{"scripts":[{"id":"a","title":"A","command":"ls"}]}`

	doc := Normalize([]byte(payload))

	assert.False(t, doc.HasCredential())
	require.Len(t, doc.Scripts, 1)
}

func TestNormalize_Garbage(t *testing.T) {
	doc := Normalize([]byte(`{"meta": [truncated`))

	assert.False(t, doc.HasCredential())
	assert.Empty(t, doc.Scripts)
}

func TestValidateScripts_FourthTagRejected(t *testing.T) {
	scripts := []Snippet{
		{ID: "a", Title: "A", Command: "ls", Tags: []string{"x", "y", "z", "w"}},
	}

	err := ValidateScripts(scripts, 3)
	assert.ErrorIs(t, err, ErrTooManyTags)
}

func TestValidateScripts_TagLimitConfigurable(t *testing.T) {
	scripts := []Snippet{
		{ID: "a", Title: "A", Command: "ls", Tags: []string{"x", "y", "z", "w"}},
	}

	assert.NoError(t, ValidateScripts(scripts, 5))
	assert.NoError(t, ValidateScripts(scripts, 0), "zero disables the cap")
}

func TestValidateScripts_RequiredFields(t *testing.T) {
	err := ValidateScripts([]Snippet{{ID: "a", Command: "ls"}}, 3)
	assert.ErrorIs(t, err, ErrMissingTitle)

	err = ValidateScripts([]Snippet{{ID: "a", Title: "A"}}, 3)
	assert.ErrorIs(t, err, ErrMissingCommand)
}

func TestValidateScripts_DuplicateIDs(t *testing.T) {
	scripts := []Snippet{
		{ID: "a", Title: "One", Command: "ls"},
		{ID: "a", Title: "Two", Command: "pwd"},
	}

	err := ValidateScripts(scripts, 3)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestFillDefaults(t *testing.T) {
	scripts := []Snippet{
		{Title: "New", Command: "ls"},
		{ID: "keep", Title: "Old", Command: "pwd", CreatedAt: 42},
	}

	FillDefaults(scripts)

	assert.NotEmpty(t, scripts[0].ID)
	assert.NotZero(t, scripts[0].CreatedAt)
	assert.NotNil(t, scripts[0].Tags)

	assert.Equal(t, "keep", scripts[1].ID, "existing id must never change")
	assert.EqualValues(t, 42, scripts[1].CreatedAt, "existing timestamp must never change")
}
