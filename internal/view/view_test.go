package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenshell/zenshell/internal/document"
)

func collection() []document.Snippet {
	return []document.Snippet{
		{ID: "a", Title: "Disk usage", Description: "Show free disk space", Tags: []string{"fs", "disk"}},
		{ID: "b", Title: "Docker prune", Description: "Clean dangling images", Tags: []string{"docker"}},
		{ID: "c", Title: "Port scan", Description: "List listening ports", Tags: []string{"net"}},
	}
}

func ids(list []document.Snippet) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.ID
	}
	return out
}

func TestVisible_LockedIsEmpty(t *testing.T) {
	visible := Visible(collection(), nil, false)

	assert.NotNil(t, visible)
	assert.Empty(t, visible)
}

func TestVisible_ShareFilterPreservesOrder(t *testing.T) {
	// Requested order differs from collection order; collection order wins.
	visible := Visible(collection(), []string{"c", "a"}, false)

	assert.Equal(t, []string{"a", "c"}, ids(visible))
}

func TestVisible_ShareFilterAppliesToAuthenticated(t *testing.T) {
	visible := Visible(collection(), []string{"b"}, true)

	assert.Equal(t, []string{"b"}, ids(visible))
}

func TestVisible_UnknownIDsIgnored(t *testing.T) {
	visible := Visible(collection(), []string{"nope", "b"}, false)

	assert.Equal(t, []string{"b"}, ids(visible))
}

func TestVisible_EmptyCapability(t *testing.T) {
	// A present-but-empty id set is a capability for nothing, even for an
	// authenticated caller.
	visible := Visible(collection(), []string{}, true)

	assert.Empty(t, visible)
}

func TestVisible_AdminSeesAll(t *testing.T) {
	visible := Visible(collection(), nil, true)

	assert.Equal(t, []string{"a", "b", "c"}, ids(visible))
}

func TestNarrow(t *testing.T) {
	full := collection()

	assert.Equal(t, full, Narrow(full, ""), "empty query is a no-op")
	assert.Equal(t, []string{"b"}, ids(Narrow(full, "DOCKER")), "case-insensitive, matches tags")
	assert.Equal(t, []string{"a"}, ids(Narrow(full, "free disk")), "matches description")
	assert.Equal(t, []string{"c"}, ids(Narrow(full, "port")), "matches title")
	assert.Empty(t, Narrow(full, "zzz"))
}

func TestNarrow_ComposesWithVisible(t *testing.T) {
	visible := Visible(collection(), []string{"a", "b"}, false)
	narrowed := Narrow(visible, "docker")

	assert.Equal(t, []string{"b"}, ids(narrowed))
}

func TestParseShareIDs(t *testing.T) {
	assert.Nil(t, ParseShareIDs(""))
	assert.Nil(t, ParseShareIDs("  "))
	assert.Nil(t, ParseShareIDs(",,"))
	assert.Equal(t, []string{"a"}, ParseShareIDs("a"))
	assert.Equal(t, []string{"a", "b"}, ParseShareIDs("a,b"))
	assert.Equal(t, []string{"a", "b"}, ParseShareIDs(" a , b ,"))
}

func TestEncodeShareIDs(t *testing.T) {
	encoded := EncodeShareIDs([]string{"a", "b", "c"})
	require.Equal(t, "a,b,c", encoded)

	assert.Equal(t, []string{"a", "b", "c"}, ParseShareIDs(encoded))
}
