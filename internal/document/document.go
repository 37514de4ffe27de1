// ABOUTME: Document and Snippet model types for the snippet library
// ABOUTME: Defines the single persisted document shape and its invariants

package document

import (
	"time"

	"github.com/google/uuid"
)

// Meta holds document-level metadata. PasswordHash is nil until the
// one-time bootstrap sets it.
type Meta struct {
	PasswordHash *string `json:"passwordHash"`
}

// Source is an optional attribution pair for a snippet.
type Source struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Snippet is one stored command entry. ID and CreatedAt are set once at
// creation and never change. Command is opaque payload text; this package
// never parses or executes it.
type Snippet struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Command     string   `json:"command"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags"`
	Image       string   `json:"image,omitempty"`
	Source      *Source  `json:"source,omitempty"`
	WrapCode    bool     `json:"wrapCode"`
	CreatedAt   int64    `json:"createdAt"` // epoch milliseconds
}

// Document is the sole persisted object: the credential hash plus the
// ordered snippet collection. It is the unit of atomicity for every
// mutation (whole-document replace on save, last-write-wins).
type Document struct {
	Meta    Meta      `json:"meta"`
	Scripts []Snippet `json:"scripts"`
}

// Empty returns the canonical empty document: no credential, no snippets.
func Empty() *Document {
	return &Document{Scripts: []Snippet{}}
}

// HasCredential reports whether the bootstrap credential has been set.
func (d *Document) HasCredential() bool {
	return d.Meta.PasswordHash != nil && *d.Meta.PasswordHash != ""
}

// SetCredential records the credential hash. The auth gate is the only
// caller; it enforces the set-once rule.
func (d *Document) SetCredential(hash string) {
	d.Meta.PasswordHash = &hash
}

// FillDefaults assigns an ID and creation timestamp to any snippet missing
// them. IDs are opaque UUIDs; existing values are never touched.
func FillDefaults(scripts []Snippet) {
	now := time.Now().UnixMilli()
	for i := range scripts {
		if scripts[i].ID == "" {
			scripts[i].ID = uuid.NewString()
		}
		if scripts[i].CreatedAt == 0 {
			scripts[i].CreatedAt = now
		}
		if scripts[i].Tags == nil {
			scripts[i].Tags = []string{}
		}
	}
}
