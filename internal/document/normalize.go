// ABOUTME: Shape recovery for persisted document bytes
// ABOUTME: Collapses canonical, bare-list and unreadable payloads into one normalized Document

package document

import (
	"bytes"
	"encoding/json"
)

// rawMeta accepts both the canonical camelCase key and the snake_case key
// written by earlier deployments.
type rawMeta struct {
	PasswordHash *string `json:"passwordHash"`
	LegacyHash   *string `json:"password_hash"`
}

type rawDocument struct {
	Meta    *rawMeta  `json:"meta"`
	Scripts []Snippet `json:"scripts"`
}

// Normalize decodes persisted bytes into a Document, recovering legacy and
// malformed shapes instead of failing. Three cases are recognized:
//
//   - canonical object {meta, scripts}: returned as-is, missing pieces filled
//   - bare list [...]: salvaged as the scripts of a credential-less document
//   - anything else (empty, truncated, wrong type): the canonical empty document
//
// Load paths must never crash on stored content, so Normalize returns no
// error.
func Normalize(data []byte) *Document {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Empty()
	}

	// Legacy shape: the collection was once stored as a bare JSON array.
	if trimmed[0] == '[' {
		var scripts []Snippet
		if err := json.Unmarshal(trimmed, &scripts); err != nil {
			return Empty()
		}
		doc := Empty()
		if scripts != nil {
			doc.Scripts = scripts
		}
		return doc
	}

	var raw rawDocument
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return Empty()
	}

	doc := Empty()
	if raw.Scripts != nil {
		doc.Scripts = raw.Scripts
	}
	if raw.Meta != nil {
		switch {
		case raw.Meta.PasswordHash != nil:
			doc.Meta.PasswordHash = raw.Meta.PasswordHash
		case raw.Meta.LegacyHash != nil:
			doc.Meta.PasswordHash = raw.Meta.LegacyHash
		}
	}
	return doc
}
