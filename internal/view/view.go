// ABOUTME: Capability-scoped visibility for the snippet collection
// ABOUTME: Reconciles locked, shared-link and authenticated callers against one document

package view

import (
	"strings"

	"github.com/zenshell/zenshell/internal/document"
)

// ShareParam is the query parameter carrying share-link snippet ids.
const ShareParam = "ids"

// Visible computes the snippet subset a caller may see.
//
// Rule order:
//  1. unauthenticated with no share ids: nothing (locked)
//  2. share ids present: the collection filtered to those ids, in collection
//     order, regardless of authentication
//  3. authenticated with no share ids: everything
//
// requestedIDs nil means no share capability was presented; an empty non-nil
// set is a capability for nothing.
func Visible(full []document.Snippet, requestedIDs []string, isAuthenticated bool) []document.Snippet {
	if requestedIDs == nil {
		if !isAuthenticated {
			return []document.Snippet{}
		}
		return full
	}

	allowed := make(map[string]struct{}, len(requestedIDs))
	for _, id := range requestedIDs {
		allowed[id] = struct{}{}
	}

	visible := make([]document.Snippet, 0, len(requestedIDs))
	for _, s := range full {
		if _, ok := allowed[s.ID]; ok {
			visible = append(visible, s)
		}
	}
	return visible
}

// Narrow filters a visible set by a free-text query: case-insensitive
// substring match over title, description and each tag. Pure; an empty
// query returns the input unchanged.
func Narrow(list []document.Snippet, query string) []document.Snippet {
	if query == "" {
		return list
	}
	lower := strings.ToLower(query)

	matched := make([]document.Snippet, 0, len(list))
	for _, s := range list {
		if snippetMatches(s, lower) {
			matched = append(matched, s)
		}
	}
	return matched
}

func snippetMatches(s document.Snippet, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(s.Title), lowerQuery) {
		return true
	}
	if strings.Contains(strings.ToLower(s.Description), lowerQuery) {
		return true
	}
	for _, tag := range s.Tags {
		if strings.Contains(strings.ToLower(tag), lowerQuery) {
			return true
		}
	}
	return false
}

// ParseShareIDs decodes the comma-separated id list of a share link.
// An absent or blank parameter yields nil: no capability presented.
func ParseShareIDs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return ids
}

// EncodeShareIDs encodes ids as the share-link parameter value.
func EncodeShareIDs(ids []string) string {
	return strings.Join(ids, ",")
}
