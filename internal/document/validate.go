// ABOUTME: Write-time validation for snippet collections
// ABOUTME: Enforces tag cardinality, required fields and id uniqueness before persistence

package document

import (
	"errors"
	"fmt"
)

// Validation errors. These are rejected before any persistence attempt.
var (
	ErrMissingTitle   = errors.New("snippet title must not be empty")
	ErrMissingCommand = errors.New("snippet command must not be empty")
	ErrDuplicateID    = errors.New("duplicate snippet id")
	ErrTooManyTags    = errors.New("too many tags")
)

// ValidateScripts checks a full replacement collection against the write
// invariants. maxTags caps tags per snippet; zero disables the cap.
func ValidateScripts(scripts []Snippet, maxTags int) error {
	seen := make(map[string]struct{}, len(scripts))
	for i, s := range scripts {
		if s.Title == "" {
			return fmt.Errorf("snippet %d: %w", i, ErrMissingTitle)
		}
		if s.Command == "" {
			return fmt.Errorf("snippet %d (%s): %w", i, s.Title, ErrMissingCommand)
		}
		if maxTags > 0 && len(s.Tags) > maxTags {
			return fmt.Errorf("snippet %d (%s): %w: %d > %d", i, s.Title, ErrTooManyTags, len(s.Tags), maxTags)
		}
		if s.ID != "" {
			if _, dup := seen[s.ID]; dup {
				return fmt.Errorf("snippet %d (%s): %w: %s", i, s.Title, ErrDuplicateID, s.ID)
			}
			seen[s.ID] = struct{}{}
		}
	}
	return nil
}
