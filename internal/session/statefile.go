// ABOUTME: Persisted client-side trust state surviving restarts
// ABOUTME: Small JSON file holding the trust flag and session token

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// StateFile is the client state persisted between runs. It replaces the
// implicit browser-storage trust flag with explicit on-disk state that has
// a defined initial value and a clear-on-logout transition.
type StateFile struct {
	Trusted bool   `json:"trusted"`
	Token   string `json:"token,omitempty"`
}

// LoadStateFile reads persisted client state. A missing or unreadable file
// yields the zero state: untrusted, no token.
func LoadStateFile(path string) *StateFile {
	data, err := os.ReadFile(path)
	if err != nil {
		return &StateFile{}
	}
	var sf StateFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return &StateFile{}
	}
	return &sf
}

// SaveStateFile persists client state, creating the parent directory if
// needed. The file is private to the user: it carries the session token.
func SaveStateFile(path string, sf *StateFile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	return nil
}

// ClearStateFile removes persisted client state. Missing files are fine.
func ClearStateFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing state file: %w", err)
	}
	return nil
}
