package notify

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Store persists the notification policy to a JSON file, the desktop
// equivalent of the browser's local storage.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted policy. A missing file yields the default policy.
func (s *Store) Load() (Policy, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPolicy(), nil
		}
		return DefaultPolicy(), err
	}

	var p Policy
	if err := json.Unmarshal(data, &p); err != nil {
		return DefaultPolicy(), err
	}
	if p.BrowserPermission == "" {
		p.BrowserPermission = PermissionDefault
	}
	return p, nil
}

// Save writes the policy atomically.
func (s *Store) Save(p Policy) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
