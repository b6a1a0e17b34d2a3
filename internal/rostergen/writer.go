package rostergen

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/okian/squadcraft/internal/adapters/repository"
)

const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// Marshal renders doc as YAML keyed by the model's JSON field names, the
// names repository.LoadRosterFile decodes.
func Marshal(doc repository.RosterDocument) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode roster: %w", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("encode roster: %w", err)
	}
	out, err := yaml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("encode roster yaml: %w", err)
	}
	return out, nil
}

// WriteFile writes doc to path, creating parent directories.
func WriteFile(path string, doc repository.RosterDocument) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, filePermission); err != nil {
		return fmt.Errorf("write roster: %w", err)
	}
	return nil
}
