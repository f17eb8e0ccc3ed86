package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LoadFileConfig decodes the settings file at path.
// Returns nil if the file doesn't exist (not an error)
func LoadFileConfig(path string) (*FileConfig, error) {
	if !FileExists(path) {
		return nil, nil
	}

	cfg := &FileConfig{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	return cfg, nil
}

// CreateDefaultFileConfig writes the commented template if path is absent.
func CreateDefaultFileConfig(path string) error {
	if FileExists(path) {
		return nil
	}
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(GenerateSettingsTemplate()), 0600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
