package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig mirrors the optional ~/.fman/config.yaml.
type FileConfig struct {
	// ExtraProtectedPaths extends the built-in protected prefix list.
	ExtraProtectedPaths []string `yaml:"protected_paths"`

	// ExtraTypes adds extensions to an existing category, keyed by
	// category name (e.g. "images").
	ExtraTypes map[string][]string `yaml:"extra_types"`

	// MaxResults overrides MaxSearchResults when > 0.
	MaxResults int `yaml:"max_results"`

	// NoColor disables colored output.
	NoColor bool `yaml:"no_color"`
}

// LoadFile reads the config file at path. A missing file is not an
// error; it yields a zero-value config.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &fc, nil
}

// Apply merges the file config into the process-wide tables.
func (fc *FileConfig) Apply() {
	ProtectedPaths = append(ProtectedPaths, fc.ExtraProtectedPaths...)

	for name, exts := range fc.ExtraTypes {
		for i := range FileTypes {
			if string(FileTypes[i].Category) == name {
				FileTypes[i].Extensions = append(FileTypes[i].Extensions, exts...)
			}
		}
	}

	if fc.MaxResults > 0 {
		MaxSearchResults = fc.MaxResults
	}
}
