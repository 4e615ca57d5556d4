package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config file names: localConfigName is looked up in the working
// directory, dirConfigName under ConfigDir.
const (
	localConfigName = "gltftool.yaml"
	dirConfigName   = "config.yaml"
)

// DefaultPath returns the path Save writes to and Load discovers.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), dirConfigName)
}

// Save writes the config to the user's config directory.
func (c *Config) Save() error {
	return c.SaveTo(DefaultPath())
}

// SaveTo writes the config to a specific path, creating parent
// directories as needed.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
