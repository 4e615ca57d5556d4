package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test loader defaults
	if cfg.Loader.SkipValidation {
		t.Error("expected skip_validation to be false by default")
	}
	if cfg.Loader.StrictFields {
		t.Error("expected strict_fields to be false by default")
	}
	if !cfg.Loader.FollowExternal {
		t.Error("expected follow_external to be true by default")
	}
	if cfg.Loader.CheckBounds {
		t.Error("expected check_bounds to be false by default")
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
loader:
  skip_validation: true
  strict_fields: true
  follow_external: false
  check_bounds: true

logging:
  level: "debug"
  log_file: "gltftool.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if !cfg.Loader.SkipValidation {
		t.Error("expected skip_validation to be true")
	}
	if !cfg.Loader.StrictFields {
		t.Error("expected strict_fields to be true")
	}
	if cfg.Loader.FollowExternal {
		t.Error("expected follow_external to be false")
	}
	if !cfg.Loader.CheckBounds {
		t.Error("expected check_bounds to be true")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "gltftool.log" {
		t.Errorf("expected log file 'gltftool.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
loader:
  skip_validation: not a bool
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Loader.CheckBounds = true
	cfg.Logging.Level = "debug"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if !loaded.Loader.CheckBounds {
		t.Error("expected check_bounds to survive a save/load round trip")
	}
	if loaded.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", loaded.Logging.Level)
	}
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	if filepath.Base(path) != dirConfigName {
		t.Errorf("expected DefaultPath to end in %s, got %s", dirConfigName, path)
	}
	if filepath.Dir(path) != ConfigDir() {
		t.Errorf("expected DefaultPath under ConfigDir, got %s", path)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create gltftool.yaml in current directory
	configPath := filepath.Join(tmpDir, "gltftool.yaml")
	if err := os.WriteFile(configPath, []byte("logging:\n  level: warn\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find gltftool.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "strict flag",
			setup: func() {
				*flagStrict = true
			},
			verify: func(cfg *Config) {
				if !cfg.Loader.StrictFields {
					t.Error("expected strict_fields to be true with strict flag")
				}
			},
			teardown: func() {
				*flagStrict = false
			},
		},
		{
			name: "no-validate flag",
			setup: func() {
				*flagNoValidate = true
			},
			verify: func(cfg *Config) {
				if !cfg.Loader.SkipValidation {
					t.Error("expected skip_validation to be true with no-validate flag")
				}
			},
			teardown: func() {
				*flagNoValidate = false
			},
		},
		{
			name: "no-external flag",
			setup: func() {
				*flagNoExternal = true
			},
			verify: func(cfg *Config) {
				if cfg.Loader.FollowExternal {
					t.Error("expected follow_external to be false with no-external flag")
				}
			},
			teardown: func() {
				*flagNoExternal = false
			},
		},
		{
			name: "check-bounds flag",
			setup: func() {
				*flagCheckBounds = true
			},
			verify: func(cfg *Config) {
				if !cfg.Loader.CheckBounds {
					t.Error("expected check_bounds to be true with check-bounds flag")
				}
			},
			teardown: func() {
				*flagCheckBounds = false
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
loader:
  strict_fields: true
logging:
  level: "warn"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagDebug = true
	defer func() {
		*flagConfig = ""
		*flagDebug = false
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Level should be from flag (debug), not file (warn)
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug' from flag, got %s", cfg.Logging.Level)
	}

	// strict_fields should be from file since no flag override
	if !cfg.Loader.StrictFields {
		t.Error("expected strict_fields true from file")
	}
}
