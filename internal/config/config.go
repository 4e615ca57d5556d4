// Package config handles gltftool configuration loading and management.
package config

// Config holds all tool settings.
type Config struct {
	Loader  LoaderConfig  `yaml:"loader"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoaderConfig controls how assets are decoded.
type LoaderConfig struct {
	SkipValidation bool `yaml:"skip_validation"` // Skip the cross-reference validation pass
	StrictFields   bool `yaml:"strict_fields"`   // Reject unknown JSON fields
	FollowExternal bool `yaml:"follow_external"` // Read file-backed buffer/image URIs
	CheckBounds    bool `yaml:"check_bounds"`    // Audit declared accessor min/max against data
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Loader: LoaderConfig{
			SkipValidation: false,
			StrictFields:   false,
			FollowExternal: true,
			CheckBounds:    false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
