package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagStrict      = flag.Bool("strict", false, "Reject unknown JSON fields")
	flagNoValidate  = flag.Bool("no-validate", false, "Skip document validation")
	flagNoExternal  = flag.Bool("no-external", false, "Do not read external buffer/image files")
	flagCheckBounds = flag.Bool("check-bounds", false, "Verify declared accessor min/max against data")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Args returns the non-flag arguments left after ParseFlags.
func Args() []string {
	return flag.Args()
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagStrict {
		cfg.Loader.StrictFields = true
	}
	if *flagNoValidate {
		cfg.Loader.SkipValidation = true
	}
	if *flagNoExternal {
		cfg.Loader.FollowExternal = false
	}
	if *flagCheckBounds {
		cfg.Loader.CheckBounds = true
	}
}
