package config

import "runtime"

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Browser: BrowserConfig{
			Name:    defaultBrowser(runtime.GOOS),
			Profile: "",
		},
		Search: SearchConfig{
			Limit:            10,
			ExcludeDomains:   []string{},
			ExcludePatterns:  []string{},
			ExcludeSensitive: false,
		},
		Storage: StorageConfig{
			SnapshotDir: "",
		},
		Logging: LoggingConfig{
			Level: "warn",
			File:  "",
		},
	}
}

func defaultBrowser(goos string) string {
	if goos == "darwin" {
		return "safari"
	}
	return "chrome"
}
