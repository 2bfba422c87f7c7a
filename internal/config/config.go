package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppName names the config and cache directories.
const AppName = "findsite"

// Config holds all findsite configuration.
type Config struct {
	Browser BrowserConfig `yaml:"browser"`
	Search  SearchConfig  `yaml:"search"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

type BrowserConfig struct {
	Name    string `yaml:"name"`
	Profile string `yaml:"profile"`
}

type SearchConfig struct {
	Limit           int      `yaml:"limit"`
	ExcludeDomains  []string `yaml:"exclude_domains"`
	ExcludePatterns []string `yaml:"exclude_patterns"`

	// ExcludeSensitive adds DefaultDenylistDomains to ExcludeDomains.
	ExcludeSensitive bool `yaml:"exclude_sensitive"`
}

// ExcludedDomains returns the configured domains plus the sensitive-domain
// list when ExcludeSensitive is set.
func (s SearchConfig) ExcludedDomains() []string {
	domains := append([]string{}, s.ExcludeDomains...)
	if s.ExcludeSensitive {
		domains = append(domains, DefaultDenylistDomains()...)
	}
	return domains
}

type StorageConfig struct {
	// SnapshotDir holds history snapshots. Empty means the XDG cache dir.
	SnapshotDir string `yaml:"snapshot_dir"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultPath returns $XDG_CONFIG_HOME/findsite/config.yaml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// DefaultSnapshotDir returns $XDG_CACHE_HOME/findsite/snapshots.
func DefaultSnapshotDir() string {
	return filepath.Join(xdg.CacheHome, AppName, "snapshots")
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config file")
	}

	if cfg.Search.Limit <= 0 {
		cfg.Search.Limit = DefaultConfig().Search.Limit
	}

	return cfg, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	return LoadOrCreateAt(DefaultPath())
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errors.Wrap(err, "creating config directory")
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "marshaling default config")
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, errors.Wrap(err, "writing default config")
		}

		return cfg, nil
	}

	return Load(path)
}

// SnapshotDir returns the configured snapshot directory with ~ expanded,
// or the default one.
func (c *Config) SnapshotDir() (string, error) {
	if c.Storage.SnapshotDir == "" {
		return DefaultSnapshotDir(), nil
	}
	return ExpandPath(c.Storage.SnapshotDir)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "resolving home directory")
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}
