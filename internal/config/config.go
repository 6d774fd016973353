// Package config loads the devmemory configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config is the devmemory configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Query   QueryConfig   `yaml:"query"`
	Log     LogConfig     `yaml:"log"`
}

// StorageConfig selects and configures the storage backend.
type StorageConfig struct {
	Driver string `yaml:"driver"` // sqlite | postgres
	Path   string `yaml:"path"`   // sqlite database file
	DSN    string `yaml:"dsn"`    // postgres connection URL
}

// QueryConfig holds default result caps.
type QueryConfig struct {
	Limit       int `yaml:"limit"`
	RecentLimit int `yaml:"recent_limit"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".devmemory", "config.yaml")
}

// DefaultDBPath returns the default SQLite database location.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "devmemory.db"
	}
	return filepath.Join(home, ".devmemory", "memory.db")
}

// Load reads the config file at path. A missing file is not an error: pure
// defaults apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{}
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	content = []byte(interpolateEnv(string(content)))

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// interpolateEnv replaces ${VAR} references with environment values, keeping
// the original text when the variable is unset.
func interpolateEnv(content string) string {
	varPattern := regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)
	return varPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := varPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})
}

func applyDefaults(cfg *Config) {
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "sqlite"
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultDBPath()
	}
	if cfg.Query.Limit == 0 {
		cfg.Query.Limit = 20
	}
	if cfg.Query.RecentLimit == 0 {
		cfg.Query.RecentLimit = 20
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
