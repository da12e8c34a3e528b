package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all Warden configuration.
type Config struct {
	BackendURL string      `yaml:"backend_url"`
	APIToken   string      `yaml:"api_token"`
	DBPath     string      `yaml:"db_path"`
	Agents     []string    `yaml:"agents"`
	Poll       PollConfig  `yaml:"poll"`
	Cache      CacheConfig `yaml:"cache"`
}

// PollConfig controls the background refresh loop. Governance
// snapshots change on every invocation and poll frequently; lineage
// only changes when the graph is edited and polls far less often.
type PollConfig struct {
	StatusInterval  time.Duration `yaml:"status_interval"`
	LineageInterval time.Duration `yaml:"lineage_interval"`
}

// CacheConfig controls the snapshot cache.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled"`
	StatusTTL  time.Duration `yaml:"status_ttl"`
	LineageTTL time.Duration `yaml:"lineage_ttl"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		BackendURL: "http://localhost:8080",
		DBPath:     "warden.db",
		Poll: PollConfig{
			StatusInterval:  15 * time.Second,
			LineageInterval: 2 * time.Minute,
		},
		Cache: CacheConfig{
			Enabled:    true,
			StatusTTL:  30 * time.Second,
			LineageTTL: 5 * time.Minute,
		},
	}
}

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}
