package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Default config file names searched in the working directory.
var defaultConfigFiles = []string{
	"iconcache.yaml",
	"iconcache.yml",
	".iconcache.yaml",
}

// Load reads path on top of the built-in defaults, so omitted keys keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault looks in the working directory, then in
// ~/.config/iconcache/config.yaml, and falls back to Default.
func LoadDefault() (*Config, error) {
	for _, name := range defaultConfigFiles {
		if _, err := os.Stat(name); err == nil {
			return Load(name)
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "iconcache", "config.yaml")
		cfg, err := Load(path)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	return Default(), nil
}

// LoadFromEnv honours ICONCACHE_CONFIG, then applies the environment
// overrides.
func LoadFromEnv() (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if path := os.Getenv("ICONCACHE_CONFIG"); path != "" {
		cfg, err = Load(path)
	} else {
		cfg, err = LoadDefault()
	}
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays ICONCACHE_TTL, ICONCACHE_LOG_LEVEL and
// ICONCACHE_PROVIDER_URL onto cfg and revalidates it.
func ApplyEnv(cfg *Config) error {
	if val := os.Getenv("ICONCACHE_TTL"); val != "" {
		ttl, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("ICONCACHE_TTL: %w", err)
		}
		cfg.Cache.TTL = ttl
	}
	if val := os.Getenv("ICONCACHE_LOG_LEVEL"); val != "" {
		cfg.Log.Level = val
	}
	if val := os.Getenv("ICONCACHE_PROVIDER_URL"); val != "" {
		cfg.Provider.BaseURL = val
	}
	return cfg.Validate()
}
