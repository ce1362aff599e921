// Package config loads iconcache settings from YAML and the environment.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"
)

// Config is the root of iconcache.yaml.
type Config struct {
	Cache    CacheConfig    `yaml:"cache"`
	Search   SearchConfig   `yaml:"search"`
	Content  ContentConfig  `yaml:"content"`
	Provider ProviderConfig `yaml:"provider"`
	Log      LogConfig      `yaml:"log"`
}

// CacheConfig bounds the in-memory store. Zero bounds mean unbounded and a
// zero sweep interval disables the background sweep.
type CacheConfig struct {
	TTL            time.Duration `yaml:"ttl"`
	ExpiryMinutes  int           `yaml:"cache_expiry_minutes,omitempty"`
	MaxEntries     int           `yaml:"max_entries"`
	MaxMemoryMB    int           `yaml:"max_memory_mb"`
	SweepInterval  time.Duration `yaml:"sweep_interval"`
	EvictionPolicy string        `yaml:"eviction_policy"`
}

// MaxMemoryBytes converts the configured budget to bytes.
func (c CacheConfig) MaxMemoryBytes() int64 {
	return int64(c.MaxMemoryMB) << 20
}

type SearchConfig struct {
	DefaultPageSize int    `yaml:"default_page_size"`
	MaxPageSize     int    `yaml:"max_page_size"`
	DefaultSort     string `yaml:"default_sort"`
}

type ContentConfig struct {
	DefaultPNGSize    int  `yaml:"default_png_size"`
	MaxPNGSize        int  `yaml:"max_png_size"`
	SeedSVGFromSearch bool `yaml:"seed_svg_from_search"`
}

type ProviderConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			TTL:            30 * time.Minute,
			MaxEntries:     2000,
			MaxMemoryMB:    64,
			SweepInterval:  5 * time.Minute,
			EvictionPolicy: "fifo",
		},
		Search: SearchConfig{
			DefaultPageSize: 50,
			MaxPageSize:     100,
			DefaultSort:     "relate",
		},
		Content: ContentConfig{
			DefaultPNGSize:    64,
			MaxPNGSize:        1024,
			SeedSVGFromSearch: true,
		},
		Provider: ProviderConfig{
			BaseURL:   "https://www.iconfont.cn",
			Timeout:   15 * time.Second,
			UserAgent: "iconcache/1.0",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// applyDefaults fills fields that must never be zero.
func applyDefaults(cfg *Config) {
	def := Default()

	if cfg.Cache.ExpiryMinutes > 0 {
		cfg.Cache.TTL = time.Duration(cfg.Cache.ExpiryMinutes) * time.Minute
		cfg.Cache.ExpiryMinutes = 0
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = def.Cache.TTL
	}
	cfg.Cache.EvictionPolicy = strings.ToLower(cfg.Cache.EvictionPolicy)
	if cfg.Cache.EvictionPolicy == "" {
		cfg.Cache.EvictionPolicy = def.Cache.EvictionPolicy
	}

	if cfg.Search.DefaultPageSize == 0 {
		cfg.Search.DefaultPageSize = def.Search.DefaultPageSize
	}
	if cfg.Search.MaxPageSize == 0 {
		cfg.Search.MaxPageSize = def.Search.MaxPageSize
	}
	if cfg.Search.DefaultSort == "" {
		cfg.Search.DefaultSort = def.Search.DefaultSort
	}

	if cfg.Content.DefaultPNGSize == 0 {
		cfg.Content.DefaultPNGSize = def.Content.DefaultPNGSize
	}
	if cfg.Content.MaxPNGSize == 0 {
		cfg.Content.MaxPNGSize = def.Content.MaxPNGSize
	}

	if cfg.Provider.BaseURL == "" {
		cfg.Provider.BaseURL = def.Provider.BaseURL
	}
	if cfg.Provider.Timeout == 0 {
		cfg.Provider.Timeout = def.Provider.Timeout
	}
	if cfg.Provider.UserAgent == "" {
		cfg.Provider.UserAgent = def.Provider.UserAgent
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	var errs []string

	if c.Cache.TTL < 0 {
		errs = append(errs, "cache.ttl must not be negative")
	}
	if c.Cache.MaxEntries < 0 {
		errs = append(errs, "cache.max_entries must not be negative")
	}
	if c.Cache.MaxMemoryMB < 0 {
		errs = append(errs, "cache.max_memory_mb must not be negative")
	}
	if c.Cache.SweepInterval < 0 {
		errs = append(errs, "cache.sweep_interval must not be negative")
	}
	if c.Cache.EvictionPolicy != "fifo" {
		errs = append(errs, fmt.Sprintf("cache.eviction_policy %q is not supported (fifo)", c.Cache.EvictionPolicy))
	}

	if c.Search.MaxPageSize < 1 {
		errs = append(errs, "search.max_page_size must be >= 1")
	}
	if c.Search.DefaultPageSize < 1 || c.Search.DefaultPageSize > c.Search.MaxPageSize {
		errs = append(errs, fmt.Sprintf("search.default_page_size must be within [1, %d]", c.Search.MaxPageSize))
	}
	switch c.Search.DefaultSort {
	case "relate", "new", "hot":
	default:
		errs = append(errs, fmt.Sprintf("search.default_sort %q must be relate, new or hot", c.Search.DefaultSort))
	}

	if c.Content.MaxPNGSize < 1 {
		errs = append(errs, "content.max_png_size must be >= 1")
	}
	if c.Content.DefaultPNGSize < 1 || c.Content.DefaultPNGSize > c.Content.MaxPNGSize {
		errs = append(errs, fmt.Sprintf("content.default_png_size must be within [1, %d]", c.Content.MaxPNGSize))
	}

	if u, err := url.Parse(c.Provider.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("provider.base_url %q is not an absolute URL", c.Provider.BaseURL))
	}
	if c.Provider.Timeout < 0 {
		errs = append(errs, "provider.timeout must not be negative")
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err.Error())
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format %q must be text or json", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}

// NewLogger builds the slog logger described by l, writing to w.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(l.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log.level %q must be debug, info, warn or error", s)
	}
}
