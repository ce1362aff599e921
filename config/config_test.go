package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sanshu/iconcache/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "iconcache.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Cache.TTL != 30*time.Minute || cfg.Cache.MaxMemoryBytes() != 64<<20 {
		t.Fatalf("unexpected defaults %+v", cfg.Cache)
	}
}

func TestLoadKeepsDefaultsForOmittedKeys(t *testing.T) {
	path := writeConfig(t, `
cache:
  ttl: 10m
  max_entries: 0
search:
  max_page_size: 80
log:
  level: debug
  format: json
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Cache.TTL != 10*time.Minute {
		t.Fatalf("expected ttl 10m, got %v", cfg.Cache.TTL)
	}
	if cfg.Cache.MaxEntries != 0 {
		t.Fatalf("explicit zero must mean unbounded, got %d", cfg.Cache.MaxEntries)
	}
	if cfg.Cache.MaxMemoryMB != 64 || cfg.Search.DefaultPageSize != 50 || cfg.Search.MaxPageSize != 80 {
		t.Fatalf("omitted keys lost defaults: %+v %+v", cfg.Cache, cfg.Search)
	}
	if !cfg.Content.SeedSVGFromSearch {
		t.Fatal("seed_svg_from_search should default to true")
	}
}

func TestExpiryMinutesAlias(t *testing.T) {
	path := writeConfig(t, "cache:\n  cache_expiry_minutes: 5\n")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Fatalf("expected alias to set ttl to 5m, got %v", cfg.Cache.TTL)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"policy":    "cache:\n  eviction_policy: lru\n",
		"page size": "search:\n  default_page_size: 200\n",
		"sort":      "search:\n  default_sort: random\n",
		"png size":  "content:\n  default_png_size: 2048\n",
		"url":       "provider:\n  base_url: not-a-url\n",
		"level":     "log:\n  level: loud\n",
		"negative":  "cache:\n  max_entries: -1\n",
	}
	for name, body := range cases {
		if _, err := config.Load(writeConfig(t, body)); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	path := writeConfig(t, "cache:\n  ttl: 10m\n")
	t.Setenv("ICONCACHE_CONFIG", path)
	t.Setenv("ICONCACHE_TTL", "90s")
	t.Setenv("ICONCACHE_LOG_LEVEL", "warn")
	t.Setenv("ICONCACHE_PROVIDER_URL", "http://127.0.0.1:9999")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		t.Fatalf("load from env: %v", err)
	}
	if cfg.Cache.TTL != 90*time.Second || cfg.Log.Level != "warn" || cfg.Provider.BaseURL != "http://127.0.0.1:9999" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestApplyEnvBadTTL(t *testing.T) {
	t.Setenv("ICONCACHE_TTL", "soon")
	if err := config.ApplyEnv(config.Default()); err == nil {
		t.Fatal("expected parse error for ICONCACHE_TTL")
	}
}

func TestNewLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := config.LogConfig{Level: "info", Format: "json"}.NewLogger(&buf)
	logger.Debug("hidden")
	logger.Info("shown", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatal("debug line must be filtered at info level")
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Fatalf("expected json output, got %q", out)
	}
}
