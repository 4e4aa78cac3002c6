package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadParsesYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
generator:
  source: bank
  model: gemini-2.0-flash
  temperature: 0.5
  timeout: 30s
  topics:
    - Loops
    - Recursion
cache:
  ttl: 2m
redis:
  addr: localhost:6379
  db: 2
postgres:
  url: postgres://quiz@localhost/quiz
  archive: true
quiz:
  count: 10
  difficulty: intermediate
  language: es
`)
	t.Setenv("GEMINI_API_KEY", "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Generator.Source != "bank" || cfg.Generator.Temperature != 0.5 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if len(cfg.Generator.Topics) != 2 || cfg.Redis.DB != 2 || !cfg.Postgres.Archive {
		t.Fatalf("unexpected nested values %+v", cfg)
	}
	if cfg.Quiz.Count != 10 || cfg.Quiz.Language != "es" {
		t.Fatalf("unexpected quiz section %+v", cfg.Quiz)
	}
	if got := TTLDuration(cfg.Cache.TTL, time.Minute); got != 2*time.Minute {
		t.Fatalf("expected 2m ttl, got %s", got)
	}
}

func TestLoadEnvOverridesEmptyKey(t *testing.T) {
	path := writeConfig(t, "generator:\n  model: m\n")
	t.Setenv("GEMINI_API_KEY", "from-env")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Generator.APIKey != "from-env" {
		t.Fatalf("expected env key, got %q", cfg.Generator.APIKey)
	}

	path = writeConfig(t, "generator:\n  api_key: from-file\n")
	cfg, _ = Load(path)
	if cfg.Generator.APIKey != "from-file" {
		t.Fatalf("file key should win, got %q", cfg.Generator.APIKey)
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Server.Port != "" {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("Load should fail on missing file")
	}
}

func TestTTLDurationFallback(t *testing.T) {
	if got := TTLDuration("", time.Second); got != time.Second {
		t.Fatalf("expected fallback, got %s", got)
	}
	if got := TTLDuration("soon", time.Second); got != time.Second {
		t.Fatalf("expected fallback for invalid value, got %s", got)
	}
	if got := TTLDuration("0s", time.Second); got != 0 {
		t.Fatalf("expected explicit zero, got %s", got)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
