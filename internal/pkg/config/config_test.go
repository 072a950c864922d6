package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.App.Name != "skillstack" {
		t.Fatalf("name=%q", cfg.App.Name)
	}
	if cfg.Server.ListenAddr != "127.0.0.1:8000" {
		t.Fatalf("listen=%q", cfg.Server.ListenAddr)
	}
	if cfg.AI.APIKey != "" {
		t.Fatalf("api key should default empty, got %q", cfg.AI.APIKey)
	}
	if cfg.AI.TimeoutSec != 60 {
		t.Fatalf("timeout=%d", cfg.AI.TimeoutSec)
	}
}

func TestWriteAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "config.yaml")

	cfg := Default()
	cfg.AI.APIKey = "sk-test"
	cfg.AI.Model = "custom-model"
	cfg.Storage.DBPath = "/tmp/test.db"

	if err := WriteFile(path, cfg); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat error: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode=%v, want 0600", info.Mode().Perm())
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.AI.APIKey != "sk-test" || got.AI.Model != "custom-model" {
		t.Fatalf("ai=%+v", got.AI)
	}
	if got.Storage.DBPath != "/tmp/test.db" {
		t.Fatalf("db=%q", got.Storage.DBPath)
	}
}

func TestExpandEnvCredential(t *testing.T) {
	t.Setenv("TEST_PROVIDER_KEY", "sk-from-env")
	if got := expandEnv("${TEST_PROVIDER_KEY}"); got != "sk-from-env" {
		t.Fatalf("got %q", got)
	}
	if got := expandEnv("literal-key"); got != "literal-key" {
		t.Fatalf("got %q", got)
	}
}
