package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing config must not fail: %v", err)
	}
	if cfg.Practice.Game != nil || cfg.Battle.Questions != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[practice]\ngame = \"2\"\n\n[battle]\nquestions = 5\ncountdown = 1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Practice.Game == nil || *cfg.Practice.Game != "2" {
		t.Fatalf("unexpected practice game: %+v", cfg.Practice)
	}
	if cfg.Battle.Questions == nil || *cfg.Battle.Questions != 5 || cfg.Battle.Countdown == nil || *cfg.Battle.Countdown != 1 {
		t.Fatalf("unexpected battle config: %+v", cfg.Battle)
	}
}

func TestEnvOverridesPaths(t *testing.T) {
	t.Setenv(envDBPath, "/tmp/custom.db")
	t.Setenv(envConfigPath, "/tmp/custom.toml")
	if got := DefaultDBPath(); got != "/tmp/custom.db" {
		t.Fatalf("unexpected db path: %s", got)
	}
	if got := DefaultConfigPath(); got != "/tmp/custom.toml" {
		t.Fatalf("unexpected config path: %s", got)
	}
}

func TestXDGPaths(t *testing.T) {
	t.Setenv(envDBPath, "")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultDBPath(); got != filepath.Join("/data", "incode", "incode.db") {
		t.Fatalf("unexpected db path: %s", got)
	}
}
