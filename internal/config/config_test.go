package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Lucid.Command != "lucid" {
		t.Errorf("expected default command 'lucid', got %q", cfg.Lucid.Command)
	}
	if cfg.Lucid.LocalHitThreshold != 1 {
		t.Errorf("expected default threshold 1, got %d", cfg.Lucid.LocalHitThreshold)
	}
	if time.Duration(cfg.Lucid.RecallTimeout) != 800*time.Millisecond {
		t.Errorf("expected 800ms recall timeout, got %v", cfg.Lucid.RecallTimeout)
	}
	if time.Duration(cfg.Lucid.FailureCooldown) != 10*time.Second {
		t.Errorf("expected 10s cooldown, got %v", cfg.Lucid.FailureCooldown)
	}
	if cfg.Lucid.Budget != 200 {
		t.Errorf("expected budget 200, got %d", cfg.Lucid.Budget)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "memory.yaml")
	data := `db_path: /tmp/custom.db
log_level: debug
lucid:
  command: /usr/local/bin/lucid
  budget: 400
  local_hit_threshold: 3
  recall_timeout: 1500ms
  failure_cooldown: 30s
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("db_path: got %q", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level: got %q", cfg.LogLevel)
	}
	if cfg.Lucid.Budget != 400 {
		t.Errorf("budget: got %d", cfg.Lucid.Budget)
	}
	if time.Duration(cfg.Lucid.RecallTimeout) != 1500*time.Millisecond {
		t.Errorf("recall_timeout: got %v", cfg.Lucid.RecallTimeout)
	}
	// Unset file fields keep defaults
	if time.Duration(cfg.Lucid.SyncTimeout) != 150*time.Millisecond {
		t.Errorf("sync_timeout should keep default, got %v", cfg.Lucid.SyncTimeout)
	}
}

func TestLoad_MissingFileTolerated(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Lucid.Command != "lucid" {
		t.Errorf("expected defaults, got %q", cfg.Lucid.Command)
	}
}

func TestLoad_BadDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "memory.yaml")
	os.WriteFile(path, []byte("lucid:\n  sync_timeout: banana\n"), 0o644)

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid duration")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "memory.yaml")
	os.WriteFile(path, []byte("lucid:\n  command: from-file\n  local_hit_threshold: 2\n"), 0o644)

	t.Setenv("ZEROCLAW_LUCID_CMD", "from-env")
	t.Setenv("ZEROCLAW_LUCID_THRESHOLD", "7")
	t.Setenv("ZEROCLAW_MEMORY_DB", "/tmp/env.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Lucid.Command != "from-env" {
		t.Errorf("env should beat file, got %q", cfg.Lucid.Command)
	}
	if cfg.Lucid.LocalHitThreshold != 7 {
		t.Errorf("env threshold should beat file, got %d", cfg.Lucid.LocalHitThreshold)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Errorf("env db path should apply, got %q", cfg.DBPath)
	}
}

func TestOptionsConversion(t *testing.T) {
	cfg := Default()
	opts := cfg.Lucid.Options()
	if opts.RecallTimeout != 800*time.Millisecond || opts.Budget != 200 {
		t.Errorf("conversion mismatch: %+v", opts)
	}
}
