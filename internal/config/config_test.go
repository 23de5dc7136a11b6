package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.NoticeSeconds != 3 || cfg.TrendDays != 7 {
		t.Fatalf("unexpected ui defaults: %+v", cfg)
	}
	if cfg.RetentionDays != 30 || cfg.SchedulerBuffer != 16 {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
	if !strings.HasSuffix(cfg.DBPath, "moodcal.db") {
		t.Fatalf("unexpected db path default: %q", cfg.DBPath)
	}
	if cfg.Log.Level != "info" || !strings.HasSuffix(cfg.Log.Output, "moodcal.log") {
		t.Fatalf("unexpected log defaults: %+v", cfg.Log)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MOODCAL_DB_PATH", "state/custom.db")
	t.Setenv("MOODCAL_NOTICE_SECONDS", "5")
	t.Setenv("MOODCAL_TREND_DAYS", "14")
	t.Setenv("MOODCAL_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "state/custom.db" {
		t.Fatalf("unexpected db path override: %+v", cfg)
	}
	if cfg.NoticeSeconds != 5 || cfg.TrendDays != 14 {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level override: %+v", cfg.Log)
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "db_path: /tmp/mood.db\nretention_days: 90\ntrend_days: -1\nlog:\n  format: json\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/tmp/mood.db" || cfg.RetentionDays != 90 {
		t.Fatalf("unexpected file values: %+v", cfg)
	}
	if cfg.TrendDays != 7 {
		t.Fatalf("expected invalid trend days to fall back to default, got %d", cfg.TrendDays)
	}
	if cfg.Log.Format != "json" || cfg.Log.Level != "info" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for explicit missing config file")
	}
}
