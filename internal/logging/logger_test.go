package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(Config{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "moodcal.log")
	logger, err := New(Config{Level: "debug", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.WithComponent("storage").WithDate("2026-02-09").Infow("saved", "key", "mood-tracker-data")
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	out := string(raw)
	for _, want := range []string{`"component":"storage"`, `"date":"2026-02-09"`, `"key":"mood-tracker-data"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in log output: %s", want, out)
		}
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("expected nop logger for nil")
	}
	l := Nop()
	if OrNop(l) != l {
		t.Fatal("expected logger passthrough")
	}
}
