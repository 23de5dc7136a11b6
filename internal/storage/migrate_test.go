package storage

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sqlx.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db.DB); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateDown(db.DB); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	if err := MigrateUp(db.DB); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	kv, err := NewSQLiteKV(db)
	if err != nil {
		t.Fatalf("new kv: %v", err)
	}
	if err := kv.Set(t.Context(), MoodKey, `[]`); err != nil {
		t.Fatalf("set after roundtrip failed: %v", err)
	}
	got, ok, err := kv.Get(t.Context(), MoodKey)
	if err != nil || !ok {
		t.Fatalf("get after roundtrip failed: ok=%v err=%v", ok, err)
	}
	if got != `[]` {
		t.Fatalf("unexpected value after roundtrip: %q", got)
	}
}

func TestMigrateUpRecordsEachMigrationOnce(t *testing.T) {
	db, err := sqlx.Open("sqlite3", filepath.Join(t.TempDir(), "migrate-once.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	for range 2 {
		if err := MigrateUp(db.DB); err != nil {
			t.Fatalf("migrate up: %v", err)
		}
	}
	var names []string
	if err := db.Select(&names, `SELECT name FROM schema_migrations ORDER BY name`); err != nil {
		t.Fatalf("list applied: %v", err)
	}
	if len(names) != 1 || names[0] != "0001_kv_entries" {
		t.Fatalf("unexpected applied migrations: %v", names)
	}

	if err := MigrateDown(db.DB); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	var tables int
	if err := db.Get(&tables, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'kv_entries'`); err != nil {
		t.Fatalf("inspect schema: %v", err)
	}
	var recorded int
	if err := db.Get(&recorded, `SELECT COUNT(*) FROM schema_migrations`); err != nil {
		t.Fatalf("count applied: %v", err)
	}
	if tables != 0 || recorded != 0 {
		t.Fatalf("expected kv_entries dropped and nothing recorded, got tables=%d recorded=%d", tables, recorded)
	}
}
