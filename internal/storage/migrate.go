package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsTable = "schema_migrations"

// migration is one numbered schema step, e.g. 0001_kv_entries.
type migration struct {
	Name string
	Up   string
	Down string
}

func loadMigrations() ([]migration, error) {
	ups, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	slices.Sort(ups)
	out := make([]migration, 0, len(ups))
	for _, upFile := range ups {
		name := strings.TrimSuffix(path.Base(upFile), ".up.sql")
		up, err := migrationFiles.ReadFile(upFile)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		down, err := migrationFiles.ReadFile(path.Join("migrations", name+".down.sql"))
		if err != nil {
			return nil, fmt.Errorf("migration %s has no down step: %w", name, err)
		}
		out = append(out, migration{Name: name, Up: string(up), Down: string(down)})
	}
	return out, nil
}

func appliedMigrations(db *sql.DB) (map[string]bool, error) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS ` + migrationsTable + ` (
		name       TEXT PRIMARY KEY,
		applied_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
	)`); err != nil {
		return nil, fmt.Errorf("create %s: %w", migrationsTable, err)
	}
	rows, err := db.Query(`SELECT name FROM ` + migrationsTable)
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	defer rows.Close()
	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan applied migration: %w", err)
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

// MigrateUp applies every migration not yet recorded, oldest first.
func MigrateUp(db *sql.DB) error {
	migrations, err := loadMigrations()
	if err != nil {
		return err
	}
	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if applied[m.Name] {
			continue
		}
		if err := runMigration(db, m.Name, m.Up, `INSERT INTO `+migrationsTable+` (name) VALUES (?)`); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown reverts every recorded migration, newest first.
func MigrateDown(db *sql.DB) error {
	migrations, err := loadMigrations()
	if err != nil {
		return err
	}
	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}
	for _, m := range slices.Backward(migrations) {
		if !applied[m.Name] {
			continue
		}
		if err := runMigration(db, m.Name, m.Down, `DELETE FROM `+migrationsTable+` WHERE name = ?`); err != nil {
			return err
		}
	}
	return nil
}

// runMigration executes one step and its bookkeeping in a single transaction.
func runMigration(db *sql.DB, name, stmt, record string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("migration %s: begin: %w", name, err)
	}
	if _, err := tx.Exec(stmt); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("migration %s: %w", name, err)
	}
	if _, err := tx.Exec(record, name); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("migration %s: record: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migration %s: commit: %w", name, err)
	}
	return nil
}
