package migrations_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/playperu/cipherchamber/internal/database"
	"github.com/playperu/cipherchamber/internal/migrations"
)

var tables = []string{"rooms", "puzzles", "items", "game_sessions", "admins", "admin_sessions"}

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table,
	).Scan(&n)
	if err != nil {
		t.Fatalf("querying sqlite_master: %v", err)
	}
	return n == 1
}

func TestMigrations(t *testing.T) {
	db := openDB(t)

	v, err := migrations.Run(db)
	if err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	if v != 1 {
		t.Errorf("schema version = %d, want 1", v)
	}

	for _, table := range tables {
		if !tableExists(t, db, table) {
			t.Errorf("table %q not found", table)
		}
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	db := openDB(t)

	if _, err := migrations.Run(db); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := migrations.Run(db); err != nil {
		t.Fatalf("second run (should be no-op): %v", err)
	}
}

func TestReset(t *testing.T) {
	db := openDB(t)

	if _, err := migrations.Run(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	if err := migrations.Reset(db); err != nil {
		t.Fatalf("reset: %v", err)
	}
	for _, table := range tables {
		if tableExists(t, db, table) {
			t.Errorf("table %q still present after reset", table)
		}
	}

	if _, err := migrations.Run(db); err != nil {
		t.Fatalf("re-running migrations: %v", err)
	}
}
