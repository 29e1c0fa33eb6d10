package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/tursodatabase/go-libsql"
)

// pragmas are applied once per Open. libSQL rejects Exec for PRAGMAs that
// return rows, so every one goes through QueryContext and its rows are
// discarded.
var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA foreign_keys=ON",
	"PRAGMA synchronous=NORMAL",
}

// Open connects to the SQLite file at path through libSQL. The path
// ":memory:" opens a private in-memory database on a single connection,
// since every pooled connection would otherwise see its own empty copy.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("libsql", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	for _, p := range pragmas {
		if err := query(ctx, db, p); err != nil {
			db.Close()
			return nil, err
		}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return db, nil
}

func query(ctx context.Context, db *sql.DB, q string) error {
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return fmt.Errorf("executing %s: %w", q, err)
	}
	return rows.Close()
}

// Checker is a health check that pings the database and runs SQLite's
// quick integrity check.
type Checker struct{ DB *sql.DB }

func (c Checker) Check(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return err
	}
	var result string
	if err := c.DB.QueryRowContext(ctx, "PRAGMA quick_check").Scan(&result); err != nil {
		return fmt.Errorf("quick_check: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("quick_check: %s", result)
	}
	return nil
}
