package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var sqlFiles embed.FS

func setup() error {
	goose.SetBaseFS(sqlFiles)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}
	return nil
}

// Run applies all pending migrations against db and returns the resulting
// schema version.
func Run(db *sql.DB) (int64, error) {
	if err := setup(); err != nil {
		return 0, err
	}
	if err := goose.Up(db, "."); err != nil {
		return 0, fmt.Errorf("running migrations: %w", err)
	}
	v, err := goose.GetDBVersion(db)
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}

// Reset rolls every migration back. Game sessions and admin accounts are
// lost; the catalogue is reseeded on the next start.
func Reset(db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	if err := goose.DownTo(db, ".", 0); err != nil {
		return fmt.Errorf("rolling back migrations: %w", err)
	}
	return nil
}
