package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/playperu/cipherchamber/internal/fixtures"
)

// Seed loads the fixture catalogue into an empty database.
// Idempotent: does nothing if rooms already exist.
func Seed(ctx context.Context, logger *slog.Logger, db *sql.DB, set *fixtures.Set) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, it := range set.Items {
		if err := putItem(ctx, tx, it); err != nil {
			return fmt.Errorf("seeding item %d: %w", it.ID, err)
		}
	}
	for _, p := range set.Puzzles {
		if err := putPuzzle(ctx, tx, p); err != nil {
			return fmt.Errorf("seeding puzzle %d: %w", p.ID, err)
		}
	}
	for _, r := range set.Rooms {
		if err := putRoom(ctx, tx, r); err != nil {
			return fmt.Errorf("seeding room %d: %w", r.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	logger.Info("catalogue seeded",
		"rooms", len(set.Rooms),
		"puzzles", len(set.Puzzles),
		"items", len(set.Items),
	)
	return nil
}
