package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/cipherchamber/internal/config"
	"github.com/playperu/cipherchamber/internal/database"
	"github.com/playperu/cipherchamber/internal/fixtures"
	"github.com/playperu/cipherchamber/internal/handler/health"
	"github.com/playperu/cipherchamber/internal/migrations"
	"github.com/playperu/cipherchamber/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Fixtures ---
	set, err := fixtures.Load(cfg.FixturesDir)
	if err != nil {
		return fmt.Errorf("loading fixtures: %w", err)
	}

	// --- SQLite ---
	if cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if cfg.ResetDB {
		if err := migrations.Reset(db); err != nil {
			return fmt.Errorf("resetting database: %w", err)
		}
		logger.Warn("database reset", "path", cfg.DBPath)
	}
	version, err := migrations.Run(db)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath, "schema_version", version)

	if err := server.Seed(ctx, logger, db, set); err != nil {
		return fmt.Errorf("seeding catalogue: %w", err)
	}

	store := server.NewDocStore(db)
	admin := server.NewAdminDocStore(db)
	created, err := admin.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}
	if created {
		logger.Info("admin account created", "email", cfg.AdminEmail)
	}

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, store, admin, cfg.SPADir, func(r chi.Router) {
		r.Mount("/healthz", health.NewHandler(logger, map[string]health.Checker{
			"sqlite": database.Checker{DB: db},
			"catalogue": health.CheckFunc(func(ctx context.Context) error {
				rooms, err := store.ListRooms(ctx)
				if err != nil {
					return err
				}
				if len(rooms) == 0 {
					return errors.New("no rooms")
				}
				return nil
			}),
		}).Routes())
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
