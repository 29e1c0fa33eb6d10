package server

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAdminSessionExpiry(t *testing.T) {
	ctx := context.Background()
	_, admin := setupStores(t)

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := start
	admin.now = func() time.Time { return now }

	acct, err := admin.AdminByEmail(ctx, "admin@cipherchamber.local")
	if err != nil {
		t.Fatalf("admin by email: %v", err)
	}
	id, err := admin.CreateAdminSession(ctx, acct)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	now = start.Add(adminSessionTTL - time.Minute)
	sess, err := admin.AdminFromSession(ctx, id)
	if err != nil {
		t.Fatalf("live session: %v", err)
	}
	if sess.Email != "admin@cipherchamber.local" {
		t.Errorf("email = %q", sess.Email)
	}

	now = start.Add(adminSessionTTL)
	if _, err := admin.AdminFromSession(ctx, id); !errors.Is(err, errNoAdminSession) {
		t.Fatalf("expired session: got %v, want errNoAdminSession", err)
	}

	// The expired row is gone even if the clock goes back.
	now = start
	if _, err := admin.AdminFromSession(ctx, id); !errors.Is(err, errNoAdminSession) {
		t.Errorf("deleted session: got %v, want errNoAdminSession", err)
	}
}

func TestEnsureAdminOnlyOnce(t *testing.T) {
	ctx := context.Background()
	_, admin := setupStores(t)

	created, err := admin.EnsureAdmin(ctx, "second@cipherchamber.local", "pw")
	if err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if created {
		t.Error("expected no new admin when one exists")
	}
	if _, err := admin.AdminByEmail(ctx, "second@cipherchamber.local"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
