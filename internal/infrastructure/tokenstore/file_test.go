package tokenstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/enterprisehub/portal/internal/core/domain"
)

func TestFileStore_RoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nested", "session_token"))
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, domain.ErrNoToken) {
		t.Fatalf("expected ErrNoToken before save, got %v", err)
	}

	if err := store.Save(ctx, "tok-abc"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	token, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if token != "tok-abc" {
		t.Fatalf("expected tok-abc, got %q", token)
	}
}

func TestFileStore_ClearIdempotent(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session_token"))
	ctx := context.Background()

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clearing an empty store must not fail: %v", err)
	}

	if err := store.Save(ctx, "tok"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second clear must not fail: %v", err)
	}

	if _, err := store.Load(ctx); !errors.Is(err, domain.ErrNoToken) {
		t.Fatalf("expected ErrNoToken after clear, got %v", err)
	}
}

func TestFileStore_WhitespaceTokenIsAbsent(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session_token"))
	ctx := context.Background()

	if err := store.Save(ctx, "\n  \n"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, domain.ErrNoToken) {
		t.Fatalf("whitespace-only token must read as absent, got %v", err)
	}
}
