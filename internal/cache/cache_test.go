package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreExpiry(t *testing.T) {
	current := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(func() time.Time { return current })
	ctx := context.Background()

	if err := store.Set(ctx, "k", "v", time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}

	val, ok, err := store.Get(ctx, "k")
	if err != nil || !ok || val != "v" {
		t.Fatalf("expected hit, got %q %v %v", val, ok, err)
	}

	current = current.Add(59 * time.Minute)
	if _, ok, _ := store.Get(ctx, "k"); !ok {
		t.Fatal("expected entry to still be live")
	}

	current = current.Add(2 * time.Minute)
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatal("expected entry to have expired")
	}
}

func TestMemoryStoreMiss(t *testing.T) {
	store := NewMemoryStore(nil)
	if _, ok, err := store.Get(context.Background(), "absent"); ok || err != nil {
		t.Fatalf("expected clean miss, got %v %v", ok, err)
	}
}

func TestMemoryStoreOverwriteResetsTTL(t *testing.T) {
	current := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(func() time.Time { return current })
	ctx := context.Background()

	store.Set(ctx, "k", "old", time.Minute)
	current = current.Add(50 * time.Second)
	store.Set(ctx, "k", "new", time.Minute)
	current = current.Add(30 * time.Second)

	val, ok, _ := store.Get(ctx, "k")
	if !ok || val != "new" {
		t.Fatalf("expected refreshed entry, got %q %v", val, ok)
	}
}
