package redis

import (
	"context"
	"fmt"
	"os"
	"slices"
	"testing"
	"time"
)

// openTestStore connects to the server named by BOOKING_TEST_REDIS_ADDR and
// namespaces keys per test run.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	addr := os.Getenv("BOOKING_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("BOOKING_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("booking-test:%d:", time.Now().UnixNano())
	store, err := Open(ctx, Options{Addr: addr, Prefix: prefix})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		keys, _ := store.List(ctx, "")
		for _, key := range keys {
			_ = store.Delete(ctx, key)
		}
		_ = store.Close()
	})
	return store
}

func TestEscapePattern(t *testing.T) {
	if got := escapePattern("a*b?[c]"); got != `a\*b\?\[c\]` {
		t.Fatalf("unexpected escaped pattern %q", got)
	}
}

func TestOpen_RequiresAddress(t *testing.T) {
	if _, err := Open(context.Background(), Options{}); err == nil {
		t.Fatalf("expected error for empty address")
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if _, ok, err := store.Get(ctx, "services"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}
	if err := store.Set(ctx, "services", "[]"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if value, ok, err := store.Get(ctx, "services"); err != nil || !ok || value != "[]" {
		t.Fatalf("unexpected Get result %q ok=%v err=%v", value, ok, err)
	}
	if err := store.Set(ctx, "appointments", "[]"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	keys, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if want := []string{"appointments", "services"}; !slices.Equal(keys, want) {
		t.Fatalf("expected %v, got %v", want, keys)
	}

	if err := store.Delete(ctx, "services"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "services"); ok {
		t.Fatalf("expected key to be deleted")
	}
}

func TestStore_CompareAndSet(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if ok, err := store.CompareAndSet(ctx, "k", "", "v1"); err != nil || !ok {
		t.Fatalf("expected create to succeed, got ok=%v err=%v", ok, err)
	}
	if ok, err := store.CompareAndSet(ctx, "k", "", "v2"); err != nil || ok {
		t.Fatalf("expected create on existing key to fail, got ok=%v err=%v", ok, err)
	}
	if ok, err := store.CompareAndSet(ctx, "k", "v1", "v2"); err != nil || !ok {
		t.Fatalf("expected swap to succeed, got ok=%v err=%v", ok, err)
	}
}
