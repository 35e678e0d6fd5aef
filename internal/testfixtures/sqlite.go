package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/appointment-booking/internal/persistence"
	"github.com/example/appointment-booking/internal/persistence/memory"
	"github.com/example/appointment-booking/internal/persistence/sqlite"
)

// SQLiteHarness provides a store backed by a temporary SQLite database for
// integration-style tests.
type SQLiteHarness struct {
	Store persistence.Store
	Path  string

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness using a temporary file that is
// migrated automatically. Callers may optionally invoke Close, but the helper
// will also register a cleanup callback with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "booking.db")

	storage, err := sqlite.Open(sqlite.DefaultConfig(path), nil)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	if err := storage.Migrate(context.Background()); err != nil {
		_ = storage.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	harness := &SQLiteHarness{
		Store: storage,
		Path:  path,
		cleanup: func() {
			_ = storage.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}

// NewMemoryStore returns an in-process store pre-populated with values.
func NewMemoryStore(tb testing.TB, values map[string]string) *memory.Store {
	tb.Helper()

	store := memory.Seed(values)
	tb.Cleanup(func() { _ = store.Close() })
	return store
}
