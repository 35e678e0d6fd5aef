package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/appointment-booking/internal/application"
	"github.com/example/appointment-booking/internal/config"
	httptransport "github.com/example/appointment-booking/internal/http"
	"github.com/example/appointment-booking/internal/persistence"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		store, err := openStore(ctx, config.Config{StorageDriver: config.DriverMemory}, discardLogger())
		if err != nil {
			t.Fatalf("openStore returned error: %v", err)
		}
		if err := store.Set(ctx, persistence.KeyServices, "[]"); err != nil {
			t.Fatalf("Set returned error: %v", err)
		}
	})

	t.Run("sqlite is migrated", func(t *testing.T) {
		cfg := config.Config{StorageDriver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "booking.db")}
		store, err := openStore(ctx, cfg, discardLogger())
		if err != nil {
			t.Fatalf("openStore returned error: %v", err)
		}
		t.Cleanup(func() {
			if closer, ok := store.(io.Closer); ok {
				_ = closer.Close()
			}
		})
		if err := store.Set(ctx, persistence.KeyServices, "[]"); err != nil {
			t.Fatalf("Set on migrated store returned error: %v", err)
		}
		if value, ok, err := store.Get(ctx, persistence.KeyServices); err != nil || !ok || value != "[]" {
			t.Fatalf("unexpected Get result %q ok=%v err=%v", value, ok, err)
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		if _, err := openStore(ctx, config.Config{StorageDriver: "postgres"}, discardLogger()); err == nil {
			t.Fatalf("expected error for unknown driver")
		}
	})
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	logger := discardLogger()
	store, err := openStore(context.Background(), config.Config{StorageDriver: config.DriverMemory}, logger)
	if err != nil {
		t.Fatalf("openStore returned error: %v", err)
	}
	app := application.NewApp(store, application.AppOptions{AdminPassword: application.DefaultAdminPassword, Logger: logger})
	if err := app.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, newServer(httptransport.NewAppRouter(app, logger)), listener, logger)
	}()

	resp, err := http.Get("http://" + listener.Addr().String() + "/services")
	if err != nil {
		cancel()
		t.Fatalf("GET /services failed: %v", err)
	}
	var body struct {
		Services []application.Service `json:"services"`
	}
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK || decodeErr != nil || len(body.Services) != 6 {
		cancel()
		t.Fatalf("unexpected response status=%d services=%d err=%v", resp.StatusCode, len(body.Services), decodeErr)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("serve did not stop after cancellation")
	}
}
