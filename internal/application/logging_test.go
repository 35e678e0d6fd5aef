package application

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/example/appointment-booking/internal/persistence"
)

func TestDefaultLogger(t *testing.T) {
	t.Parallel()

	custom := slog.New(slog.NewTextHandler(io.Discard, nil))
	if got := defaultLogger(custom); got != custom {
		t.Fatalf("expected custom logger to be returned")
	}

	if got := defaultLogger(nil); got != slog.Default() {
		t.Fatalf("expected default logger when none provided")
	}
}

func TestErrorKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: ""},
		{err: ErrUnauthorized, want: "unauthorized"},
		{err: fmt.Errorf("lookup: %w", ErrNotFound), want: "not_found"},
		{err: ErrSlotUnavailable, want: "slot_unavailable"},
		{err: ErrInvalidTransition, want: "invalid_transition"},
		{err: ErrStepIncomplete, want: "step_incomplete"},
		{err: ErrInvalidDate, want: "invalid_date"},
		{err: fmt.Errorf("save: %w", persistence.ErrStaleWrite), want: "stale_write"},
		{err: &ValidationError{}, want: "validation"},
		{err: errors.New("boom"), want: "unexpected"},
	}

	for _, tt := range tests {
		if got := ErrorKind(tt.err); got != tt.want {
			t.Fatalf("ErrorKind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
