// Package memory provides an in-process persistence.Store.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/example/appointment-booking/internal/persistence"
)

// Store keeps values in a map guarded by a read/write mutex.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool
}

// New returns an empty store.
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// Seed returns a store pre-populated with a copy of values.
func Seed(values map[string]string) *Store {
	s := New()
	for key, value := range values {
		s.values[key] = value
	}
	return s
}

// Close marks the store as closed. Subsequent calls fail with persistence.ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// Get implements persistence.Store.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", false, persistence.ErrClosed
	}
	value, ok := s.values[key]
	return value, ok, nil
}

// Set implements persistence.Store.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return persistence.ErrClosed
	}
	s.values[key] = value
	return nil
}

// Delete implements persistence.Store.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return persistence.ErrClosed
	}
	delete(s.values, key)
	return nil
}

// List implements persistence.Store.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, persistence.ErrClosed
	}
	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// CompareAndSet implements persistence.CompareAndSetter.
func (s *Store) CompareAndSet(ctx context.Context, key, expected, value string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, persistence.ErrClosed
	}
	current, ok := s.values[key]
	if expected == "" {
		if ok {
			return false, nil
		}
	} else if !ok || current != expected {
		return false, nil
	}
	s.values[key] = value
	return true, nil
}
