package persistence

import "errors"

var (
	// ErrNotFound is returned when a record or key does not exist in the store.
	ErrNotFound = errors.New("persistence: not found")
	// ErrStaleWrite is returned when a collection changed in the store after it was last loaded.
	ErrStaleWrite = errors.New("persistence: stale write")
	// ErrClosed is returned by stores that have been closed.
	ErrClosed = errors.New("persistence: store closed")
)
