package persistence

import (
	"context"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record is an element of a Collection.
type Record[T any] interface {
	RecordID() string
	WithRecordID(id string) T
}

// Collection is a list of records persisted as one JSON array. Every mutation
// rewrites the whole list, and the in-memory list only changes after the
// store accepted the write.
type Collection[T Record[T]] struct {
	mu    sync.Mutex
	doc   *Document[[]T]
	newID func() string
}

// NewCollection returns a collection stored under key. defaults seeds an absent
// key. newID generates identifiers for added records; nil uses NewID("id").
func NewCollection[T Record[T]](store Store, key string, defaults func() []T, newID func() string, opts ...Option) *Collection[T] {
	if newID == nil {
		newID = NewID("id")
	}
	initial := func() []T {
		if defaults == nil {
			return []T{}
		}
		return cloneSlice(defaults())
	}
	return &Collection[T]{
		doc:   NewDocument(store, key, initial, opts...),
		newID: newID,
	}
}

// Load refreshes the list from the store. On failure it returns the defaults
// together with the error.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.doc.Load(ctx)
	return cloneSlice(items), err
}

// Err reports the failure of the most recent load, if any.
func (c *Collection[T]) Err() error {
	return c.doc.Err()
}

// All returns a copy of the in-memory list.
func (c *Collection[T]) All() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneSlice(c.doc.Value())
}

// Find returns the record with the given id.
func (c *Collection[T]) Find(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.doc.Value() {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns the records for which keep reports true, in stored order.
func (c *Collection[T]) Filter(keep func(T) bool) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]T, 0)
	for _, item := range c.doc.Value() {
		if keep == nil || keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Add assigns a fresh identifier to record, appends it and persists the list.
func (c *Collection[T]) Add(ctx context.Context, record T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	created := record.WithRecordID(c.newID())
	current := c.doc.Value()
	next := make([]T, 0, len(current)+1)
	next = append(next, current...)
	next = append(next, created)

	if err := c.doc.Save(ctx, next); err != nil {
		var zero T
		return zero, err
	}
	return created, nil
}

// Update applies mutate to the record with the given id and persists the list.
// A missing id leaves the records untouched but the list is still written.
func (c *Collection[T]) Update(ctx context.Context, id string, mutate func(T) T) (found bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := cloneSlice(c.doc.Value())
	for i, item := range next {
		if item.RecordID() != id {
			continue
		}
		found = true
		if mutate != nil {
			// the identifier is not mutable
			next[i] = mutate(item).WithRecordID(id)
		}
	}

	if err = c.doc.Save(ctx, next); err != nil {
		return false, err
	}
	return found, nil
}

// Remove drops the record with the given id and persists the list.
func (c *Collection[T]) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.doc.Value()
	next := make([]T, 0, len(current))
	for _, item := range current {
		if item.RecordID() != id {
			next = append(next, item)
		}
	}
	return c.doc.Save(ctx, next)
}

// NewID returns a generator of identifiers shaped like
// "<prefix>-<unix millis>-<9 random characters>".
func NewID(prefix string) func() string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "id"
	}
	return func() string {
		return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), randomSuffix())
	}
}

const suffixLen = 9

// randomSuffix encodes the leading uuid bits in base36, zero padded.
func randomSuffix() string {
	u := uuid.New()
	s := strconv.FormatUint(binary.BigEndian.Uint64(u[:8]), 36)
	if len(s) < suffixLen {
		s = strings.Repeat("0", suffixLen-len(s)) + s
	}
	return s[len(s)-suffixLen:]
}

func cloneSlice[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
