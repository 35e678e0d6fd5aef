package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Option configures a Document or Collection.
type Option func(*options)

type options struct {
	optimistic bool
}

// WithOptimisticWrites enables the re-read-and-compare check before every save.
// Stores implementing CompareAndSetter perform the check atomically.
func WithOptimisticWrites(enabled bool) Option {
	return func(o *options) {
		o.optimistic = enabled
	}
}

// Document is a single JSON value persisted under one store key.
//
// The zero value is not usable; construct documents with NewDocument.
type Document[T any] struct {
	mu      sync.Mutex
	store   Store
	key     string
	initial func() T
	opts    options
	value   T
	raw     string
	err     error
}

// NewDocument returns a document bound to key. initial supplies the value used
// when the key is absent or unreadable.
func NewDocument[T any](store Store, key string, initial func() T, opts ...Option) *Document[T] {
	if initial == nil {
		initial = func() T {
			var zero T
			return zero
		}
	}
	d := &Document[T]{store: store, key: key, initial: initial}
	for _, opt := range opts {
		if opt != nil {
			opt(&d.opts)
		}
	}
	d.value = initial()
	return d
}

// Load reads the document from the store. An absent key is initialised with
// the initial value. Read and decode failures fall back to the initial value
// and are returned alongside it.
func (d *Document[T]) Load(ctx context.Context) (T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.err = d.loadLocked(ctx)
	return d.value, d.err
}

func (d *Document[T]) loadLocked(ctx context.Context) error {
	raw, ok, err := d.store.Get(ctx, d.key)
	if err != nil {
		// raw stays empty, so an optimistic save only succeeds while the key is absent
		d.value = d.initial()
		d.raw = ""
		return fmt.Errorf("load %s: %w", d.key, err)
	}

	if !ok {
		d.value = d.initial()
		d.raw = ""
		if err := d.writeLocked(ctx, d.value); err != nil {
			return fmt.Errorf("initialise %s: %w", d.key, err)
		}
		return nil
	}

	var decoded T
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		d.value = d.initial()
		d.raw = raw
		return fmt.Errorf("decode %s: %w", d.key, err)
	}

	d.value = decoded
	d.raw = raw
	return nil
}

// Value returns the in-memory value without touching the store.
func (d *Document[T]) Value() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

// Err reports the failure of the most recent load, if any.
func (d *Document[T]) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Save persists value. The in-memory value is replaced only when the write succeeds.
func (d *Document[T]) Save(ctx context.Context, value T) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.writeLocked(ctx, value); err != nil {
		return fmt.Errorf("save %s: %w", d.key, err)
	}
	return nil
}

// Delete removes the key and resets the in-memory value.
func (d *Document[T]) Delete(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.store.Delete(ctx, d.key); err != nil {
		return fmt.Errorf("delete %s: %w", d.key, err)
	}
	d.value = d.initial()
	d.raw = ""
	d.err = nil
	return nil
}

func (d *Document[T]) writeLocked(ctx context.Context, value T) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	data := string(encoded)

	if d.opts.optimistic {
		if err := d.compareAndWrite(ctx, data); err != nil {
			return err
		}
	} else if err := d.store.Set(ctx, d.key, data); err != nil {
		return err
	}

	d.value = value
	d.raw = data
	d.err = nil
	return nil
}

func (d *Document[T]) compareAndWrite(ctx context.Context, data string) error {
	if cas, ok := d.store.(CompareAndSetter); ok {
		swapped, err := cas.CompareAndSet(ctx, d.key, d.raw, data)
		if err != nil {
			return err
		}
		if !swapped {
			return ErrStaleWrite
		}
		return nil
	}

	current, ok, err := d.store.Get(ctx, d.key)
	if err != nil {
		return err
	}
	if !ok {
		current = ""
	}
	if current != d.raw {
		return ErrStaleWrite
	}
	return d.store.Set(ctx, d.key, data)
}
