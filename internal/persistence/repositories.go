package persistence

import "context"

// Keys under which the booking system keeps its JSON documents.
const (
	KeyAppointments  = "appointments"
	KeyServices      = "services"
	KeyBusinessHours = "business-hours"
	KeyAdminAuth     = "admin-auth"
)

// Store is a key-value blob store holding JSON text under string keys.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// List returns the sorted keys starting with prefix. An empty prefix lists every key.
	List(ctx context.Context, prefix string) ([]string, error)
}

// CompareAndSetter is implemented by stores that can replace a value atomically.
//
// CompareAndSet writes value only when the current value equals expected. An
// empty expected value means the key must be absent.
type CompareAndSetter interface {
	CompareAndSet(ctx context.Context, key, expected, value string) (bool, error)
}
