package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/appointment-booking/internal/application"
	"github.com/example/appointment-booking/internal/persistence/memory"
	"github.com/example/appointment-booking/internal/testfixtures"
)

var errStoreDown = errors.New("store unavailable")

// failingStore wraps the memory store and fails reads or writes on demand.
type failingStore struct {
	*memory.Store
	failReads  bool
	failWrites bool
}

func newFailingStore() *failingStore {
	return &failingStore{Store: memory.New()}
}

func (s *failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.failReads {
		return "", false, errStoreDown
	}
	return s.Store.Get(ctx, key)
}

func (s *failingStore) Set(ctx context.Context, key, value string) error {
	if s.failWrites {
		return errStoreDown
	}
	return s.Store.Set(ctx, key, value)
}

func (s *failingStore) CompareAndSet(ctx context.Context, key, expected, value string) (bool, error) {
	if s.failWrites {
		return false, errStoreDown
	}
	return s.Store.CompareAndSet(ctx, key, expected, value)
}

func newAdminApp(t *testing.T) (*application.App, *testfixtures.ServiceFactory) {
	t.Helper()
	factory := testfixtures.NewServiceFactory()
	return factory.NewAdminApp(t, testfixtures.NewMemoryStore(t, nil)), factory
}

func addAppointment(t *testing.T, app *application.App, opts ...testfixtures.AppointmentOption) application.Appointment {
	t.Helper()
	created, err := app.Appointments.AddAppointment(context.Background(), testfixtures.NewAppointmentFixture(opts...).Application())
	if err != nil {
		t.Fatalf("AddAppointment returned error: %v", err)
	}
	return created
}
