package testfixtures

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/example/appointment-booking/internal/application"
	"github.com/example/appointment-booking/internal/persistence"
)

// ServiceFactory assists tests with constructing the booking application using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock          *Clock
	ServiceIDs     *IDGenerator
	AppointmentIDs *IDGenerator
	AdminPassword  string
	Logger         *slog.Logger
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:          NewClock(time.Time{}),
		ServiceIDs:     NewIDGenerator("srv"),
		AppointmentIDs: NewIDGenerator("apt"),
		AdminPassword:  application.DefaultAdminPassword,
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerators overrides the identifier generators used by the factory.
// A nil generator falls back to the production identifiers.
func WithIDGenerators(services, appointments *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.ServiceIDs = services
		factory.AppointmentIDs = appointments
	}
}

// WithAdminPassword overrides the administrator password.
func WithAdminPassword(password string) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.AdminPassword = password
	}
}

// WithLogger overrides the logger handed to the application.
func WithLogger(logger *slog.Logger) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Logger = logger
	}
}

// NewApp builds an application over store with optimistic writes enabled.
func (f *ServiceFactory) NewApp(store persistence.Store) *application.App {
	return application.NewApp(store, application.AppOptions{
		AdminPassword:    f.AdminPassword,
		OptimisticWrites: true,
		Now:              f.Clock.NowFunc(),
		ServiceIDs:       f.ServiceIDs.NextFunc(),
		AppointmentIDs:   f.AppointmentIDs.NextFunc(),
		Logger:           f.Logger,
	})
}

// NewLoadedApp builds an application over store and loads its state, failing
// the test when loading reports an error.
func (f *ServiceFactory) NewLoadedApp(tb testing.TB, store persistence.Store) *application.App {
	tb.Helper()

	app := f.NewApp(store)
	if err := app.Load(context.Background()); err != nil {
		tb.Fatalf("failed to load application state: %v", err)
	}
	return app
}

// NewAdminApp builds and loads an application with the administrator signed in.
func (f *ServiceFactory) NewAdminApp(tb testing.TB, store persistence.Store) *application.App {
	tb.Helper()

	app := f.NewLoadedApp(tb, store)
	ok, err := app.Admin.Login(context.Background(), f.AdminPassword)
	if err != nil || !ok {
		tb.Fatalf("failed to sign in administrator: ok=%v err=%v", ok, err)
	}
	return app
}
