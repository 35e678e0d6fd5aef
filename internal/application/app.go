package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/example/appointment-booking/internal/persistence"
)

// AppOptions configures NewApp.
type AppOptions struct {
	AdminPassword    string
	OptimisticWrites bool
	Now              func() time.Time
	ServiceIDs       func() string
	AppointmentIDs   func() string
	Logger           *slog.Logger
}

// App holds the booking state shared by every customer and the administrator.
type App struct {
	Store        persistence.Store
	Admin        *AdminSession
	Services     *ServiceCatalog
	Appointments *AppointmentBook
	Hours        *BusinessHoursTable
	Availability *Availability
	Dashboard    *Dashboard

	now    func() time.Time
	logger *slog.Logger
}

// NewApp wires the accessors over store. Admin-only operations are guarded by
// the admin session.
func NewApp(store persistence.Store, opts AppOptions) *App {
	logger := defaultLogger(opts.Logger)
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	docOpts := []persistence.Option{persistence.WithOptimisticWrites(opts.OptimisticWrites)}

	admin := NewAdminSession(store, opts.AdminPassword, logger)
	services := NewServiceCatalogWithLogger(store, admin, opts.ServiceIDs, logger, docOpts...)
	appointments := NewAppointmentBookWithLogger(store, admin, opts.AppointmentIDs, now, logger, docOpts...)
	hours := NewBusinessHoursTableWithLogger(store, logger, docOpts...)

	return &App{
		Store:        store,
		Admin:        admin,
		Services:     services,
		Appointments: appointments,
		Hours:        hours,
		Availability: NewAvailability(hours, services, appointments, logger),
		Dashboard:    NewDashboard(services, appointments, admin, logger),
		now:          now,
		logger:       logger,
	}
}

// Load reads every collection and the admin session. Each part falls back to
// its defaults on failure; the failures are returned joined.
func (a *App) Load(ctx context.Context) error {
	_, servicesErr := a.Services.Load(ctx)
	_, appointmentsErr := a.Appointments.Load(ctx)
	_, hoursErr := a.Hours.Load(ctx)
	adminErr := a.Admin.Restore(ctx)

	err := errors.Join(servicesErr, appointmentsErr, hoursErr, adminErr)
	if err != nil {
		a.logger.WarnContext(ctx, "booking state loaded with defaults", "error", err)
		return err
	}
	a.logger.InfoContext(ctx, "booking state loaded",
		"services", len(a.Services.Services()),
		"appointments", len(a.Appointments.Appointments()),
	)
	return nil
}

// NewWorkflow starts a booking workflow for one customer.
func (a *App) NewWorkflow() *BookingWorkflow {
	return NewBookingWorkflow(a.Services, a.Appointments, a.Availability, a.now, a.logger)
}

// Close releases the store when it holds resources.
func (a *App) Close() error {
	if closer, ok := a.Store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
