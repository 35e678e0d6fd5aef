package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/example/appointment-booking/internal/availability"
	"github.com/example/appointment-booking/internal/persistence"
)

// AppointmentBook manages customer appointments.
type AppointmentBook struct {
	mu           sync.Mutex
	appointments *persistence.Collection[Appointment]
	gate         Gate
	now          func() time.Time
	logger       *slog.Logger
}

// NewAppointmentBook constructs a book stored under persistence.KeyAppointments.
// A nil gate leaves admin operations unrestricted.
func NewAppointmentBook(store persistence.Store, gate Gate, idGenerator func() string, now func() time.Time) *AppointmentBook {
	return NewAppointmentBookWithLogger(store, gate, idGenerator, now, nil)
}

// NewAppointmentBookWithLogger constructs a book with a specified logger.
func NewAppointmentBookWithLogger(store persistence.Store, gate Gate, idGenerator func() string, now func() time.Time, logger *slog.Logger, opts ...persistence.Option) *AppointmentBook {
	if idGenerator == nil {
		idGenerator = persistence.NewID("apt")
	}
	if now == nil {
		now = time.Now
	}
	return &AppointmentBook{
		appointments: persistence.NewCollection[Appointment](store, persistence.KeyAppointments, nil, idGenerator, opts...),
		gate:         gate,
		now:          now,
		logger:       defaultLogger(logger),
	}
}

func (b *AppointmentBook) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, b.logger, "AppointmentBook", operation, attrs...)
}

// Load reads the appointments from the store. On failure an empty book is
// served and the error is returned alongside it.
func (b *AppointmentBook) Load(ctx context.Context) ([]Appointment, error) {
	appointments, err := b.appointments.Load(ctx)
	logger := b.loggerWith(ctx, "Load")
	if err != nil {
		logger.ErrorContext(ctx, "failed to load appointments", "error", err, "error_kind", ErrorKind(err))
		return appointments, err
	}
	logger.DebugContext(ctx, "appointments loaded", "count", len(appointments))
	return appointments, nil
}

// Appointments returns every appointment in stored order.
func (b *AppointmentBook) Appointments() []Appointment {
	return b.appointments.All()
}

// AppointmentByID returns the appointment with the given id.
func (b *AppointmentBook) AppointmentByID(id string) (Appointment, bool) {
	return b.appointments.Find(id)
}

// AppointmentsByDate returns the appointments on date in stored order.
func (b *AppointmentBook) AppointmentsByDate(date string) []Appointment {
	return b.appointments.Filter(func(a Appointment) bool { return a.Date == date })
}

// AppointmentsByEmail returns the appointments of a customer, newest date first.
// Emails match exactly, ignoring case.
func (b *AppointmentBook) AppointmentsByEmail(email string) []Appointment {
	email = strings.TrimSpace(email)
	if email == "" {
		return []Appointment{}
	}
	out := b.appointments.Filter(func(a Appointment) bool {
		return strings.EqualFold(a.CustomerEmail, email)
	})
	sortByDateDesc(out)
	return out
}

// AppointmentsByStatus returns the appointments in status, in stored order.
func (b *AppointmentBook) AppointmentsByStatus(status AppointmentStatus) []Appointment {
	return b.appointments.Filter(func(a Appointment) bool { return a.Status == status })
}

// IsSlotAvailable reports whether no active appointment holds date and
// timeSlot. A non-empty serviceID restricts the check to that service.
func (b *AppointmentBook) IsSlotAvailable(date, timeSlot, serviceID string) bool {
	return availability.IsSlotAvailable(b.reservations(), date, timeSlot, serviceID)
}

func (b *AppointmentBook) reservations() []availability.Reservation {
	all := b.appointments.All()
	out := make([]availability.Reservation, 0, len(all))
	for _, a := range all {
		out = append(out, a.reservation())
	}
	return out
}

// AddAppointment stores a new appointment with a fresh id and creation time.
// An empty status is recorded as pending.
func (b *AppointmentBook) AddAppointment(ctx context.Context, appointment Appointment) (created Appointment, err error) {
	if b == nil {
		err = fmt.Errorf("AppointmentBook is nil")
		return
	}

	logger := b.loggerWith(ctx, "AddAppointment",
		"service_id", appointment.ServiceID,
		"date", appointment.Date,
		"time_slot", appointment.TimeSlot,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to add appointment", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("appointment_id", created.ID).InfoContext(ctx, "appointment added")
	}()

	if appointment.Status == "" {
		appointment.Status = StatusPending
	}
	if !appointment.Status.Valid() {
		err = fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, appointment.Status)
		return
	}
	appointment.CreatedAt = b.now()

	b.mu.Lock()
	defer b.mu.Unlock()

	created, err = b.appointments.Add(ctx, appointment)
	return
}

// UpdateAppointment merges patch into an existing appointment for administrators.
// A status change must follow the appointment lifecycle.
func (b *AppointmentBook) UpdateAppointment(ctx context.Context, id string, patch AppointmentPatch) (updated Appointment, err error) {
	if b == nil {
		err = fmt.Errorf("AppointmentBook is nil")
		return
	}

	logger := b.loggerWith(ctx, "UpdateAppointment", "appointment_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update appointment", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "appointment updated")
	}()

	if err = allowAdmin(b.gate); err != nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	updated, err = b.updateLocked(ctx, id, patch.apply)
	return
}

// UpdateAppointmentStatus moves an appointment to status for administrators.
// Keeping the current status succeeds without writing.
func (b *AppointmentBook) UpdateAppointmentStatus(ctx context.Context, id string, status AppointmentStatus) (updated Appointment, err error) {
	if b == nil {
		err = fmt.Errorf("AppointmentBook is nil")
		return
	}

	logger := b.loggerWith(ctx, "UpdateAppointmentStatus",
		"appointment_id", id,
		"status", string(status),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update appointment status", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "appointment status updated")
	}()

	if err = allowAdmin(b.gate); err != nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	updated, err = b.setStatusLocked(ctx, id, status)
	return
}

// CancelByCustomer cancels an appointment on behalf of the customer who made it.
// The email must match the appointment's, ignoring case.
func (b *AppointmentBook) CancelByCustomer(ctx context.Context, id, email string) (cancelled Appointment, err error) {
	if b == nil {
		err = fmt.Errorf("AppointmentBook is nil")
		return
	}

	logger := b.loggerWith(ctx, "CancelByCustomer", "appointment_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to cancel appointment", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "appointment cancelled by customer")
	}()

	b.mu.Lock()
	defer b.mu.Unlock()

	existing, ok := b.appointments.Find(id)
	if !ok {
		err = ErrNotFound
		return
	}
	if !strings.EqualFold(existing.CustomerEmail, strings.TrimSpace(email)) {
		err = ErrUnauthorized
		return
	}

	cancelled, err = b.setStatusLocked(ctx, id, StatusCancelled)
	return
}

// DeleteAppointment removes an appointment for administrators.
func (b *AppointmentBook) DeleteAppointment(ctx context.Context, id string) error {
	if b == nil {
		return fmt.Errorf("AppointmentBook is nil")
	}

	logger := b.loggerWith(ctx, "DeleteAppointment", "appointment_id", id)

	if err := allowAdmin(b.gate); err != nil {
		logger.ErrorContext(ctx, "failed to delete appointment", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.appointments.Remove(ctx, id); err != nil {
		logger.ErrorContext(ctx, "failed to delete appointment", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "appointment deleted")
	return nil
}

// SearchAppointments lists appointments for administrators, newest date first.
// query matches the customer name or email ignoring case, or the phone
// number as typed. An empty status or "all" matches every status.
func (b *AppointmentBook) SearchAppointments(ctx context.Context, query, status string) (results []Appointment, err error) {
	if b == nil {
		err = fmt.Errorf("AppointmentBook is nil")
		return
	}
	if err = allowAdmin(b.gate); err != nil {
		b.loggerWith(ctx, "SearchAppointments").ErrorContext(ctx, "failed to search appointments", "error", err, "error_kind", ErrorKind(err))
		return
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	rawNeedle := strings.TrimSpace(query)
	status = strings.ToLower(strings.TrimSpace(status))

	results = b.appointments.Filter(func(a Appointment) bool {
		if status != "" && status != "all" && string(a.Status) != status {
			return false
		}
		if needle == "" {
			return true
		}
		return strings.Contains(strings.ToLower(a.CustomerName), needle) ||
			strings.Contains(strings.ToLower(a.CustomerEmail), needle) ||
			strings.Contains(a.CustomerPhone, rawNeedle)
	})
	sortByDateDesc(results)
	return
}

func (b *AppointmentBook) setStatusLocked(ctx context.Context, id string, status AppointmentStatus) (Appointment, error) {
	existing, ok := b.appointments.Find(id)
	if !ok {
		return Appointment{}, ErrNotFound
	}
	if !existing.Status.CanTransitionTo(status) {
		return Appointment{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, existing.Status, status)
	}
	if existing.Status == status {
		return existing, nil
	}
	return b.updateLocked(ctx, id, func(a Appointment) Appointment {
		a.Status = status
		return a
	})
}

func (b *AppointmentBook) updateLocked(ctx context.Context, id string, mutate func(Appointment) Appointment) (Appointment, error) {
	existing, ok := b.appointments.Find(id)
	if !ok {
		return Appointment{}, ErrNotFound
	}

	next := mutate(existing)
	if !existing.Status.CanTransitionTo(next.Status) {
		return Appointment{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, existing.Status, next.Status)
	}

	found, err := b.appointments.Update(ctx, id, func(Appointment) Appointment { return next })
	if err != nil {
		return Appointment{}, err
	}
	if !found {
		return Appointment{}, ErrNotFound
	}
	next.ID = id
	return next, nil
}

// sortByDateDesc orders appointments by date then time slot, newest first.
func sortByDateDesc(appointments []Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		if appointments[i].Date != appointments[j].Date {
			return appointments[i].Date > appointments[j].Date
		}
		return appointments[i].TimeSlot > appointments[j].TimeSlot
	})
}
