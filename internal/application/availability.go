package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/appointment-booking/internal/availability"
)

// Availability combines opening hours, the catalog and existing appointments
// into the time slots offered for a service on a date.
type Availability struct {
	hours        *BusinessHoursTable
	services     *ServiceCatalog
	appointments *AppointmentBook
	logger       *slog.Logger
}

// NewAvailability constructs the slot calculator.
func NewAvailability(hours *BusinessHoursTable, services *ServiceCatalog, appointments *AppointmentBook, logger *slog.Logger) *Availability {
	return &Availability{hours: hours, services: services, appointments: appointments, logger: defaultLogger(logger)}
}

// SlotsForDate lists the slots for serviceID on date. The service must exist;
// inactive services still report their slots so existing bookings can be shown.
func (a *Availability) SlotsForDate(ctx context.Context, date, serviceID string) (slots []availability.Slot, err error) {
	if a == nil {
		err = fmt.Errorf("Availability is nil")
		return
	}

	logger := serviceLogger(ctx, a.logger, "Availability", "SlotsForDate",
		"service_id", serviceID,
		"date", date,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to compute slots", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.DebugContext(ctx, "slots computed", "count", len(slots))
	}()

	service, ok := a.services.ServiceByID(serviceID)
	if !ok {
		err = ErrNotFound
		return
	}

	slots, err = availability.DaySlots(date, a.hours.Hours(), service.Duration, a.appointments.reservations())
	if errors.Is(err, availability.ErrInvalidDate) {
		err = fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return
}

// IsOffered reports whether timeSlot is one of the free slots for serviceID on date.
func (a *Availability) IsOffered(ctx context.Context, date, timeSlot, serviceID string) (bool, error) {
	slots, err := a.SlotsForDate(ctx, date, serviceID)
	if err != nil {
		return false, err
	}
	for _, s := range slots {
		if s.Time == timeSlot {
			return s.Available, nil
		}
	}
	return false, nil
}
