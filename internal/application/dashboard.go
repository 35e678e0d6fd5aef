package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// recentLimit is the number of appointments listed on the dashboard.
const recentLimit = 5

// Dashboard summarises bookings for administrators.
type Dashboard struct {
	services     *ServiceCatalog
	appointments *AppointmentBook
	gate         Gate
	logger       *slog.Logger
}

// NewDashboard constructs a dashboard. A nil gate leaves it unrestricted.
func NewDashboard(services *ServiceCatalog, appointments *AppointmentBook, gate Gate, logger *slog.Logger) *Dashboard {
	return &Dashboard{services: services, appointments: appointments, gate: gate, logger: defaultLogger(logger)}
}

// Statistics computes the booking totals. Revenue and popularity count only
// appointments that are not cancelled; a booking of a deleted service adds
// nothing to the revenue.
func (d *Dashboard) Statistics(ctx context.Context) (stats Statistics, err error) {
	if d == nil {
		err = fmt.Errorf("Dashboard is nil")
		return
	}
	if err = allowAdmin(d.gate); err != nil {
		serviceLogger(ctx, d.logger, "Dashboard", "Statistics").ErrorContext(ctx, "failed to compute statistics", "error", err, "error_kind", ErrorKind(err))
		return
	}

	appointments := d.appointments.Appointments()
	counts := make(map[string]int)
	order := make([]string, 0)

	stats.TotalBookings = len(appointments)
	for _, a := range appointments {
		switch a.Status {
		case StatusConfirmed:
			stats.ConfirmedBookings++
		case StatusPending:
			stats.PendingBookings++
		case StatusCancelled:
			continue
		}

		if service, ok := d.services.ServiceByID(a.ServiceID); ok {
			stats.TotalRevenue += service.Price
		}
		if _, seen := counts[a.ServiceID]; !seen {
			order = append(order, a.ServiceID)
		}
		counts[a.ServiceID]++
	}

	stats.PopularService = "N/A"
	popular, best := "", 0
	for _, id := range order {
		if counts[id] > best {
			popular, best = id, counts[id]
		}
	}
	if service, ok := d.services.ServiceByID(popular); ok && popular != "" {
		stats.PopularService = service.Name
	}

	recent := make([]Appointment, len(appointments))
	copy(recent, appointments)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	stats.RecentAppointments = recent
	return
}
