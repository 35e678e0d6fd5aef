package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/appointment-booking/internal/application"
	"github.com/example/appointment-booking/internal/testfixtures"
)

func TestDashboard_Statistics(t *testing.T) {
	ctx := context.Background()
	app, factory := newAdminApp(t)

	empty, err := app.Dashboard.Statistics(ctx)
	if err != nil {
		t.Fatalf("Statistics returned error: %v", err)
	}
	if empty.TotalBookings != 0 || empty.PopularService != "N/A" || len(empty.RecentAppointments) != 0 {
		t.Fatalf("unexpected empty statistics %+v", empty)
	}

	book := func(serviceID string, status application.AppointmentStatus) application.Appointment {
		factory.Clock.Advance(time.Minute)
		return addAppointment(t, app,
			testfixtures.WithAppointmentService(serviceID),
			testfixtures.WithAppointmentStatus(status),
		)
	}
	book("service-2", application.StatusConfirmed)
	book("service-1", application.StatusPending)
	book("service-1", application.StatusConfirmed)
	book("service-3", application.StatusCancelled)
	book("service-3", application.StatusCancelled)
	book("retired-service", application.StatusPending)
	latest := book("service-2", application.StatusCancelled)

	stats, err := app.Dashboard.Statistics(ctx)
	if err != nil {
		t.Fatalf("Statistics returned error: %v", err)
	}
	if stats.TotalBookings != 7 || stats.ConfirmedBookings != 2 || stats.PendingBookings != 2 {
		t.Fatalf("unexpected counts %+v", stats)
	}
	if stats.TotalRevenue != 120+35+35 {
		t.Fatalf("expected revenue 190, got %v", stats.TotalRevenue)
	}
	if stats.PopularService != "Haircut" {
		t.Fatalf("expected Haircut to be most popular, got %q", stats.PopularService)
	}
	if len(stats.RecentAppointments) != 5 || stats.RecentAppointments[0].ID != latest.ID {
		t.Fatalf("expected the 5 newest appointments, got %+v", stats.RecentAppointments)
	}
}

func TestDashboard_PopularServiceTiesAndMissing(t *testing.T) {
	ctx := context.Background()
	app, _ := newAdminApp(t)

	addAppointment(t, app, testfixtures.WithAppointmentService("service-5"))
	addAppointment(t, app, testfixtures.WithAppointmentService("service-4"))

	stats, err := app.Dashboard.Statistics(ctx)
	if err != nil {
		t.Fatalf("Statistics returned error: %v", err)
	}
	if stats.PopularService != "Facial Treatment" {
		t.Fatalf("expected the first booked service to win a tie, got %q", stats.PopularService)
	}

	other, _ := newAdminApp(t)
	addAppointment(t, other, testfixtures.WithAppointmentService("retired-service"))
	stats, err = other.Dashboard.Statistics(ctx)
	if err != nil {
		t.Fatalf("Statistics returned error: %v", err)
	}
	if stats.PopularService != "N/A" || stats.TotalRevenue != 0 {
		t.Fatalf("expected a missing service to count for nothing, got %+v", stats)
	}
}

func TestDashboard_RequiresAdmin(t *testing.T) {
	app := testfixtures.NewServiceFactory().NewLoadedApp(t, testfixtures.NewMemoryStore(t, nil))
	if _, err := app.Dashboard.Statistics(context.Background()); !errors.Is(err, application.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
