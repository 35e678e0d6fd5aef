package application_test

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/example/appointment-booking/internal/application"
	"github.com/example/appointment-booking/internal/persistence"
	"github.com/example/appointment-booking/internal/testfixtures"
)

func TestAppointmentBook_AddAppointment(t *testing.T) {
	app, factory := newAdminApp(t)

	input := testfixtures.NewAppointmentFixture(testfixtures.WithAppointmentStatus(""), testfixtures.WithAppointmentCreatedAt(time.Time{})).Application()
	created, err := app.Appointments.AddAppointment(context.Background(), input)
	if err != nil {
		t.Fatalf("AddAppointment returned error: %v", err)
	}
	if created.ID != "apt-1" {
		t.Fatalf("expected generated id apt-1, got %q", created.ID)
	}
	if created.Status != application.StatusPending {
		t.Fatalf("expected pending status, got %q", created.Status)
	}
	if !created.CreatedAt.Equal(factory.Clock.Now()) {
		t.Fatalf("expected creation time %v, got %v", factory.Clock.Now(), created.CreatedAt)
	}

	if _, err := app.Appointments.AddAppointment(context.Background(), application.Appointment{Status: "done"}); !errors.Is(err, application.ErrInvalidTransition) {
		t.Fatalf("expected unknown status to be rejected, got %v", err)
	}
}

func TestAppointmentBook_SlotAvailability(t *testing.T) {
	ctx := context.Background()
	app, _ := newAdminApp(t)

	if !app.Appointments.IsSlotAvailable(testfixtures.MondayDate, "09:00", "") {
		t.Fatalf("expected empty book to have the slot free")
	}

	booked := addAppointment(t, app, testfixtures.WithAppointmentSlot(testfixtures.MondayDate, "09:00"))
	if app.Appointments.IsSlotAvailable(testfixtures.MondayDate, "09:00", "") {
		t.Fatalf("expected booked slot to be unavailable")
	}
	if !app.Appointments.IsSlotAvailable(testfixtures.MondayDate, "09:00", "service-2") {
		t.Fatalf("expected the service filter to ignore other services")
	}

	if _, err := app.Appointments.UpdateAppointmentStatus(ctx, booked.ID, application.StatusCancelled); err != nil {
		t.Fatalf("UpdateAppointmentStatus returned error: %v", err)
	}
	if !app.Appointments.IsSlotAvailable(testfixtures.MondayDate, "09:00", "") {
		t.Fatalf("expected cancellation to free the slot")
	}
}

func TestAppointmentBook_UpdateAppointmentStatus(t *testing.T) {
	tests := []struct {
		from    application.AppointmentStatus
		to      application.AppointmentStatus
		wantErr error
	}{
		{from: application.StatusPending, to: application.StatusConfirmed},
		{from: application.StatusPending, to: application.StatusCancelled},
		{from: application.StatusPending, to: application.StatusPending},
		{from: application.StatusConfirmed, to: application.StatusCancelled},
		{from: application.StatusConfirmed, to: application.StatusPending, wantErr: application.ErrInvalidTransition},
		{from: application.StatusCancelled, to: application.StatusConfirmed, wantErr: application.ErrInvalidTransition},
		{from: application.StatusCancelled, to: application.StatusPending, wantErr: application.ErrInvalidTransition},
		{from: application.StatusPending, to: "archived", wantErr: application.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			app, _ := newAdminApp(t)
			booked := addAppointment(t, app, testfixtures.WithAppointmentStatus(tt.from))

			updated, err := app.Appointments.UpdateAppointmentStatus(context.Background(), booked.ID, tt.to)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if stored, _ := app.Appointments.AppointmentByID(booked.ID); stored.Status != tt.from {
					t.Fatalf("rejected transition changed the status to %q", stored.Status)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateAppointmentStatus returned error: %v", err)
			}
			if updated.Status != tt.to || updated.ID != booked.ID {
				t.Fatalf("unexpected appointment %+v", updated)
			}
		})
	}

	t.Run("missing appointment", func(t *testing.T) {
		app, _ := newAdminApp(t)
		if _, err := app.Appointments.UpdateAppointmentStatus(context.Background(), "missing", application.StatusConfirmed); !errors.Is(err, application.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestAppointmentBook_UpdateAppointment(t *testing.T) {
	ctx := context.Background()
	app, _ := newAdminApp(t)
	booked := addAppointment(t, app)

	notes := "Prefers the window seat"
	updated, err := app.Appointments.UpdateAppointment(ctx, booked.ID, application.AppointmentPatch{Notes: &notes})
	if err != nil {
		t.Fatalf("UpdateAppointment returned error: %v", err)
	}
	if updated.Notes != notes || updated.CustomerName != booked.CustomerName || updated.Status != booked.Status {
		t.Fatalf("expected a merged update, got %+v", updated)
	}

	if err := app.Admin.Logout(ctx); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if _, err := app.Appointments.UpdateAppointment(ctx, booked.ID, application.AppointmentPatch{Notes: &notes}); !errors.Is(err, application.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after logout, got %v", err)
	}
}

func TestAppointmentBook_CancelByCustomer(t *testing.T) {
	ctx := context.Background()
	app := testfixtures.NewServiceFactory().NewLoadedApp(t, testfixtures.NewMemoryStore(t, nil))
	booked := addAppointment(t, app, testfixtures.WithAppointmentCustomer("Jane Doe", "jane@example.com", "555-123-4567"))

	if _, err := app.Appointments.CancelByCustomer(ctx, booked.ID, "someone@example.com"); !errors.Is(err, application.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for another email, got %v", err)
	}
	if _, err := app.Appointments.CancelByCustomer(ctx, "missing", "jane@example.com"); !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	cancelled, err := app.Appointments.CancelByCustomer(ctx, booked.ID, " JANE@example.com ")
	if err != nil {
		t.Fatalf("CancelByCustomer returned error: %v", err)
	}
	if cancelled.Status != application.StatusCancelled {
		t.Fatalf("expected cancelled status, got %q", cancelled.Status)
	}
}

func TestAppointmentBook_Queries(t *testing.T) {
	ctx := context.Background()
	app, _ := newAdminApp(t)

	jane := addAppointment(t, app,
		testfixtures.WithAppointmentCustomer("Jane Doe", "jane@example.com", "555-123-4567"),
		testfixtures.WithAppointmentSlot("2024-03-04", "09:00"),
	)
	john := addAppointment(t, app,
		testfixtures.WithAppointmentCustomer("John Smith", "john@sample.org", "555-987-6543"),
		testfixtures.WithAppointmentSlot("2024-03-05", "11:00"),
		testfixtures.WithAppointmentStatus(application.StatusConfirmed),
	)
	alice := addAppointment(t, app,
		testfixtures.WithAppointmentCustomer("Alice", "ALICE@Example.com", "555-000-1111"),
		testfixtures.WithAppointmentSlot("2024-03-06", "10:00"),
		testfixtures.WithAppointmentStatus(application.StatusCancelled),
	)
	janeLater := addAppointment(t, app,
		testfixtures.WithAppointmentCustomer("Jane Doe", "jane@example.com", "555-123-4567"),
		testfixtures.WithAppointmentSlot("2024-03-04", "15:00"),
	)

	ids := func(list []application.Appointment) []string {
		out := make([]string, 0, len(list))
		for _, a := range list {
			out = append(out, a.ID)
		}
		return out
	}

	if got, want := ids(app.Appointments.AppointmentsByEmail("Jane@Example.com")), []string{janeLater.ID, jane.ID}; !slices.Equal(got, want) {
		t.Fatalf("AppointmentsByEmail: expected %v, got %v", want, got)
	}
	if got := app.Appointments.AppointmentsByEmail("ane@example.com"); len(got) != 0 {
		t.Fatalf("email lookup must match exactly, got %v", ids(got))
	}
	if got, want := ids(app.Appointments.AppointmentsByDate("2024-03-04")), []string{jane.ID, janeLater.ID}; !slices.Equal(got, want) {
		t.Fatalf("AppointmentsByDate: expected %v, got %v", want, got)
	}
	if got, want := ids(app.Appointments.AppointmentsByStatus(application.StatusConfirmed)), []string{john.ID}; !slices.Equal(got, want) {
		t.Fatalf("AppointmentsByStatus: expected %v, got %v", want, got)
	}

	tests := []struct {
		name   string
		query  string
		status string
		want   []string
	}{
		{name: "everything newest first", status: "all", want: []string{alice.ID, john.ID, janeLater.ID, jane.ID}},
		{name: "name ignoring case", query: "JANE", want: []string{janeLater.ID, jane.ID}},
		{name: "email", query: "sample.org", want: []string{john.ID}},
		{name: "phone", query: "000-11", want: []string{alice.ID}},
		{name: "status filter", status: "confirmed", want: []string{john.ID}},
		{name: "query and status", query: "jane", status: "cancelled", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := app.Appointments.SearchAppointments(ctx, tt.query, tt.status)
			if err != nil {
				t.Fatalf("SearchAppointments returned error: %v", err)
			}
			if got := ids(results); !slices.Equal(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAppointmentBook_DeleteAppointment(t *testing.T) {
	ctx := context.Background()
	app, _ := newAdminApp(t)
	booked := addAppointment(t, app)

	if err := app.Appointments.DeleteAppointment(ctx, booked.ID); err != nil {
		t.Fatalf("DeleteAppointment returned error: %v", err)
	}
	if _, ok := app.Appointments.AppointmentByID(booked.ID); ok {
		t.Fatalf("expected appointment to be removed")
	}
}

func TestAppointmentBook_StaleWrite(t *testing.T) {
	factory := testfixtures.NewServiceFactory()
	store := testfixtures.NewMemoryStore(t, nil)
	first := factory.NewLoadedApp(t, store)
	second := factory.NewLoadedApp(t, store)

	addAppointment(t, first)

	_, err := second.Appointments.AddAppointment(context.Background(), testfixtures.NewAppointmentFixture().Application())
	if !errors.Is(err, persistence.ErrStaleWrite) {
		t.Fatalf("expected ErrStaleWrite for a write over a newer list, got %v", err)
	}
	if application.ErrorKind(err) != "stale_write" {
		t.Fatalf("unexpected error kind %q", application.ErrorKind(err))
	}

	if _, err := second.Appointments.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	addAppointment(t, second)
	if got := len(second.Appointments.Appointments()); got != 2 {
		t.Fatalf("expected both appointments after reloading, got %d", got)
	}
}
