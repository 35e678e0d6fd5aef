package application_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/example/appointment-booking/internal/application"
	"github.com/example/appointment-booking/internal/testfixtures"
)

func TestServiceCatalog_Seeds(t *testing.T) {
	app, _ := newAdminApp(t)

	if got := len(app.Services.Services()); got != 6 {
		t.Fatalf("expected 6 seeded services, got %d", got)
	}
	haircut, ok := app.Services.ServiceByID("service-1")
	if !ok || haircut.Name != "Haircut" || haircut.Duration != 30 || haircut.Price != 35 {
		t.Fatalf("unexpected seeded service %+v", haircut)
	}

	want := []string{"Hair Services", "Consultation", "Wellness", "Skincare", "Nail Services"}
	if got := app.Services.Categories(); !slices.Equal(got, want) {
		t.Fatalf("expected categories %v, got %v", want, got)
	}
}

func TestServiceCatalog_RequiresAdmin(t *testing.T) {
	ctx := context.Background()
	app := testfixtures.NewServiceFactory().NewLoadedApp(t, testfixtures.NewMemoryStore(t, nil))

	if _, err := app.Services.AddService(ctx, testfixtures.NewServiceFixture().Input()); !errors.Is(err, application.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized from AddService, got %v", err)
	}
	if _, err := app.Services.ToggleServiceActive(ctx, "service-1"); !errors.Is(err, application.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized from ToggleServiceActive, got %v", err)
	}
	if err := app.Services.DeleteService(ctx, "service-1"); !errors.Is(err, application.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized from DeleteService, got %v", err)
	}
	if len(app.Services.Services()) != 6 {
		t.Fatalf("expected catalog to be untouched")
	}
}

func TestServiceCatalog_AddService(t *testing.T) {
	ctx := context.Background()

	t.Run("trims and stores", func(t *testing.T) {
		app, _ := newAdminApp(t)
		input := testfixtures.NewServiceFixture(testfixtures.WithServiceName("  Beard Trim  ")).Input()

		service, err := app.Services.AddService(ctx, input)
		if err != nil {
			t.Fatalf("AddService returned error: %v", err)
		}
		if service.ID != "srv-1" || service.Name != "Beard Trim" {
			t.Fatalf("unexpected service %+v", service)
		}
		if stored, ok := app.Services.ServiceByID("srv-1"); !ok || stored != service {
			t.Fatalf("expected stored service, got %+v ok=%v", stored, ok)
		}
	})

	t.Run("reports every invalid field in order", func(t *testing.T) {
		app, _ := newAdminApp(t)

		_, err := app.Services.AddService(ctx, application.ServiceInput{Name: " ", Duration: 0, Price: -5})
		var vErr *application.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		fields := make([]string, 0, len(vErr.Errors))
		for _, e := range vErr.Errors {
			fields = append(fields, e.Field)
		}
		if want := []string{"name", "description", "duration", "price", "category"}; !slices.Equal(fields, want) {
			t.Fatalf("expected fields %v, got %v", want, fields)
		}
		if len(app.Services.Services()) != 6 {
			t.Fatalf("invalid service must not be stored")
		}
	})

	t.Run("failed write keeps the catalog", func(t *testing.T) {
		store := newFailingStore()
		app := testfixtures.NewServiceFactory().NewAdminApp(t, store)
		store.failWrites = true

		if _, err := app.Services.AddService(ctx, testfixtures.NewServiceFixture().Input()); !errors.Is(err, errStoreDown) {
			t.Fatalf("expected store error, got %v", err)
		}
		if len(app.Services.Services()) != 6 {
			t.Fatalf("expected in-memory catalog to be unchanged")
		}
	})
}

func TestServiceCatalog_UpdateService(t *testing.T) {
	ctx := context.Background()
	app, _ := newAdminApp(t)

	price := 40.0
	updated, err := app.Services.UpdateService(ctx, "service-1", application.ServicePatch{Price: &price})
	if err != nil {
		t.Fatalf("UpdateService returned error: %v", err)
	}
	if updated.Price != 40 || updated.Name != "Haircut" || updated.ID != "service-1" {
		t.Fatalf("expected merged update, got %+v", updated)
	}

	zero := 0
	_, err = app.Services.UpdateService(ctx, "service-1", application.ServicePatch{Duration: &zero})
	var vErr *application.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if msg, ok := vErr.Field("duration"); !ok || msg != "Duration must be greater than 0" {
		t.Fatalf("unexpected duration error %q", msg)
	}

	if _, err := app.Services.UpdateService(ctx, "missing", application.ServicePatch{Price: &price}); !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceCatalog_ToggleServiceActive(t *testing.T) {
	ctx := context.Background()
	app, _ := newAdminApp(t)

	first, err := app.Services.ToggleServiceActive(ctx, "service-2")
	if err != nil {
		t.Fatalf("ToggleServiceActive returned error: %v", err)
	}
	if first.IsActive {
		t.Fatalf("expected service to be deactivated")
	}
	if got := len(app.Services.ServicesByCategory("Hair Services")); got != 1 {
		t.Fatalf("expected inactive services to be hidden by category, got %d", got)
	}
	if got := len(app.Services.ActiveServices()); got != 5 {
		t.Fatalf("expected 5 active services, got %d", got)
	}

	second, err := app.Services.ToggleServiceActive(ctx, "service-2")
	if err != nil {
		t.Fatalf("ToggleServiceActive returned error: %v", err)
	}
	if !second.IsActive {
		t.Fatalf("expected toggling twice to restore the flag")
	}

	if _, err := app.Services.ToggleServiceActive(ctx, "missing"); !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceCatalog_DeleteService(t *testing.T) {
	ctx := context.Background()
	app, factory := newAdminApp(t)
	booked := addAppointment(t, app, testfixtures.WithAppointmentService("service-3"))

	if err := app.Services.DeleteService(ctx, "service-3"); err != nil {
		t.Fatalf("DeleteService returned error: %v", err)
	}
	if _, ok := app.Services.ServiceByID("service-3"); ok {
		t.Fatalf("expected service to be removed")
	}
	if _, ok := app.Appointments.AppointmentByID(booked.ID); !ok {
		t.Fatalf("appointments of a deleted service are kept")
	}

	reloaded := factory.NewLoadedApp(t, app.Store)
	if got := len(reloaded.Services.Services()); got != 5 {
		t.Fatalf("expected deletion to be persisted, got %d services", got)
	}
}
