package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/appointment-booking/internal/application"
)

type RouterConfig struct {
	Services     *ServiceHandler
	Availability *AvailabilityHandler
	Bookings     *BookingHandler
	Appointments *AppointmentHandler
	Admin        *AdminHandler
	// Gate guards the administrator routes. A nil gate rejects them all.
	Gate       application.Gate
	Logger     *slog.Logger
	Middleware []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	requireAdmin := RequireAdmin(cfg.Gate, cfg.Logger)
	admin := func(next http.HandlerFunc) http.Handler {
		return requireAdmin(next)
	}

	if cfg.Services != nil {
		mux.HandleFunc("/services", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Services.List(w, r)
			case http.MethodPost:
				admin(cfg.Services.Create).ServeHTTP(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/services/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/services/")
			id, action, _ := strings.Cut(rest, "/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithServiceID(r.Context(), id))

			switch action {
			case "":
				switch r.Method {
				case http.MethodGet:
					cfg.Services.Get(w, r)
				case http.MethodPut:
					admin(cfg.Services.Update).ServeHTTP(w, r)
				case http.MethodDelete:
					admin(cfg.Services.Delete).ServeHTTP(w, r)
				default:
					methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
				}
			case "toggle":
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				admin(cfg.Services.Toggle).ServeHTTP(w, r)
			default:
				http.NotFound(w, r)
			}
		})
		mux.HandleFunc("/categories", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Services.Categories(w, r)
		})
	}

	if cfg.Availability != nil {
		mux.HandleFunc("/availability", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Availability.Slots(w, r)
		})
	}

	if cfg.Bookings != nil {
		mux.HandleFunc("/bookings", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Bookings.Create(w, r)
		})
	}

	if cfg.Appointments != nil {
		mux.HandleFunc("/appointments", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Appointments.ListByEmail(w, r)
		})
		mux.HandleFunc("/appointments/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/appointments/")
			id, action, _ := strings.Cut(rest, "/")
			if id == "" || action != "cancel" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Appointments.Cancel(w, r.WithContext(ContextWithAppointmentID(r.Context(), id)))
		})
		mux.Handle("/admin/appointments", admin(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Appointments.Search(w, r)
		}))
		mux.Handle("/admin/appointments/", admin(func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/admin/appointments/")
			id, action, _ := strings.Cut(rest, "/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithAppointmentID(r.Context(), id))

			switch action {
			case "":
				if r.Method != http.MethodDelete {
					methodNotAllowed(w, http.MethodDelete)
					return
				}
				cfg.Appointments.Delete(w, r)
			case "status":
				if r.Method != http.MethodPut {
					methodNotAllowed(w, http.MethodPut)
					return
				}
				cfg.Appointments.UpdateStatus(w, r)
			default:
				http.NotFound(w, r)
			}
		}))
	}

	if cfg.Admin != nil {
		mux.HandleFunc("/admin/login", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Admin.Login(w, r)
		})
		mux.HandleFunc("/admin/logout", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Admin.Logout(w, r)
		})
		mux.Handle("/admin/dashboard", admin(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Admin.Dashboard(w, r)
		}))
	}

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

// NewAppRouter wires every handler to app, guarding admin routes with its
// admin session.
func NewAppRouter(app *application.App, logger *slog.Logger, middleware ...func(http.Handler) http.Handler) http.Handler {
	return NewRouter(RouterConfig{
		Services:     NewServiceHandler(app.Services, app.Admin, logger),
		Availability: NewAvailabilityHandler(app.Availability, logger),
		Bookings:     NewBookingHandler(func() Booker { return app.NewWorkflow() }, logger),
		Appointments: NewAppointmentHandler(app.Appointments, logger),
		Admin:        NewAdminHandler(app.Admin, app.Dashboard, logger),
		Gate:         app.Admin,
		Logger:       logger,
		Middleware:   middleware,
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
