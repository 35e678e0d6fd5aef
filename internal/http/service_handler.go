package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/appointment-booking/internal/application"
)

type serviceCatalog interface {
	Services() []application.Service
	ActiveServices() []application.Service
	ServicesByCategory(category string) []application.Service
	Categories() []string
	ServiceByID(id string) (application.Service, bool)
	AddService(ctx context.Context, input application.ServiceInput) (application.Service, error)
	UpdateService(ctx context.Context, id string, patch application.ServicePatch) (application.Service, error)
	DeleteService(ctx context.Context, id string) error
	ToggleServiceActive(ctx context.Context, id string) (application.Service, error)
}

type ServiceHandler struct {
	catalog   serviceCatalog
	gate      application.Gate
	responder responder
	logger    *slog.Logger
}

func NewServiceHandler(catalog serviceCatalog, gate application.Gate, logger *slog.Logger) *ServiceHandler {
	base := defaultLogger(logger)
	return &ServiceHandler{catalog: catalog, gate: gate, responder: newResponder(base), logger: base}
}

func (h *ServiceHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ServiceHandler", operation, attrs...)
}

// List serves active services, optionally narrowed to one category. Admins may
// pass all=true to include inactive services.
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.catalog == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	category := strings.TrimSpace(query.Get("category"))
	includeInactive := query.Get("all") == "true"

	if includeInactive && (h.gate == nil || !h.gate.IsAdmin()) {
		h.log(r.Context(), "List", "error_kind", "unauthorized").WarnContext(r.Context(), "inactive services requested without admin session")
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errAdminRequired)
		return
	}

	var services []application.Service
	switch {
	case includeInactive:
		services = h.catalog.Services()
	case category != "":
		services = h.catalog.ServicesByCategory(category)
	default:
		services = h.catalog.ActiveServices()
	}

	h.log(r.Context(), "List", "category", category, "count", len(services)).DebugContext(r.Context(), "services listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, servicesResponse{Services: services})
}

func (h *ServiceHandler) Categories(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.catalog == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, categoriesResponse{Categories: h.catalog.Categories()})
}

func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.catalog == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	serviceID, ok := ServiceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(serviceID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidServiceID)
		return
	}

	service, found := h.catalog.ServiceByID(serviceID)
	if !found {
		h.responder.handleServiceError(r.Context(), w, application.ErrNotFound)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, serviceResponse{Service: service})
}

func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.catalog == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	input := application.ServiceInput{IsActive: true}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode service request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")

	service, err := h.catalog.AddService(r.Context(), input)
	if err != nil {
		logger.ErrorContext(r.Context(), "service creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("service_id", service.ID).InfoContext(r.Context(), "service created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, serviceResponse{Service: service})
}

func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.catalog == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	serviceID, ok := ServiceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(serviceID) == "" {
		h.log(r.Context(), "Update", "error_kind", "bad_request").ErrorContext(r.Context(), "missing service id for update")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidServiceID)
		return
	}

	var patch application.ServicePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.log(r.Context(), "Update", "service_id", serviceID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode service update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "service_id", serviceID)

	service, err := h.catalog.UpdateService(r.Context(), serviceID, patch)
	if err != nil {
		logger.ErrorContext(r.Context(), "service update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "service updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, serviceResponse{Service: service})
}

func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.catalog == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	serviceID, ok := ServiceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(serviceID) == "" {
		h.log(r.Context(), "Delete", "error_kind", "bad_request").ErrorContext(r.Context(), "missing service id for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidServiceID)
		return
	}

	logger := h.log(r.Context(), "Delete", "service_id", serviceID)
	if err := h.catalog.DeleteService(r.Context(), serviceID); err != nil {
		logger.ErrorContext(r.Context(), "service delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "service deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *ServiceHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.catalog == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	serviceID, ok := ServiceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(serviceID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidServiceID)
		return
	}

	logger := h.log(r.Context(), "Toggle", "service_id", serviceID)
	service, err := h.catalog.ToggleServiceActive(r.Context(), serviceID)
	if err != nil {
		logger.ErrorContext(r.Context(), "service toggle failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "service toggled", "is_active", service.IsActive)
	h.responder.writeJSON(r.Context(), w, http.StatusOK, serviceResponse{Service: service})
}

type serviceResponse struct {
	Service application.Service `json:"service"`
}

type servicesResponse struct {
	Services []application.Service `json:"services"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}
