package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/example/appointment-booking/internal/persistence"
	"github.com/example/appointment-booking/internal/validation"
)

// Gate decides whether admin-only operations may run.
type Gate interface {
	IsAdmin() bool
}

func allowAdmin(gate Gate) error {
	if gate == nil || gate.IsAdmin() {
		return nil
	}
	return ErrUnauthorized
}

// ServiceCatalog manages the services customers can book.
type ServiceCatalog struct {
	mu       sync.Mutex
	services *persistence.Collection[Service]
	gate     Gate
	logger   *slog.Logger
}

// NewServiceCatalog constructs a catalog stored under persistence.KeyServices.
// A nil gate leaves admin operations unrestricted.
func NewServiceCatalog(store persistence.Store, gate Gate, idGenerator func() string) *ServiceCatalog {
	return NewServiceCatalogWithLogger(store, gate, idGenerator, nil)
}

// NewServiceCatalogWithLogger constructs a catalog with a specified logger.
func NewServiceCatalogWithLogger(store persistence.Store, gate Gate, idGenerator func() string, logger *slog.Logger, opts ...persistence.Option) *ServiceCatalog {
	if idGenerator == nil {
		idGenerator = persistence.NewID("srv")
	}
	return &ServiceCatalog{
		services: persistence.NewCollection(store, persistence.KeyServices, DefaultServices, idGenerator, opts...),
		gate:     gate,
		logger:   defaultLogger(logger),
	}
}

func (c *ServiceCatalog) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, c.logger, "ServiceCatalog", operation, attrs...)
}

// Load reads the catalog from the store, seeding it when absent. On failure the
// default services are served and the error is returned alongside them.
func (c *ServiceCatalog) Load(ctx context.Context) ([]Service, error) {
	services, err := c.services.Load(ctx)
	logger := c.loggerWith(ctx, "Load")
	if err != nil {
		logger.ErrorContext(ctx, "failed to load services", "error", err, "error_kind", ErrorKind(err))
		return services, err
	}
	logger.DebugContext(ctx, "services loaded", "count", len(services))
	return services, nil
}

// Services returns every service, active or not, in stored order.
func (c *ServiceCatalog) Services() []Service {
	return c.services.All()
}

// ServiceByID returns the service with the given id.
func (c *ServiceCatalog) ServiceByID(id string) (Service, bool) {
	return c.services.Find(id)
}

// ActiveServices returns the services customers may book.
func (c *ServiceCatalog) ActiveServices() []Service {
	return c.services.Filter(func(s Service) bool { return s.IsActive })
}

// ServicesByCategory returns the active services in category.
func (c *ServiceCatalog) ServicesByCategory(category string) []Service {
	return c.services.Filter(func(s Service) bool {
		return s.IsActive && s.Category == category
	})
}

// Categories returns the distinct categories of active services in order of first appearance.
func (c *ServiceCatalog) Categories() []string {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, s := range c.ActiveServices() {
		if _, ok := seen[s.Category]; ok {
			continue
		}
		seen[s.Category] = struct{}{}
		categories = append(categories, s.Category)
	}
	return categories
}

// AddService validates input and appends a new service for administrators.
func (c *ServiceCatalog) AddService(ctx context.Context, input ServiceInput) (service Service, err error) {
	if c == nil {
		err = fmt.Errorf("ServiceCatalog is nil")
		return
	}

	logger := c.loggerWith(ctx, "AddService", "name", input.Name)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to add service", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("service_id", service.ID).InfoContext(ctx, "service added")
	}()

	if err = allowAdmin(c.gate); err != nil {
		return
	}

	candidate := normalizeService(Service{
		Name:        input.Name,
		Description: input.Description,
		Duration:    input.Duration,
		Price:       input.Price,
		Category:    input.Category,
		IsActive:    input.IsActive,
	})
	if vErr := validateService(candidate); vErr.HasErrors() {
		err = vErr
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	service, err = c.services.Add(ctx, candidate)
	return
}

// UpdateService merges patch into an existing service for administrators.
// The merged service must still pass the service form rules.
func (c *ServiceCatalog) UpdateService(ctx context.Context, id string, patch ServicePatch) (service Service, err error) {
	if c == nil {
		err = fmt.Errorf("ServiceCatalog is nil")
		return
	}

	logger := c.loggerWith(ctx, "UpdateService", "service_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update service", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "service updated")
	}()

	if err = allowAdmin(c.gate); err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	existing, ok := c.services.Find(id)
	if !ok {
		err = ErrNotFound
		return
	}

	merged := normalizeService(patch.apply(existing))
	if vErr := validateService(merged); vErr.HasErrors() {
		err = vErr
		return
	}

	var found bool
	found, err = c.services.Update(ctx, id, func(Service) Service { return merged })
	if err != nil {
		return
	}
	if !found {
		err = ErrNotFound
		return
	}
	service = merged
	return
}

// DeleteService removes a service for administrators. Appointments that
// reference it are kept; lookups of the service then report it missing.
func (c *ServiceCatalog) DeleteService(ctx context.Context, id string) error {
	if c == nil {
		return fmt.Errorf("ServiceCatalog is nil")
	}

	logger := c.loggerWith(ctx, "DeleteService", "service_id", id)

	if err := allowAdmin(c.gate); err != nil {
		logger.ErrorContext(ctx, "failed to delete service", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.services.Remove(ctx, id); err != nil {
		logger.ErrorContext(ctx, "failed to delete service", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "service deleted")
	return nil
}

// ToggleServiceActive flips the active flag of a service for administrators.
// A missing service is reported as ErrNotFound without writing to the store.
func (c *ServiceCatalog) ToggleServiceActive(ctx context.Context, id string) (service Service, err error) {
	if c == nil {
		err = fmt.Errorf("ServiceCatalog is nil")
		return
	}

	logger := c.loggerWith(ctx, "ToggleServiceActive", "service_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to toggle service", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "service toggled", "is_active", service.IsActive)
	}()

	if err = allowAdmin(c.gate); err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	existing, ok := c.services.Find(id)
	if !ok {
		err = ErrNotFound
		return
	}

	toggled := existing
	toggled.IsActive = !existing.IsActive
	if _, err = c.services.Update(ctx, id, func(Service) Service { return toggled }); err != nil {
		return
	}
	service = toggled
	return
}

func normalizeService(s Service) Service {
	s.Name = strings.TrimSpace(s.Name)
	s.Description = strings.TrimSpace(s.Description)
	s.Category = strings.TrimSpace(s.Category)
	return s
}

func validateService(s Service) *ValidationError {
	return newValidationError(validation.ValidateService(validation.ServiceForm{
		Name:        s.Name,
		Description: s.Description,
		Duration:    s.Duration,
		Price:       s.Price,
		Category:    s.Category,
	}))
}
