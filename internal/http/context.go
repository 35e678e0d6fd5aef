package http

import (
	"context"
	"log/slog"

	"github.com/example/appointment-booking/internal/logging"
)

type contextKey string

const (
	serviceIDContextKey     contextKey = "service_id"
	appointmentIDContextKey contextKey = "appointment_id"
)

// ContextWithLogger returns a derived context carrying the request scoped logger.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// LoggerFromContext extracts the request scoped logger, if any.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}

// ContextWithServiceID injects the service identifier resolved from the request path.
func ContextWithServiceID(ctx context.Context, serviceID string) context.Context {
	return context.WithValue(ctx, serviceIDContextKey, serviceID)
}

// ServiceIDFromContext extracts a service identifier previously associated with the context.
func ServiceIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(serviceIDContextKey).(string)
	return id, ok
}

// ContextWithAppointmentID injects the appointment identifier resolved from the request path.
func ContextWithAppointmentID(ctx context.Context, appointmentID string) context.Context {
	return context.WithValue(ctx, appointmentIDContextKey, appointmentID)
}

// AppointmentIDFromContext extracts an appointment identifier previously associated with the context.
func AppointmentIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(appointmentIDContextKey).(string)
	return id, ok
}
