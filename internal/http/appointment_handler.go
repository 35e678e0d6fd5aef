package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/appointment-booking/internal/application"
)

type appointmentBook interface {
	AppointmentsByEmail(email string) []application.Appointment
	CancelByCustomer(ctx context.Context, id, email string) (application.Appointment, error)
	SearchAppointments(ctx context.Context, query, status string) ([]application.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id string, status application.AppointmentStatus) (application.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
}

type AppointmentHandler struct {
	book      appointmentBook
	responder responder
	logger    *slog.Logger
}

func NewAppointmentHandler(book appointmentBook, logger *slog.Logger) *AppointmentHandler {
	base := defaultLogger(logger)
	return &AppointmentHandler{book: book, responder: newResponder(base), logger: base}
}

func (h *AppointmentHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AppointmentHandler", operation, attrs...)
}

// ListByEmail serves the customer's own bookings, newest first.
func (h *AppointmentHandler) ListByEmail(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.book == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingEmail)
		return
	}

	appointments := h.book.AppointmentsByEmail(email)
	h.log(r.Context(), "ListByEmail", "count", len(appointments)).DebugContext(r.Context(), "appointments listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, appointmentsResponse{Appointments: appointments})
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.book == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	appointmentID, ok := AppointmentIDFromContext(r.Context())
	if !ok || strings.TrimSpace(appointmentID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAppointmentID)
		return
	}

	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Cancel", "appointment_id", appointmentID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode cancel request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingEmail)
		return
	}

	logger := h.log(r.Context(), "Cancel", "appointment_id", appointmentID)
	appointment, err := h.book.CancelByCustomer(r.Context(), appointmentID, req.Email)
	if err != nil {
		logger.WarnContext(r.Context(), "customer cancellation rejected", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "appointment cancelled by customer")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, appointmentResponse{Appointment: appointment})
}

// Search serves the admin listing filtered by free text and status.
func (h *AppointmentHandler) Search(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.book == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	logger := h.log(r.Context(), "Search", "status", query.Get("status"))

	appointments, err := h.book.SearchAppointments(r.Context(), query.Get("q"), query.Get("status"))
	if err != nil {
		logger.ErrorContext(r.Context(), "appointment search failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.DebugContext(r.Context(), "appointments searched", "count", len(appointments))
	h.responder.writeJSON(r.Context(), w, http.StatusOK, appointmentsResponse{Appointments: appointments})
}

func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.book == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	appointmentID, ok := AppointmentIDFromContext(r.Context())
	if !ok || strings.TrimSpace(appointmentID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAppointmentID)
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "UpdateStatus", "appointment_id", appointmentID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode status request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "UpdateStatus", "appointment_id", appointmentID, "status", req.Status)
	appointment, err := h.book.UpdateAppointmentStatus(r.Context(), appointmentID, req.Status)
	if err != nil {
		logger.ErrorContext(r.Context(), "status update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "appointment status updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, appointmentResponse{Appointment: appointment})
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.book == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	appointmentID, ok := AppointmentIDFromContext(r.Context())
	if !ok || strings.TrimSpace(appointmentID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAppointmentID)
		return
	}

	logger := h.log(r.Context(), "Delete", "appointment_id", appointmentID)
	if err := h.book.DeleteAppointment(r.Context(), appointmentID); err != nil {
		logger.ErrorContext(r.Context(), "appointment delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "appointment deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type cancelRequest struct {
	Email string `json:"email"`
}

type statusRequest struct {
	Status application.AppointmentStatus `json:"status"`
}

type appointmentResponse struct {
	Appointment application.Appointment `json:"appointment"`
}

type appointmentsResponse struct {
	Appointments []application.Appointment `json:"appointments"`
}
