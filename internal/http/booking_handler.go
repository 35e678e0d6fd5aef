package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/appointment-booking/internal/application"
)

// Booker runs one complete booking. A fresh Booker is used per request since
// the workflow keeps its own step state.
type Booker interface {
	Book(ctx context.Context, draft application.BookingDraft) (application.Appointment, error)
}

type BookingHandler struct {
	newBooker func() Booker
	responder responder
	logger    *slog.Logger
}

func NewBookingHandler(newBooker func() Booker, logger *slog.Logger) *BookingHandler {
	base := defaultLogger(logger)
	return &BookingHandler{newBooker: newBooker, responder: newResponder(base), logger: base}
}

func (h *BookingHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "BookingHandler", operation, attrs...)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.newBooker == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var draft application.BookingDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode booking request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "service_id", draft.ServiceID, "date", draft.Date, "time_slot", draft.TimeSlot)

	appointment, err := h.newBooker().Book(r.Context(), draft)
	if err != nil {
		logger.WarnContext(r.Context(), "booking rejected", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("appointment_id", appointment.ID).InfoContext(r.Context(), "booking created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, appointmentResponse{Appointment: appointment})
}
