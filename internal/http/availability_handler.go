package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/appointment-booking/internal/application"
	"github.com/example/appointment-booking/internal/availability"
)

type slotFinder interface {
	SlotsForDate(ctx context.Context, date, serviceID string) ([]availability.Slot, error)
}

type AvailabilityHandler struct {
	slots     slotFinder
	responder responder
	logger    *slog.Logger
}

func NewAvailabilityHandler(slots slotFinder, logger *slog.Logger) *AvailabilityHandler {
	base := defaultLogger(logger)
	return &AvailabilityHandler{slots: slots, responder: newResponder(base), logger: base}
}

func (h *AvailabilityHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AvailabilityHandler", operation, attrs...)
}

// Slots serves GET /availability?serviceId=...&date=YYYY-MM-DD.
func (h *AvailabilityHandler) Slots(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.slots == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	serviceID := strings.TrimSpace(query.Get("serviceId"))
	date := strings.TrimSpace(query.Get("date"))
	if serviceID == "" || date == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingQuery)
		return
	}

	logger := h.log(r.Context(), "Slots", "service_id", serviceID, "date", date)
	slots, err := h.slots.SlotsForDate(r.Context(), date, serviceID)
	if err != nil {
		logger.ErrorContext(r.Context(), "slot lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.DebugContext(r.Context(), "slots listed", "count", len(slots))
	h.responder.writeJSON(r.Context(), w, http.StatusOK, availabilityResponse{
		ServiceID: serviceID,
		Date:      date,
		Slots:     slots,
	})
}

type availabilityResponse struct {
	ServiceID string              `json:"serviceId"`
	Date      string              `json:"date"`
	Slots     []availability.Slot `json:"slots"`
}
