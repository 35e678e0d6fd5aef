package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/appointment-booking/internal/application"
)

type adminSession interface {
	Login(ctx context.Context, password string) (bool, error)
	Logout(ctx context.Context) error
}

type statisticsSource interface {
	Statistics(ctx context.Context) (application.Statistics, error)
}

type AdminHandler struct {
	session   adminSession
	dashboard statisticsSource
	responder responder
	logger    *slog.Logger
}

func NewAdminHandler(session adminSession, dashboard statisticsSource, logger *slog.Logger) *AdminHandler {
	base := defaultLogger(logger)
	return &AdminHandler{session: session, dashboard: dashboard, responder: newResponder(base), logger: base}
}

func (h *AdminHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AdminHandler", operation, attrs...)
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.session == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Login", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode login request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Login")
	ok, err := h.session.Login(r.Context(), req.Password)
	if err != nil {
		logger.ErrorContext(r.Context(), "admin login failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	if !ok {
		logger.WarnContext(r.Context(), "admin login rejected")
		h.responder.writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{
			ErrorCode: "INVALID_PASSWORD",
			Message:   errInvalidPassword.Error(),
		})
		return
	}

	logger.InfoContext(r.Context(), "admin logged in")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, sessionResponse{IsAuthenticated: true})
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.session == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "Logout")
	if err := h.session.Logout(r.Context()); err != nil {
		logger.ErrorContext(r.Context(), "admin logout failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "admin logged out")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.dashboard == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	stats, err := h.dashboard.Statistics(r.Context())
	if err != nil {
		h.log(r.Context(), "Dashboard").ErrorContext(r.Context(), "statistics failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, stats)
}

type loginRequest struct {
	Password string `json:"password"`
}

type sessionResponse struct {
	IsAuthenticated bool `json:"isAuthenticated"`
}
