package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/appointment-booking/internal/application"
	"github.com/example/appointment-booking/internal/testfixtures"
)

type testServer struct {
	t       *testing.T
	app     *application.App
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	factory := testfixtures.NewServiceFactory()
	app := factory.NewLoadedApp(t, testfixtures.NewMemoryStore(t, nil))
	return &testServer{t: t, app: app, handler: NewAppRouter(app, discardLogger())}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *testServer) do(method, target string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(v)
	default:
		payload, err := json.Marshal(v)
		if err != nil {
			s.t.Fatalf("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login() {
	s.t.Helper()
	if rec := s.do(http.MethodPost, "/admin/login", loginRequest{Password: application.DefaultAdminPassword}); rec.Code != http.StatusOK {
		s.t.Fatalf("admin login failed with status %d: %s", rec.Code, rec.Body.String())
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func validDraft() application.BookingDraft {
	return application.BookingDraft{
		ServiceID:     "service-1",
		Date:          testfixtures.MondayDate,
		TimeSlot:      "10:00",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		CustomerPhone: "(555) 123-4567",
		Notes:         "first visit",
	}
}
