package http

import (
	"net/http"
	"testing"
)

func TestAdminHandler_Session(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodPost, "/admin/login", loginRequest{Password: "wrong"})
	expectStatus(t, rec, http.StatusUnauthorized)
	if got := decode[errorResponse](t, rec); got.ErrorCode != "INVALID_PASSWORD" {
		t.Fatalf("unexpected error code %q", got.ErrorCode)
	}
	if srv.app.Admin.IsAdmin() {
		t.Fatalf("wrong password must not sign in")
	}

	expectStatus(t, srv.do(http.MethodPost, "/admin/login", "{"), http.StatusBadRequest)
	expectStatus(t, srv.do(http.MethodGet, "/admin/dashboard", nil), http.StatusUnauthorized)

	srv.login()
	if got := decode[sessionResponse](t, srv.do(http.MethodPost, "/admin/login", loginRequest{Password: "admin123"})); !got.IsAuthenticated {
		t.Fatalf("expected authenticated session")
	}
	expectStatus(t, srv.do(http.MethodGet, "/admin/dashboard", nil), http.StatusOK)

	expectStatus(t, srv.do(http.MethodPost, "/admin/logout", nil), http.StatusNoContent)
	if srv.app.Admin.IsAdmin() {
		t.Fatalf("logout must sign the administrator out")
	}
	expectStatus(t, srv.do(http.MethodGet, "/admin/dashboard", nil), http.StatusUnauthorized)
	expectStatus(t, srv.do(http.MethodGet, "/admin/logout", nil), http.StatusMethodNotAllowed)
}
