package firewall

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSecureHeaders_SetsAllSeven(t *testing.T) {
	handler := SecureHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	if len(SecurityHeaderNames()) != 7 {
		t.Fatalf("expected 7 security headers, got %d", len(SecurityHeaderNames()))
	}
	assertSecurityHeaders(t, recorder.Header())
}

func TestSecureHeaders_OverwritesExistingValues(t *testing.T) {
	handler := SecureHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	recorder := httptest.NewRecorder()
	recorder.Header().Set("X-Frame-Options", "ALLOWALL")
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	values := recorder.Header().Values("X-Frame-Options")
	if len(values) != 1 || values[0] != "SAMEORIGIN" {
		t.Fatalf("expected single overwritten value, got %v", values)
	}
}
