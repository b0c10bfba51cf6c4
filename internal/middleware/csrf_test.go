package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func testCSRFHandler(t *testing.T, cfg CSRFConfig) http.Handler {
	t.Helper()
	return CSRF(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCSRF_AllowsSameSitePost(t *testing.T) {
	h := testCSRFHandler(t, DefaultCSRFConfig([]byte("0123456789abcdef0123456789abcdef"), false, ""))

	req := httptest.NewRequest(http.MethodPost, "/api/posts", nil)
	req.Header.Set("Sec-Fetch-Site", "same-origin")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestCSRF_AllowsNonBrowserPost(t *testing.T) {
	h := testCSRFHandler(t, DefaultCSRFConfig([]byte("0123456789abcdef0123456789abcdef"), false, ""))

	// No Sec-Fetch-Site and no Origin, as sent by curl or a test client.
	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestCSRF_RejectsCrossSitePost(t *testing.T) {
	h := testCSRFHandler(t, DefaultCSRFConfig([]byte("0123456789abcdef0123456789abcdef"), false, ""))

	req := httptest.NewRequest(http.MethodPost, "/api/posts", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestCSRF_AllowsCrossSiteGet(t *testing.T) {
	h := testCSRFHandler(t, DefaultCSRFConfig([]byte("0123456789abcdef0123456789abcdef"), false, ""))

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestDefaultCSRFConfig_DevTrustsLocalhost(t *testing.T) {
	cfg := DefaultCSRFConfig([]byte("key"), true, "localhost:8080")

	if len(cfg.TrustedOrigins) == 0 {
		t.Fatal("expected trusted origins in dev mode")
	}
	found := false
	for _, o := range cfg.TrustedOrigins {
		if o == "localhost:8080" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected addr in trusted origins, got %v", cfg.TrustedOrigins)
	}
}

func TestDefaultCSRFConfig_ProdNoTrustedOrigins(t *testing.T) {
	cfg := DefaultCSRFConfig([]byte("key"), false, "localhost:8080")

	if len(cfg.TrustedOrigins) != 0 {
		t.Errorf("expected no trusted origins in production, got %v", cfg.TrustedOrigins)
	}
}
