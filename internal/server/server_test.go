package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/blufunnel/games-portal/internal/app"
	"github.com/blufunnel/games-portal/internal/common"
	"github.com/blufunnel/games-portal/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.NewDefaultConfig()
	cfg.Environment = "prod" // no background seeding in tests
	cfg.Storage.DataDir = t.TempDir()
	cfg.Backup.Enabled = false

	application, err := app.New(cfg, common.NewSilentLogger())
	if err != nil {
		t.Fatalf("failed to initialize app: %v", err)
	}
	t.Cleanup(func() { application.Close() })

	return New(application)
}

func TestRoutes_Pages(t *testing.T) {
	srv := newTestServer(t)

	paths := []string{"/", "/players", "/companies", "/portfolios", "/admin", "/about"}
	for _, path := range paths {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, w.Code)
		}
		if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
			t.Errorf("GET %s: expected HTML content type, got %q", path, ct)
		}
	}
}

func TestRoutes_RootIsExactMatch(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/no-such-page", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown path, got %d", w.Code)
	}
}

func TestRoutes_APIHealth(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestRoutes_APINotFoundIsJSON(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/no-such-endpoint", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON 404, got content type %q", ct)
	}
}

func TestRoutes_APIMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("DELETE", "/api/players", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	checks := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	}
	for header, want := range checks {
		if got := w.Header().Get(header); got != want {
			t.Errorf("expected %s=%q, got %q", header, want, got)
		}
	}
	if w.Header().Get("Content-Security-Policy") == "" {
		t.Error("expected a Content-Security-Policy header")
	}
}

func TestCorrelationID_GeneratedAndEchoed(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Header().Get("X-Correlation-ID") == "" {
		t.Error("expected a generated correlation ID")
	}

	req = httptest.NewRequest("GET", "/api/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if got := w.Header().Get("X-Correlation-ID"); got != "req-42" {
		t.Errorf("expected correlation ID req-42, got %q", got)
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("OPTIONS", "/api/players", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS headers on preflight response")
	}
}

func TestCSRF_CookieSetOnGet(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/admin", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "_csrf" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected a _csrf cookie on GET responses")
	}
}

func TestCSRF_FormPostWithoutCookieRejected(t *testing.T) {
	srv := newTestServer(t)

	form := url.Values{}
	form.Set("player_name", "Alice")

	req := httptest.NewRequest("POST", "/admin/players", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 without CSRF token, got %d", w.Code)
	}
}

func TestCSRF_FormPostWithFieldAccepted(t *testing.T) {
	srv := newTestServer(t)

	form := url.Values{}
	form.Set("player_name", "Alice")
	form.Set("_csrf", "token-1")

	req := httptest.NewRequest("POST", "/admin/players", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "_csrf", Value: "token-1"})
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302 with matching CSRF field, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin?saved=player" {
		t.Errorf("unexpected redirect: %q", loc)
	}
}

func TestCSRF_FormPostWithHeaderAccepted(t *testing.T) {
	srv := newTestServer(t)

	form := url.Values{}
	form.Set("company_name", "Acme")

	req := httptest.NewRequest("POST", "/admin/companies", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-CSRF-Token", "token-2")
	req.AddCookie(&http.Cookie{Name: "_csrf", Value: "token-2"})
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Errorf("expected 302 with matching CSRF header, got %d", w.Code)
	}
}

func TestCSRF_MismatchedTokenRejected(t *testing.T) {
	srv := newTestServer(t)

	form := url.Values{}
	form.Set("player_name", "Alice")
	form.Set("_csrf", "wrong")

	req := httptest.NewRequest("POST", "/admin/players", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "_csrf", Value: "token-3"})
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for mismatched token, got %d", w.Code)
	}
}

func TestMaxBodySize_OversizedFormRejected(t *testing.T) {
	srv := newTestServer(t)

	// Valid CSRF token so the size limit is the only reason to refuse.
	form := url.Values{}
	form.Set("player_name", "Alice")
	form.Set("_csrf", "token-big")
	form.Set("padding", strings.Repeat("x", 2<<20))

	req := httptest.NewRequest("POST", "/admin/players", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "_csrf", Value: "token-big"})
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	// The bounded reader truncates the form parse, so the token never matches.
	if w.Code == http.StatusFound {
		t.Fatalf("expected an oversized form to be rejected, got redirect %q", w.Header().Get("Location"))
	}
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}

	count, err := srv.app.Storage.Players().Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("expected no players saved from oversized form, got %d", count)
	}
}

func TestCSRF_APIRoutesSkipped(t *testing.T) {
	srv := newTestServer(t)

	payload := `{"player_name":"Alice"}`
	req := httptest.NewRequest("POST", "/api/players", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201 without CSRF on API route, got %d: %s", w.Code, w.Body.String())
	}
}

func TestStaticRoute(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/static/style.css", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for stylesheet, got %d", w.Code)
	}
}

func TestRouteByMethod(t *testing.T) {
	routes := MethodRouter{
		"GET": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		},
	}

	req := httptest.NewRequest("GET", "/x", nil)
	w := httptest.NewRecorder()
	RouteByMethod(w, req, routes)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected the GET handler to run, got %d", w.Code)
	}

	req = httptest.NewRequest("POST", "/x", nil)
	w = httptest.NewRecorder()
	RouteByMethod(w, req, routes)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for unmapped method, got %d", w.Code)
	}
}
