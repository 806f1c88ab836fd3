package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/pkg/auth"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

func sessionConfig() config.SessionConfig {
	return config.SessionConfig{
		CookieName: "sf_session",
		Secret:     "secret",
		Issuer:     "storefront",
		TTL:        time.Hour,
	}
}

func TestRequestIDGeneratesWhenMissing(t *testing.T) {
	handler := RequestID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Header().Get(responses.RequestIDHeader) == "" {
		t.Fatal("expected generated request id")
	}
}

func TestRequestIDPropagatesCallerValue(t *testing.T) {
	handler := RequestID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(responses.RequestIDHeader, "abc-123")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if got := resp.Header().Get(responses.RequestIDHeader); got != "abc-123" {
		t.Fatalf("expected abc-123 got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(responses.RequestIDHeader, strings.Repeat("x", maxRequestIDLen+1))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if got := resp.Header().Get(responses.RequestIDHeader); len(got) > maxRequestIDLen {
		t.Fatalf("expected oversized id to be replaced, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(responses.RequestIDHeader, "café-1")
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if got := resp.Header().Get(responses.RequestIDHeader); got == "café-1" || got == "" {
		t.Fatalf("expected non-ascii id to be replaced, got %q", got)
	}
}

func TestRecovererWritesInternalError(t *testing.T) {
	handler := Recoverer(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "INTERNAL_ERROR") {
		t.Fatalf("expected INTERNAL_ERROR envelope, got %s", resp.Body.String())
	}
}

func TestVisitorSessionMintsCookie(t *testing.T) {
	cfg := sessionConfig()
	var captured string
	handler := VisitorSession(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if captured == "" {
		t.Fatal("expected session id in context")
	}
	cookies := resp.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != cfg.CookieName {
		t.Fatalf("expected %s cookie, got %v", cfg.CookieName, cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatal("expected http-only cookie")
	}
	claims, err := auth.ParseSessionToken(cfg, cookies[0].Value)
	if err != nil {
		t.Fatalf("minted cookie did not parse: %v", err)
	}
	if claims.SessionID() != captured {
		t.Fatalf("cookie session %s does not match context %s", claims.SessionID(), captured)
	}
}

func TestVisitorSessionReusesValidCookie(t *testing.T) {
	cfg := sessionConfig()
	sessionID := auth.NewSessionID()
	token, _, err := auth.MintSessionToken(cfg, time.Now(), sessionID)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	var captured string
	handler := VisitorSession(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: token})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if captured != sessionID {
		t.Fatalf("expected session %s got %s", sessionID, captured)
	}
	if len(resp.Result().Cookies()) != 0 {
		t.Fatal("expected no new cookie for a valid session")
	}
}

func TestVisitorSessionReplacesTamperedCookie(t *testing.T) {
	cfg := sessionConfig()
	var captured string
	handler := VisitorSession(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: "not-a-token"})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if captured == "" {
		t.Fatal("expected a fresh session id")
	}
	if len(resp.Result().Cookies()) != 1 {
		t.Fatal("expected a replacement cookie")
	}
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewHTTPMetrics(reg)

	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/products/{productId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/products/1", "/products/2"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	count, err := testutil.GatherAndCount(reg, "storefront_http_requests_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single series for the route pattern, got %d", count)
	}
}

func TestCORSAllowsConfiguredOriginWithCredentials(t *testing.T) {
	handler := CORS([]string{" http://shop.test/ "})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Origin", "http://shop.test")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "http://shop.test" {
		t.Fatalf("expected origin echoed, got %q", got)
	}
	if resp.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatal("expected credentials to be allowed")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Origin", "http://evil.test")
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected unknown origin to be refused, got %q", got)
	}
}

func TestLoggingRecordsStatusAndRoute(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf})

	r := chi.NewRouter()
	r.Use(Logging(logg))
	r.Get("/products/{productId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("missing"))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/9", nil))

	entry := buf.String()
	for _, want := range []string{`"status":404`, `"bytes":7`, `"route":"/products/{productId}"`, `"message":"request.complete"`} {
		if !strings.Contains(entry, want) {
			t.Fatalf("expected %s in %s", want, entry)
		}
	}
}
