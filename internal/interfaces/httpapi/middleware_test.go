package httpapi

import (
	"bytes"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hlcomp/hanabi-competitions/internal/infrastructure/credentials"
)

func basicAuth(user, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+password))
}

func testCredentials(t *testing.T) *credentials.Store {
	t.Helper()

	store, err := credentials.Parse(strings.NewReader("# admins\nreferee:s3cret\n"))
	if err != nil {
		t.Fatalf("parse credentials: %v", err)
	}
	return store
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"https://hanab.live"}, next)

	req := httptest.NewRequest(http.MethodGet, "/competitions/x", nil)
	req.Header.Set("Origin", "https://hanab.live")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://hanab.live" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
}

func TestCORS_OptionsPreflight(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"*"}, next)

	req := httptest.NewRequest(http.MethodOptions, "/games", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
}

func TestCORS_DisallowsUnconfiguredOrigin(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"https://allowed.example.com"}, next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://not-allowed.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected empty Access-Control-Allow-Origin, got %q", got)
	}
}

func TestShouldTraceRequest(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz", " /healthz ", "/favicon.ico"} {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for path %q", path)
		}
	}
	for _, path := range []string{"/", "/competitions/x", "/series/summer", "/games"} {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for path %q", path)
		}
	}
}

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{in: "httpapi.Handler.GetCompetitionStandings", want: true},
		{in: "httpapi.RequestLogging", want: false},
		{in: "httpapi.writeError", want: false},
		{in: "httpapi.Handler.", want: false},
	}
	for _, tt := range tests {
		if got := shouldCreateHTTPAPISpan(tt.in); got != tt.want {
			t.Fatalf("shouldCreateHTTPAPISpan(%q)=%v want=%v", tt.in, got, tt.want)
		}
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	store := testCredentials(t)
	var seenUser string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser = adminUserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequireAdmin(store, next)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: http.StatusBadRequest},
		{name: "not basic", header: "Bearer abc", want: http.StatusBadRequest},
		{name: "missing password", header: "Basic " + base64.StdEncoding.EncodeToString([]byte("referee")), want: http.StatusBadRequest},
		{name: "wrong password", header: basicAuth("referee", "nope"), want: http.StatusUnauthorized},
		{name: "unknown user", header: basicAuth("someone", "s3cret"), want: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/variants", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Fatalf("%s: expected status %d, got %d", tt.name, tt.want, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/variants", nil)
	req.Header.Set("Authorization", basicAuth("referee", "s3cret"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if seenUser != "referee" {
		t.Fatalf("expected admin user in context, got %q", seenUser)
	}
}

func TestLimitBody(t *testing.T) {
	t.Parallel()

	var readErr error
	handler := LimitBody(4, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/games", bytes.NewBufferString("0123456789"))
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if readErr == nil {
		t.Fatalf("expected body limit error")
	}
}
