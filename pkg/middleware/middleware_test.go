package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/tour-desk/pkg/logging"
	"github.com/JaimeStill/tour-desk/pkg/middleware"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestSystem_Apply_Order(t *testing.T) {
	mw := middleware.New()
	var order []string

	for _, name := range []string{"first", "second"} {
		mw.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name+"-before")
				next.ServeHTTP(w, r)
				order = append(order, name+"-after")
			})
		})
	}

	mw.Apply(ok).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	want := []string{"first-before", "second-before", "second-after", "first-after"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/services?page=1", nil))

	out := buf.String()
	for _, want := range []string{"request", "GET", "/api/services?page=1", "status=418", "duration"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name   string
		cfg    middleware.CORSConfig
		origin string
		want   string
	}{
		{
			name:   "disabled",
			cfg:    middleware.CORSConfig{Enabled: false, Origins: []string{"http://localhost:3000"}},
			origin: "http://localhost:3000",
		},
		{
			name:   "no origins",
			cfg:    middleware.CORSConfig{Enabled: true},
			origin: "http://localhost:3000",
		},
		{
			name:   "allowed origin",
			cfg:    middleware.CORSConfig{Enabled: true, Origins: []string{"http://localhost:3000"}},
			origin: "http://localhost:3000",
			want:   "http://localhost:3000",
		},
		{
			name:   "disallowed origin",
			cfg:    middleware.CORSConfig{Enabled: true, Origins: []string{"http://localhost:3000"}},
			origin: "http://evil.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			if err := cfg.Finalize(nil); err != nil {
				t.Fatalf("Finalize() error = %v", err)
			}

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()

			middleware.CORS(&cfg)(ok).ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCORSConfig_Env(t *testing.T) {
	t.Setenv("TEST_CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("TEST_CORS_ENABLED", "true")

	var cfg middleware.CORSConfig
	env := &middleware.CORSEnv{Enabled: "TEST_CORS_ENABLED", Origins: "TEST_CORS_ORIGINS"}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if !cfg.Enabled {
		t.Error("Enabled should be loaded from env")
	}
	if len(cfg.Origins) != 2 || cfg.Origins[1] != "http://b.test" {
		t.Errorf("Origins = %v", cfg.Origins)
	}
}

func TestTrimSlash(t *testing.T) {
	tests := []struct {
		path     string
		status   int
		location string
	}{
		{"/", http.StatusOK, ""},
		{"/api/services", http.StatusOK, ""},
		{"/api/services/", http.StatusMovedPermanently, "/api/services"},
		{"/api/services/?page=2", http.StatusMovedPermanently, "/api/services?page=2"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			middleware.TrimSlash()(ok).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if got := w.Header().Get("Location"); got != tt.location {
				t.Errorf("Location = %q, want %q", got, tt.location)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	cfg := &middleware.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, Burst: 2}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	handler := middleware.RateLimit(cfg, logging.Discard())(ok)

	statuses := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i := range want {
		if statuses[i] != want[i] {
			t.Errorf("request %d status = %d, want %d", i, statuses[i], want[i])
		}
	}

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.2:5555"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, other)
	if w.Code != http.StatusOK {
		t.Errorf("second client status = %d, want 200", w.Code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	cfg := &middleware.RateLimitConfig{Enabled: false}
	handler := middleware.RateLimit(cfg, logging.Discard())(ok)

	for range 50 {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
	}
}
