package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimitEnv maps environment variable names for rate limit configuration.
type RateLimitEnv struct {
	Enabled           string
	RequestsPerSecond string
	Burst             string
}

// RateLimitConfig bounds request throughput per client address.
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// Finalize applies defaults, loads environment overrides, and validates.
func (c *RateLimitConfig) Finalize(env *RateLimitEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero values from overlay.
func (c *RateLimitConfig) Merge(overlay *RateLimitConfig) {
	c.Enabled = overlay.Enabled
	if overlay.RequestsPerSecond > 0 {
		c.RequestsPerSecond = overlay.RequestsPerSecond
	}
	if overlay.Burst > 0 {
		c.Burst = overlay.Burst
	}
}

func (c *RateLimitConfig) loadDefaults() {
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = 10
	}
	if c.Burst <= 0 {
		c.Burst = 20
	}
}

func (c *RateLimitConfig) loadEnv(env *RateLimitEnv) {
	if env.Enabled != "" {
		if v := os.Getenv(env.Enabled); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.Enabled = b
			}
		}
	}
	if env.RequestsPerSecond != "" {
		if v := os.Getenv(env.RequestsPerSecond); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				c.RequestsPerSecond = f
			}
		}
	}
	if env.Burst != "" {
		if v := os.Getenv(env.Burst); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.Burst = n
			}
		}
	}
}

func (c *RateLimitConfig) validate() error {
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive")
	}
	if c.Burst < 1 {
		return fmt.Errorf("burst must be positive")
	}
	return nil
}

type limiterStore struct {
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
	mu       sync.Mutex
}

func (s *limiterStore) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, ok := s.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(s.limit, s.burst)
		s.limiters[key] = limiter
	}
	return limiter
}

// RateLimit rejects requests with 429 once a client address exceeds its
// token bucket. Disabled configs pass requests through.
func RateLimit(cfg *RateLimitConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler { return next }
	}

	store := &limiterStore{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(cfg.RequestsPerSecond),
		burst:    cfg.Burst,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !store.get(ip).Allow() {
				logger.Warn("rate limit exceeded", "ip", ip, "uri", r.URL.RequestURI())
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
