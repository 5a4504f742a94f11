// Package module groups an http.Handler under a single-level path prefix with
// its own middleware chain, and routes requests to mounted modules.
package module

import (
	"fmt"
	"net/http"
	"strings"
)

// Module is a handler mounted under a single-level prefix such as "/api".
type Module struct {
	prefix     string
	handler    http.Handler
	middleware []func(http.Handler) http.Handler
}

// New creates a module. It panics when prefix is empty, lacks a leading
// slash, or spans more than one path segment.
func New(prefix string, handler http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:  prefix,
		handler: handler,
	}
}

// Prefix returns the mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware. The first registered middleware runs outermost.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware = append(m.middleware, mw)
}

// Handler returns the module handler wrapped in its middleware.
func (m *Module) Handler() http.Handler {
	h := m.handler
	for i := len(m.middleware) - 1; i >= 0; i-- {
		h = m.middleware[i](h)
	}
	return h
}

// Serve strips the module prefix from the request path and dispatches it.
func (m *Module) Serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, m.prefix)
	if path == "" {
		path = "/"
	}

	r2 := r.Clone(r.Context())
	r2.URL.Path = path
	r2.URL.RawPath = ""

	m.Handler().ServeHTTP(w, r2)
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix required")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix %q must start with /", prefix)
	}
	if strings.Count(prefix, "/") != 1 || len(prefix) == 1 {
		return fmt.Errorf("module prefix %q must be a single path segment", prefix)
	}
	return nil
}
