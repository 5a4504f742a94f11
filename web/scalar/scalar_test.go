package scalar_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/tour-desk/web/scalar"
)

func TestNewModule(t *testing.T) {
	m, err := scalar.NewModule("/scalar", scalar.Page{Title: "Tour Desk API", SpecURL: "/api/openapi.json"})
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	tests := []struct {
		path   string
		status int
	}{
		{"/scalar", http.StatusOK},
		{"/scalar/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			m.Serve(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			if tt.status != http.StatusOK {
				return
			}

			body := w.Body.String()
			for _, want := range []string{"<title>Tour Desk API</title>", `data-url="/api/openapi.json"`} {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q", want)
				}
			}
		})
	}
}
