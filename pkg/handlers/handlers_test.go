package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/tour-desk/pkg/handlers"
	"github.com/JaimeStill/tour-desk/pkg/logging"
)

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()

	handlers.RespondJSON(w, http.StatusCreated, map[string]string{"title": "City Tour"})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["title"] != "City Tour" {
		t.Errorf("title = %q", body["title"])
	}
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()

	handlers.RespondError(w, logging.Discard(), http.StatusNotFound, errors.New("document not found"))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "document not found" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		limit   int64
		wantErr bool
		empty   bool
	}{
		{name: "valid", body: `{"email":"a@example.com"}`},
		{name: "empty", body: "", wantErr: true, empty: true},
		{name: "malformed", body: `{"email":`, wantErr: true},
		{name: "truncated by limit", body: `{"email":"a@example.com"}`, limit: 5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var v map[string]any
			err := handlers.DecodeJSON(req, tt.limit, &v)

			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.empty && !errors.Is(err, handlers.ErrEmptyBody) {
				t.Errorf("error = %v, want ErrEmptyBody", err)
			}
		})
	}
}
