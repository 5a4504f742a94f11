// Package handlers provides HTTP response utilities for JSON APIs.
// These stateless functions standardize request decoding and response
// formatting across handlers.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// ErrEmptyBody is returned by DecodeJSON when the request has no body.
var ErrEmptyBody = errors.New("request body is empty")

// RespondJSON writes a JSON response with the given status code and data.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs the error and writes {"error": "<message>"}.
// Server-side failures log at error level; client errors log at warn.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "error", err, "status", status)
	} else {
		logger.Warn("request rejected", "error", err, "status", status)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// DecodeJSON reads at most limit bytes of the request body into v.
// A limit of zero or less disables the bound.
func DecodeJSON(r *http.Request, limit int64, v any) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	var body io.Reader = r.Body
	if limit > 0 {
		body = io.LimitReader(r.Body, limit)
	}

	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}
