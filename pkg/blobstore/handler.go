package blobstore

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/tour-desk/pkg/handlers"
	"github.com/JaimeStill/tour-desk/pkg/routes"
)

// Handler serves stored objects by key.
type Handler struct {
	store  Retriever
	logger *slog.Logger
}

// NewHandler creates a handler serving objects from store.
func NewHandler(store Retriever, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger.With("handler", "blobs"),
	}
}

// Routes returns the blob serving route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{key...}", Handler: h.Serve},
		},
	}
}

func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	data, err := h.store.Retrieve(r.Context(), r.PathValue("key"))
	if err != nil {
		handlers.RespondError(w, h.logger, mapHTTPStatus(err), err)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func mapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidKey):
		return http.StatusBadRequest
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
