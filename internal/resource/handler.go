package resource

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/JaimeStill/tour-desk/internal/view"
	"github.com/JaimeStill/tour-desk/pkg/handlers"
	"github.com/JaimeStill/tour-desk/pkg/pagination"
	"github.com/JaimeStill/tour-desk/pkg/routes"
)

// HandlerConfig carries request limits and list projection settings.
type HandlerConfig struct {
	Pagination    pagination.Config
	Location      *time.Location
	Now           func() time.Time
	MaxUploadSize int64
}

// Handler provides REST endpoints for one kind.
type Handler struct {
	ctrl   *Controller
	cfg    HandlerConfig
	logger *slog.Logger
}

// NewHandler creates a REST handler for ctrl.
func NewHandler(ctrl *Controller, cfg HandlerConfig, logger *slog.Logger) *Handler {
	return &Handler{
		ctrl:   ctrl,
		cfg:    cfg,
		logger: logger.With("handler", ctrl.Kind().Name),
	}
}

// Routes returns the kind's endpoint group. Read-only kinds expose list and
// find only.
func (h *Handler) Routes() routes.Group {
	kind := h.ctrl.Kind()
	ops := operations(kind)

	group := routes.Group{
		Prefix:      "/" + kind.Name,
		Tags:        []string{kind.Label},
		Description: kind.Label + " management",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: ops.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: ops.Find},
		},
	}

	if !kind.ReadOnly {
		group.Routes = append(group.Routes,
			routes.Route{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: ops.Create},
			routes.Route{Method: "PUT", Pattern: "/{id}", Handler: h.Update, OpenAPI: ops.Update},
			routes.Route{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: ops.Delete},
		)
	}

	return group
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.cfg.Pagination)

	quick, err := view.ParseQuick(page.Filter)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	docs, err := h.ctrl.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	kind := h.ctrl.Kind()
	m := view.New(view.Options{
		DayField:    kind.DayField,
		DefaultSort: kind.DefaultSort,
		PageSize:    page.PageSize,
		Location:    h.cfg.Location,
		Now:         h.cfg.Now,
	})
	m.SetItems(docs)

	if len(page.Sort) > 0 {
		m.SetSort(page.Sort[0])
	}
	if err := m.Filter(quick); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	m.Page(page.Page, page.PageSize)

	handlers.RespondJSON(w, http.StatusOK, m.Result())
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	doc, err := h.ctrl.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, doc)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	fields, file, err := h.readInput(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	doc, err := h.ctrl.Save(r.Context(), "", fields, file)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, doc)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	fields, file, err := h.readInput(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	doc, err := h.ctrl.Save(r.Context(), r.PathValue("id"), fields, file)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, doc)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.Delete(r.Context(), r.PathValue("id")); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// readInput accepts a JSON object body, or multipart/form-data whose
// "fields" part holds the JSON object (or whose plain values are the fields)
// and whose optional "file" part is the attachment.
func (h *Handler) readInput(r *http.Request) (map[string]any, *Upload, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		var fields map[string]any
		if err := handlers.DecodeJSON(r, h.cfg.MaxUploadSize, &fields); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return fields, nil, nil
	}

	return ReadMultipart(r, h.cfg.MaxUploadSize)
}

// ReadMultipart parses a multipart form into fields and an optional upload.
func ReadMultipart(r *http.Request, maxUploadSize int64) (map[string]any, *Upload, error) {
	if maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(nil, r.Body, maxUploadSize)
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, ErrFileTooLarge
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fields := map[string]any{}
	for name, values := range r.MultipartForm.Value {
		if len(values) == 0 {
			continue
		}
		if name == "fields" {
			if err := json.Unmarshal([]byte(values[0]), &fields); err != nil {
				return nil, nil, fmt.Errorf("%w: fields: %v", ErrValidation, err)
			}
			continue
		}
		fields[name] = values[0]
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return fields, nil, nil
		}
		return nil, nil, fmt.Errorf("%w: file: %v", ErrValidation, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: file: %v", ErrValidation, err)
	}

	return fields, &Upload{Name: header.Filename, Data: data}, nil
}
