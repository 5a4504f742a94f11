package screens

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/tour-desk/internal/resource"
	"github.com/JaimeStill/tour-desk/internal/view"
	"github.com/JaimeStill/tour-desk/pkg/handlers"
	"github.com/JaimeStill/tour-desk/pkg/routes"
)

const bodyLimit = 1 << 20

type mountRequest struct {
	Kind string `json:"kind"`
}

type sortRequest struct {
	Field string `json:"field"`
}

type pageRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

type filterRequest struct {
	Filter string `json:"filter"`
}

type targetRequest struct {
	ID string `json:"id"`
}

// Handler drives mounted screens over HTTP. Every action responds with the
// screen's resulting state.
type Handler struct {
	registry      *Registry
	maxUploadSize int64
	logger        *slog.Logger
}

func NewHandler(registry *Registry, maxUploadSize int64, logger *slog.Logger) *Handler {
	return &Handler{
		registry:      registry,
		maxUploadSize: maxUploadSize,
		logger:        logger.With("handler", "screens"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/screens",
		Tags:        []string{"Screens"},
		Description: "Per-screen list, form, and delete-confirmation state",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Mount, OpenAPI: Spec.Mount},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Unmount, OpenAPI: Spec.Unmount},
			{Method: "POST", Pattern: "/{id}/refresh", Handler: h.Refresh, OpenAPI: Spec.Refresh},
			{Method: "POST", Pattern: "/{id}/sort", Handler: h.Sort, OpenAPI: Spec.Sort},
			{Method: "POST", Pattern: "/{id}/page", Handler: h.Page, OpenAPI: Spec.Page},
			{Method: "POST", Pattern: "/{id}/filter", Handler: h.Filter, OpenAPI: Spec.Filter},
		},
		Children: []routes.Group{
			{
				Prefix: "/{id}/form",
				Tags:   []string{"Screens"},
				Routes: []routes.Route{
					{Method: "POST", Pattern: "/open", Handler: h.OpenForm, OpenAPI: Spec.OpenForm},
					{Method: "POST", Pattern: "/fields", Handler: h.SetFields, OpenAPI: Spec.SetFields},
					{Method: "POST", Pattern: "/attach", Handler: h.Attach, OpenAPI: Spec.Attach},
					{Method: "POST", Pattern: "/submit", Handler: h.Submit, OpenAPI: Spec.Submit},
					{Method: "POST", Pattern: "/cancel", Handler: h.CancelForm, OpenAPI: Spec.CancelForm},
				},
			},
			{
				Prefix: "/{id}/delete",
				Tags:   []string{"Screens"},
				Routes: []routes.Route{
					{Method: "POST", Pattern: "/arm", Handler: h.ArmDelete, OpenAPI: Spec.ArmDelete},
					{Method: "POST", Pattern: "/confirm", Handler: h.ConfirmDelete, OpenAPI: Spec.ConfirmDelete},
					{Method: "POST", Pattern: "/cancel", Handler: h.CancelDelete, OpenAPI: Spec.CancelDelete},
				},
			},
		},
	}
}

func (h *Handler) Mount(w http.ResponseWriter, r *http.Request) {
	var req mountRequest
	if err := handlers.DecodeJSON(r, bodyLimit, &req); err != nil {
		h.fail(w, fmt.Errorf("%w: %v", resource.ErrValidation, err))
		return
	}

	s, err := h.registry.Mount(r.Context(), req.Kind)
	if err != nil {
		h.fail(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, s.State())
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(s *Screen) error { return nil })
}

func (h *Handler) Unmount(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.Unmount(r.PathValue("id")); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(s *Screen) error { return s.Refresh(r.Context()) })
}

func (h *Handler) Sort(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(s *Screen) error {
		var req sortRequest
		if err := decode(r, &req); err != nil {
			return err
		}
		if req.Field == "" {
			return fmt.Errorf("%w: field is required", resource.ErrValidation)
		}
		s.Sort(req.Field)
		return nil
	})
}

func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(s *Screen) error {
		var req pageRequest
		if err := decode(r, &req); err != nil {
			return err
		}
		s.Page(req.Page, req.PageSize)
		return nil
	})
}

func (h *Handler) Filter(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(s *Screen) error {
		var req filterRequest
		if err := decode(r, &req); err != nil {
			return err
		}
		q, err := view.ParseQuick(req.Filter)
		if err != nil {
			return fmt.Errorf("%w: %v", resource.ErrValidation, err)
		}
		return s.Filter(q)
	})
}

// OpenForm opens the edit form for {"id": ...} and the create form for an
// empty body or id.
func (h *Handler) OpenForm(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(s *Screen) error {
		var req targetRequest
		if err := handlers.DecodeJSON(r, bodyLimit, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
			return fmt.Errorf("%w: %v", resource.ErrValidation, err)
		}
		return s.OpenForm(r.Context(), req.ID)
	})
}

func (h *Handler) SetFields(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(s *Screen) error {
		var fields map[string]any
		if err := decode(r, &fields); err != nil {
			return err
		}
		return s.SetFields(fields)
	})
}

func (h *Handler) Attach(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(s *Screen) error {
		_, file, err := resource.ReadMultipart(r, h.maxUploadSize)
		if err != nil {
			return err
		}
		if file == nil {
			return fmt.Errorf("%w: file part is required", resource.ErrValidation)
		}
		return s.Attach(*file)
	})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(s *Screen) error {
		_, err := s.Submit(r.Context())
		return err
	})
}

func (h *Handler) CancelForm(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(s *Screen) error { return s.CancelForm() })
}

func (h *Handler) ArmDelete(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(s *Screen) error {
		var req targetRequest
		if err := decode(r, &req); err != nil {
			return err
		}
		if req.ID == "" {
			return fmt.Errorf("%w: id is required", resource.ErrValidation)
		}
		return s.ArmDelete(r.Context(), req.ID)
	})
}

func (h *Handler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(s *Screen) error { return s.ConfirmDelete(r.Context()) })
}

func (h *Handler) CancelDelete(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(s *Screen) error { return s.CancelDelete() })
}

// with resolves the screen, applies action and responds with the screen
// state, or with the action's error.
func (h *Handler) with(w http.ResponseWriter, r *http.Request, action func(*Screen) error) {
	s, err := h.registry.Get(r.PathValue("id"))
	if err != nil {
		h.fail(w, err)
		return
	}

	if err := action(s); err != nil {
		h.fail(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, s.State())
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
}

func decode(r *http.Request, v any) error {
	if err := handlers.DecodeJSON(r, bodyLimit, v); err != nil {
		return fmt.Errorf("%w: %v", resource.ErrValidation, err)
	}
	return nil
}
