// Package screens holds the per-screen state objects of the dashboard.
//
// A Screen is mounted for one resource kind and owns its listed result, its
// view projection, its form session and its delete gate. Screens share no
// mutable state; each is created on mount and dropped on unmount.
package screens

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/JaimeStill/tour-desk/internal/confirm"
	"github.com/JaimeStill/tour-desk/internal/form"
	"github.com/JaimeStill/tour-desk/internal/resource"
	"github.com/JaimeStill/tour-desk/internal/view"
	"github.com/JaimeStill/tour-desk/pkg/docstore"
	"github.com/JaimeStill/tour-desk/pkg/query"
)

// Options configure the view of every mounted screen.
type Options struct {
	PageSize int
	Location *time.Location

	// Now drives the day filters and the registry's idle clock.
	Now func() time.Time
}

// State is what a client renders for a screen.
type State struct {
	ID      string              `json:"id"`
	Kind    string              `json:"kind"`
	Label   string              `json:"label"`
	Fields  []resource.Field    `json:"fields"`
	Loading bool                `json:"loading"`
	Busy    string              `json:"busy,omitempty"`
	Error   string              `json:"error,omitempty"`
	View    view.State          `json:"view"`
	Rows    []docstore.Document `json:"rows"`
	Form    form.State          `json:"form"`
	Delete  confirm.State       `json:"delete"`

	CanRefresh bool `json:"canRefresh"`
	CanCreate  bool `json:"canCreate"`
	CanEdit    bool `json:"canEdit"`
	CanSubmit  bool `json:"canSubmit"`
	CanCancel  bool `json:"canCancel"`
	CanConfirm bool `json:"canConfirm"`
}

// Screen is the state object of one mounted resource screen.
type Screen struct {
	id     string
	ctrl   *resource.Controller
	view   *view.Model
	form   *form.Session
	gate   *confirm.Gate
	logger *slog.Logger

	// busy names the remote operation in flight. List, save and delete
	// calls are issued one at a time per screen.
	mu   sync.Mutex
	busy string
	err  error

	used atomic.Int64
}

func newScreen(id string, ctrl *resource.Controller, opts Options, logger *slog.Logger) *Screen {
	kind := ctrl.Kind()
	return &Screen{
		id:   id,
		ctrl: ctrl,
		view: view.New(view.Options{
			DayField:    kind.DayField,
			DefaultSort: kind.DefaultSort,
			PageSize:    opts.PageSize,
			Location:    opts.Location,
			Now:         opts.Now,
		}),
		form:   form.New(kind),
		gate:   confirm.New(kind.TitleField),
		logger: logger.With("screen", id, "kind", kind.Name),
	}
}

func (s *Screen) ID() string {
	return s.id
}

func (s *Screen) Kind() resource.Kind {
	return s.ctrl.Kind()
}

// Refresh re-lists the collection. The previous rows stay visible if the
// list fails.
func (s *Screen) Refresh(ctx context.Context) error {
	if err := s.begin(opRefresh); err != nil {
		return err
	}
	defer s.end()
	return s.reload(ctx)
}

// Sort toggles the direction when field is already selected.
func (s *Screen) Sort(field string) query.SortField {
	return s.view.SortBy(field)
}

func (s *Screen) Page(index, size int) {
	s.view.Page(index, size)
}

func (s *Screen) Filter(q view.Quick) error {
	if err := s.view.Filter(q); err != nil {
		return fmt.Errorf("%w: %v", resource.ErrValidation, err)
	}
	return nil
}

// OpenForm opens the create form when id is empty and the edit form for
// document id otherwise.
func (s *Screen) OpenForm(ctx context.Context, id string) error {
	kind := s.Kind()
	if kind.ReadOnly {
		return resource.ErrReadOnly
	}

	if id == "" {
		if !s.ctrl.CanCreate(s.view.Items()) {
			return resource.ErrSingleton
		}
		return s.form.Open(nil)
	}

	if err := s.begin(opOpen); err != nil {
		return err
	}
	defer s.end()

	doc, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.form.Open(&doc)
}

func (s *Screen) SetFields(values map[string]any) error {
	return s.form.Set(values)
}

func (s *Screen) Attach(file resource.Upload) error {
	return s.form.Attach(file)
}

// Submit saves the open form and re-lists on success.
func (s *Screen) Submit(ctx context.Context) (docstore.Document, error) {
	if err := s.begin(opSubmit); err != nil {
		return docstore.Document{}, err
	}
	defer s.end()

	doc, err := s.form.Submit(ctx, s.ctrl)
	if err != nil {
		return docstore.Document{}, err
	}
	s.refreshAfterMutation(ctx)
	return doc, nil
}

func (s *Screen) CancelForm() error {
	return s.form.Cancel()
}

// ArmDelete selects document id as the delete target.
func (s *Screen) ArmDelete(ctx context.Context, id string) error {
	if s.Kind().ReadOnly {
		return resource.ErrReadOnly
	}

	if err := s.begin(opArm); err != nil {
		return err
	}
	defer s.end()

	doc, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.gate.Arm(doc)
}

// ConfirmDelete runs the delete cascade on the armed target and re-lists on
// success.
func (s *Screen) ConfirmDelete(ctx context.Context) error {
	if err := s.begin(opDelete); err != nil {
		return err
	}
	defer s.end()

	if err := s.gate.Confirm(ctx, s.ctrl); err != nil {
		return err
	}
	s.refreshAfterMutation(ctx)
	return nil
}

func (s *Screen) CancelDelete() error {
	return s.gate.Cancel()
}

func (s *Screen) State() State {
	kind := s.Kind()

	s.mu.Lock()
	busy, err := s.busy, s.err
	s.mu.Unlock()
	idle := busy == ""

	items := s.view.Items()
	fs := s.form.State()
	ds := s.gate.State()

	st := State{
		ID:      s.id,
		Kind:    kind.Name,
		Label:   kind.Label,
		Fields:  kind.Fields,
		Loading: busy == opRefresh,
		Busy:    busy,
		View:    s.view.State(),
		Rows:    s.view.Rows(),
		Form:    fs,
		Delete:  ds,

		CanRefresh: idle,
		CanCreate:  idle && s.ctrl.CanCreate(items) && fs.Phase == form.Closed,
		CanEdit:    idle && !kind.ReadOnly && fs.Phase == form.Closed,
		CanSubmit:  idle && fs.CanSubmit,
		CanCancel:  fs.CanCancel,
		CanConfirm: idle && ds.CanConfirm,
	}
	if err != nil {
		st.Error = err.Error()
	}
	return st
}

// find prefers the listed copy of a document and falls back to the store.
func (s *Screen) find(ctx context.Context, id string) (docstore.Document, error) {
	items := s.view.Items()
	if i := slices.IndexFunc(items, func(d docstore.Document) bool { return d.ID == id }); i >= 0 {
		return items[i].Clone(), nil
	}
	return s.ctrl.Get(ctx, id)
}

func (s *Screen) touch(t time.Time) {
	s.used.Store(t.UnixNano())
}

func (s *Screen) lastUsed() time.Time {
	return time.Unix(0, s.used.Load())
}

// idle reports whether no guarded operation is in flight and no form
// submission is running.
func (s *Screen) idle() bool {
	s.mu.Lock()
	busy := s.busy
	s.mu.Unlock()
	return busy == "" && s.form.State().Phase != form.Submitting
}

// Operations tracked by the screen's in-flight guard.
const (
	opRefresh = "refresh"
	opOpen    = "open"
	opSubmit  = "submit"
	opArm     = "arm"
	opDelete  = "delete"
)

func (s *Screen) begin(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy != "" {
		return resource.ErrBusy
	}
	s.busy = op
	return nil
}

func (s *Screen) end() {
	s.mu.Lock()
	s.busy = ""
	s.mu.Unlock()
}

// reload lists the collection. Callers hold the in-flight guard.
func (s *Screen) reload(ctx context.Context) error {
	docs, err := s.ctrl.List(ctx)

	s.mu.Lock()
	s.err = err
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("refresh failed", "error", err)
		return err
	}
	s.view.SetItems(docs)
	return nil
}

// refreshAfterMutation re-lists under the guard the mutation already holds.
func (s *Screen) refreshAfterMutation(ctx context.Context) {
	if err := s.reload(ctx); err != nil {
		s.logger.Warn("list refresh after mutation failed", "error", err)
	}
}
