package screens

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/tour-desk/internal/confirm"
	"github.com/JaimeStill/tour-desk/internal/form"
	"github.com/JaimeStill/tour-desk/internal/resource"
	"github.com/JaimeStill/tour-desk/pkg/lifecycle"
)

var (
	// ErrScreenNotFound is returned for an id that is not mounted.
	ErrScreenNotFound = errors.New("screen not found")

	// ErrScreenLimit is returned when every mounted screen is busy and the
	// registry is full.
	ErrScreenLimit = errors.New("too many mounted screens")
)

// MapHTTPStatus extends resource.MapHTTPStatus with screen state errors.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrScreenNotFound):
		return http.StatusNotFound
	case errors.Is(err, form.ErrNotOpen), errors.Is(err, confirm.ErrNotArmed):
		return http.StatusConflict
	case errors.Is(err, ErrScreenLimit):
		return http.StatusTooManyRequests
	}
	return resource.MapHTTPStatus(err)
}

// Limits bound the screens a registry keeps mounted. Zero values disable
// the corresponding bound.
type Limits struct {
	MaxScreens int
	IdleTTL    time.Duration
}

// Registry tracks mounted screens.
type Registry struct {
	mu          sync.Mutex
	screens     map[string]*Screen
	controllers map[string]*resource.Controller
	opts        Options
	limits      Limits
	now         func() time.Time
	logger      *slog.Logger
}

// NewRegistry creates an unbounded registry able to mount a screen for each
// controller's kind.
func NewRegistry(controllers []*resource.Controller, opts Options, logger *slog.Logger) *Registry {
	return NewBoundedRegistry(controllers, opts, Limits{}, logger)
}

// NewBoundedRegistry creates a registry that evicts screens past limits.
func NewBoundedRegistry(controllers []*resource.Controller, opts Options, limits Limits, logger *slog.Logger) *Registry {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	byKind := make(map[string]*resource.Controller, len(controllers))
	for _, c := range controllers {
		byKind[c.Kind().Name] = c
	}

	return &Registry{
		screens:     make(map[string]*Screen),
		controllers: byKind,
		opts:        opts,
		limits:      limits,
		now:         now,
		logger:      logger.With("system", "screens"),
	}
}

// Start runs the idle sweep until the coordinator shuts down.
func (r *Registry) Start(lc *lifecycle.Coordinator) {
	if r.limits.IdleTTL <= 0 {
		return
	}

	interval := max(r.limits.IdleTTL/4, time.Second)
	lc.OnShutdown(func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-lc.Context().Done():
				return
			case <-ticker.C:
				r.Sweep()
			}
		}
	})
}

// Sweep unmounts idle screens untouched for longer than the TTL and
// reports how many were dropped.
func (r *Registry) Sweep() int {
	if r.limits.IdleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.limits.IdleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, s := range r.screens {
		if s.idle() && s.lastUsed().Before(cutoff) {
			delete(r.screens, id)
			n++
		}
	}
	if n > 0 {
		r.logger.Info("idle screens unmounted", "count", n)
	}
	return n
}

// Mount creates a screen for kind and performs its first refresh. The screen
// stays mounted when that refresh fails; the failure is visible in its state.
func (r *Registry) Mount(ctx context.Context, kind string) (*Screen, error) {
	ctrl, ok := r.controllers[kind]
	if !ok {
		return nil, resource.ErrUnknownKind
	}

	s := newScreen(uuid.NewString(), ctrl, r.opts, r.logger)
	s.touch(r.now())

	r.mu.Lock()
	if r.limits.MaxScreens > 0 && len(r.screens) >= r.limits.MaxScreens {
		if !r.evictLocked() {
			r.mu.Unlock()
			return nil, ErrScreenLimit
		}
	}
	r.screens[s.id] = s
	r.mu.Unlock()

	r.logger.Info("screen mounted", "id", s.id, "kind", kind)
	s.Refresh(ctx)
	return s, nil
}

// Get returns the screen and marks it used.
func (r *Registry) Get(id string) (*Screen, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.screens[id]
	if !ok {
		return nil, ErrScreenNotFound
	}
	s.touch(r.now())
	return s, nil
}

// Unmount drops the screen. Operations already in flight on it still run
// to completion.
func (r *Registry) Unmount(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.screens[id]; !ok {
		return ErrScreenNotFound
	}
	delete(r.screens, id)
	r.logger.Info("screen unmounted", "id", id)
	return nil
}

// Len reports the number of mounted screens.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.screens)
}

// evictLocked drops the least recently used idle screen.
func (r *Registry) evictLocked() bool {
	var victim *Screen
	for _, s := range r.screens {
		if !s.idle() {
			continue
		}
		if victim == nil || s.lastUsed().Before(victim.lastUsed()) {
			victim = s
		}
	}
	if victim == nil {
		return false
	}

	delete(r.screens, victim.id)
	r.logger.Info("screen evicted", "id", victim.id, "kind", victim.Kind().Name)
	return true
}
