package confirm_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/JaimeStill/tour-desk/internal/confirm"
	"github.com/JaimeStill/tour-desk/internal/resource"
	"github.com/JaimeStill/tour-desk/pkg/docstore"
)

type stubDeleter struct {
	mu      sync.Mutex
	deleted []string
	err     error
	started chan struct{}
	gate    chan struct{}
}

func (d *stubDeleter) DeleteDocument(ctx context.Context, doc docstore.Document) error {
	d.mu.Lock()
	d.deleted = append(d.deleted, doc.ID)
	d.mu.Unlock()
	if d.gate != nil {
		close(d.started)
		<-d.gate
	}
	return d.err
}

var cityTour = docstore.Document{ID: "svc-1", Fields: map[string]any{"title": "City Tour"}}

func TestGate_ArmShowsPrompt(t *testing.T) {
	g := confirm.New("title")

	if st := g.State(); st.Armed || st.CanConfirm {
		t.Fatalf("new gate state = %+v", st)
	}

	g.Arm(cityTour)
	st := g.State()
	if !st.Armed || st.TargetID != "svc-1" || !strings.Contains(st.Prompt, "City Tour") {
		t.Errorf("state = %+v", st)
	}
	if !st.CanConfirm || !st.CanCancel {
		t.Error("armed gate should allow confirm and cancel")
	}

	g.Arm(docstore.Document{ID: "untitled"})
	if st := g.State(); !strings.Contains(st.Prompt, "untitled") {
		t.Errorf("prompt without title = %q, want id", st.Prompt)
	}
}

func TestGate_ConfirmDisarms(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"success", nil},
		{"failure", resource.ErrRemoveFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := confirm.New("title")
			d := &stubDeleter{err: tt.err}

			g.Arm(cityTour)
			err := g.Confirm(context.Background(), d)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Confirm() error = %v, want %v", err, tt.err)
			}

			st := g.State()
			if st.Armed || st.Deleting {
				t.Errorf("state = %+v, want disarmed", st)
			}
			if (st.Error != "") != (tt.err != nil) {
				t.Errorf("Error = %q", st.Error)
			}

			if err := g.Confirm(context.Background(), d); !errors.Is(err, confirm.ErrNotArmed) {
				t.Errorf("second Confirm() error = %v, want ErrNotArmed", err)
			}
			if len(d.deleted) != 1 {
				t.Errorf("deletes = %v, want exactly one", d.deleted)
			}
		})
	}
}

func TestGate_ConfirmAtMostOnce(t *testing.T) {
	g := confirm.New("title")
	d := &stubDeleter{started: make(chan struct{}), gate: make(chan struct{})}

	g.Arm(cityTour)

	done := make(chan error, 1)
	go func() { done <- g.Confirm(context.Background(), d) }()
	<-d.started

	if st := g.State(); !st.Deleting || st.CanConfirm || st.CanCancel {
		t.Errorf("in-flight state = %+v", st)
	}
	if err := g.Confirm(context.Background(), d); !errors.Is(err, resource.ErrBusy) {
		t.Errorf("concurrent Confirm() error = %v, want ErrBusy", err)
	}
	if err := g.Cancel(); !errors.Is(err, resource.ErrBusy) {
		t.Errorf("Cancel() error = %v, want ErrBusy", err)
	}
	if err := g.Arm(cityTour); !errors.Is(err, resource.ErrBusy) {
		t.Errorf("Arm() error = %v, want ErrBusy", err)
	}

	close(d.gate)
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.deleted) != 1 {
		t.Errorf("deletes = %v, want exactly one", d.deleted)
	}
}

func TestGate_Cancel(t *testing.T) {
	g := confirm.New("title")
	d := &stubDeleter{}

	g.Arm(cityTour)
	if err := g.Cancel(); err != nil {
		t.Fatal(err)
	}
	if st := g.State(); st.Armed {
		t.Errorf("state = %+v", st)
	}
	if err := g.Confirm(context.Background(), d); !errors.Is(err, confirm.ErrNotArmed) {
		t.Errorf("Confirm() after cancel error = %v", err)
	}
	if len(d.deleted) != 0 {
		t.Error("cancel must not delete")
	}
}
