// Package confirm implements the delete-confirmation gate of a resource
// screen.
package confirm

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/JaimeStill/tour-desk/internal/resource"
	"github.com/JaimeStill/tour-desk/pkg/docstore"
)

// ErrNotArmed is returned by Confirm when no target is selected.
var ErrNotArmed = errors.New("no delete target selected")

// Deleter runs the delete cascade. *resource.Controller satisfies it.
type Deleter interface {
	DeleteDocument(ctx context.Context, doc docstore.Document) error
}

// State is a snapshot of the gate.
type State struct {
	Armed      bool   `json:"armed"`
	TargetID   string `json:"targetId,omitempty"`
	Prompt     string `json:"prompt,omitempty"`
	Deleting   bool   `json:"deleting"`
	Error      string `json:"error,omitempty"`
	CanConfirm bool   `json:"canConfirm"`
	CanCancel  bool   `json:"canCancel"`
}

// Gate holds at most one pending delete target.
type Gate struct {
	mu         sync.Mutex
	titleField string
	target     *docstore.Document
	deleting   bool
	err        error
}

// New creates a disarmed gate. titleField names the document field shown in
// the prompt.
func New(titleField string) *Gate {
	return &Gate{titleField: titleField}
}

// Arm selects doc as the delete target, replacing any previous target.
func (g *Gate) Arm(doc docstore.Document) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.deleting {
		return resource.ErrBusy
	}
	g.target = &doc
	g.err = nil
	return nil
}

// Confirm deletes the armed target through d. The gate disarms afterwards
// whatever the outcome; the delete error, if any, is returned and kept for
// State. A confirm while a delete is running is refused.
func (g *Gate) Confirm(ctx context.Context, d Deleter) error {
	g.mu.Lock()
	if g.deleting {
		g.mu.Unlock()
		return resource.ErrBusy
	}
	if g.target == nil {
		g.mu.Unlock()
		return ErrNotArmed
	}
	g.deleting = true
	doc := *g.target
	g.mu.Unlock()

	err := d.DeleteDocument(ctx, doc)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleting = false
	g.target = nil
	g.err = err
	return err
}

// Cancel disarms the gate without deleting anything.
func (g *Gate) Cancel() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.deleting {
		return resource.ErrBusy
	}
	g.target = nil
	g.err = nil
	return nil
}

func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := State{Deleting: g.deleting}
	if g.err != nil {
		st.Error = g.err.Error()
	}
	if g.target == nil {
		return st
	}

	st.Armed = true
	st.TargetID = g.target.ID
	st.Prompt = g.prompt(*g.target)
	st.CanConfirm = !g.deleting
	st.CanCancel = !g.deleting
	return st
}

func (g *Gate) prompt(doc docstore.Document) string {
	label := doc.String(g.titleField)
	if label == "" {
		label = doc.ID
	}
	return fmt.Sprintf("Delete %q? This cannot be undone.", label)
}
