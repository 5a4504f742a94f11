// Package form implements the create/edit dialog session of a resource
// screen.
//
// A session moves Closed -> Open(create|edit) -> Submitting and then back to
// Closed on success, or to Open with the error retained on failure. Field
// values survive a failed submit. Submit and Cancel are refused while a
// submit or its upload is in flight.
package form

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/JaimeStill/tour-desk/internal/resource"
	"github.com/JaimeStill/tour-desk/pkg/docstore"
)

// ErrNotOpen is returned when an operation needs an open form.
var ErrNotOpen = errors.New("form is not open")

// Phase is the session's position in the edit lifecycle.
type Phase string

const (
	Closed     Phase = "closed"
	Open       Phase = "open"
	Submitting Phase = "submitting"
)

// Mode distinguishes creating a document from editing one.
type Mode string

const (
	Create Mode = "create"
	Edit   Mode = "edit"
)

// Saver persists a submitted form. *resource.Controller satisfies it.
type Saver interface {
	Save(ctx context.Context, id string, fields map[string]any, file *resource.Upload) (docstore.Document, error)
}

// State is a snapshot of the session.
type State struct {
	Phase     Phase          `json:"phase"`
	Mode      Mode           `json:"mode,omitempty"`
	ID        string         `json:"id,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
	File      string         `json:"file,omitempty"`
	Uploading bool           `json:"uploading"`
	Error     string         `json:"error,omitempty"`
	CanSubmit bool           `json:"canSubmit"`
	CanCancel bool           `json:"canCancel"`
}

// Session is one screen's form dialog.
type Session struct {
	mu        sync.Mutex
	kind      resource.Kind
	phase     Phase
	mode      Mode
	id        string
	fields    map[string]any
	file      *resource.Upload
	uploading bool
	err       error
}

// New creates a closed session for kind.
func New(kind resource.Kind) *Session {
	return &Session{kind: kind, phase: Closed}
}

// Open enters create mode when doc is nil and edit mode prefilled from doc
// otherwise. Opening discards any unsaved edits; prefill depends only on doc,
// so opening the same document twice yields identical values.
func (s *Session) Open(doc *docstore.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy() {
		return resource.ErrBusy
	}

	s.fields = s.kind.Blank()
	s.file = nil
	s.err = nil
	s.phase = Open

	if doc == nil {
		s.mode = Create
		s.id = ""
		return nil
	}

	s.mode = Edit
	s.id = doc.ID
	for _, name := range s.kind.FieldNames() {
		if v := doc.Get(name); v != nil {
			s.fields[name] = v
		}
	}
	return nil
}

// Set merges values into the open form. Field checks happen on submit.
func (s *Session) Set(values map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy() {
		return resource.ErrBusy
	}
	if s.phase != Open {
		return ErrNotOpen
	}

	maps.Copy(s.fields, values)
	return nil
}

// Attach selects a file for the kind's attachment field. It is uploaded
// when the form is submitted.
func (s *Session) Attach(file resource.Upload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy() {
		return resource.ErrBusy
	}
	if s.phase != Open {
		return ErrNotOpen
	}
	if s.kind.Attachment == nil {
		return fmt.Errorf("%w: %s does not accept attachments", resource.ErrValidation, s.kind.Name)
	}

	s.file = &file
	return nil
}

// Submit saves the form through saver. Success closes the session and
// returns the written document. Failure reopens it with fields intact and
// the error recorded.
func (s *Session) Submit(ctx context.Context, saver Saver) (docstore.Document, error) {
	s.mu.Lock()
	if s.busy() {
		s.mu.Unlock()
		return docstore.Document{}, resource.ErrBusy
	}
	if s.phase != Open {
		s.mu.Unlock()
		return docstore.Document{}, ErrNotOpen
	}

	s.phase = Submitting
	s.uploading = s.file != nil
	s.err = nil
	id, fields, file := s.id, maps.Clone(s.fields), s.file
	s.mu.Unlock()

	doc, err := saver.Save(ctx, id, fields, file)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.uploading = false
	if err != nil {
		s.phase = Open
		s.err = err
		return docstore.Document{}, err
	}

	s.reset()
	return doc, nil
}

// Cancel discards all edits and closes the form. Cancelling a closed form
// is a no-op.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy() {
		return resource.ErrBusy
	}
	s.reset()
	return nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Phase:     s.phase,
		Uploading: s.uploading,
	}
	if s.phase == Closed {
		return st
	}

	st.Mode = s.mode
	st.ID = s.id
	st.Fields = maps.Clone(s.fields)
	if s.file != nil {
		st.File = s.file.Name
	}
	if s.err != nil {
		st.Error = s.err.Error()
	}
	st.CanSubmit = s.phase == Open && !s.uploading
	st.CanCancel = st.CanSubmit
	return st
}

func (s *Session) busy() bool {
	return s.phase == Submitting || s.uploading
}

func (s *Session) reset() {
	s.phase = Closed
	s.mode = ""
	s.id = ""
	s.fields = nil
	s.file = nil
	s.err = nil
}
