package resource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"github.com/JaimeStill/tour-desk/pkg/docstore"
)

// Recorder observes the outcome of controller operations.
type Recorder interface {
	Operation(kind, operation string, err error)
}

// Controller composes a repository and the attachment manager into the
// list, save and delete-cascade operations every screen uses.
type Controller struct {
	repo     *Repository
	files    *Attachments
	recorder Recorder
	logger   *slog.Logger
}

// NewController creates a controller. files is required for kinds with an
// attachment; recorder may be nil.
func NewController(repo *Repository, files *Attachments, recorder Recorder, logger *slog.Logger) *Controller {
	return &Controller{
		repo:     repo,
		files:    files,
		recorder: recorder,
		logger:   logger.With("system", "controller", "kind", repo.Kind().Name),
	}
}

func (c *Controller) Kind() Kind {
	return c.repo.Kind()
}

func (c *Controller) List(ctx context.Context) (docs []docstore.Document, err error) {
	defer c.record("list", &err)
	return c.repo.List(ctx)
}

func (c *Controller) Get(ctx context.Context, id string) (doc docstore.Document, err error) {
	defer c.record("get", &err)
	return c.repo.Get(ctx, id)
}

// CanCreate reports whether the create affordance is available given the
// currently listed documents.
func (c *Controller) CanCreate(docs []docstore.Document) bool {
	kind := c.Kind()
	if kind.ReadOnly {
		return false
	}
	return !kind.Singleton || len(docs) == 0
}

// Save creates a document when id is empty and merges fields into document
// id otherwise. A chosen file is uploaded first and its URL written into the
// attachment field; the document write is only issued once the upload has
// produced a URL. If the write then fails the fresh upload is removed.
func (c *Controller) Save(ctx context.Context, id string, fields map[string]any, file *Upload) (doc docstore.Document, err error) {
	op := "update"
	if id == "" {
		op = "create"
	}
	defer c.record(op, &err)

	kind := c.Kind()
	if kind.ReadOnly {
		return docstore.Document{}, ErrReadOnly
	}

	fields = maps.Clone(fields)
	if fields == nil {
		fields = map[string]any{}
	}

	var previous docstore.Document
	if id == "" {
		if kind.Singleton {
			existing, err := c.repo.List(ctx)
			if err != nil {
				return docstore.Document{}, err
			}
			if len(existing) > 0 {
				return docstore.Document{}, ErrSingleton
			}
		}
	} else {
		previous, err = c.repo.Get(ctx, id)
		if err != nil {
			return docstore.Document{}, err
		}
	}

	var uploaded string
	if file != nil {
		if kind.Attachment == nil || c.files == nil {
			return docstore.Document{}, fmt.Errorf("%w: %s does not accept attachments", ErrValidation, kind.Name)
		}

		uploaded, err = c.files.Upload(ctx, kind.Attachment.Prefix, *file)
		if err != nil {
			return docstore.Document{}, err
		}
		fields[kind.Attachment.Field] = uploaded
	}

	if id == "" {
		doc, err = c.repo.Create(ctx, fields)
	} else if err = c.repo.Update(ctx, id, fields); err == nil {
		doc, err = c.repo.Get(ctx, id)
	}

	if err != nil {
		if uploaded != "" {
			c.discard(ctx, uploaded, "rollback")
		}
		return docstore.Document{}, err
	}

	if id != "" && kind.Attachment != nil {
		old := previous.String(kind.Attachment.Field)
		if old != "" && old != doc.String(kind.Attachment.Field) {
			c.discard(ctx, old, "replaced")
		}
	}

	return doc, nil
}

// Delete loads document id and runs the delete cascade on it.
func (c *Controller) Delete(ctx context.Context, id string) error {
	doc, err := c.repo.Get(ctx, id)
	if err != nil {
		c.record("delete", &err)
		return err
	}
	return c.DeleteDocument(ctx, doc)
}

// DeleteDocument removes the document's attachment, then the document. An
// attachment that is already gone does not block the delete; any other
// removal failure aborts it.
func (c *Controller) DeleteDocument(ctx context.Context, doc docstore.Document) (err error) {
	defer c.record("delete", &err)

	kind := c.Kind()
	if kind.ReadOnly {
		return ErrReadOnly
	}

	if kind.Attachment != nil && c.files != nil {
		if url := doc.String(kind.Attachment.Field); url != "" {
			if err := c.files.Remove(ctx, url); err != nil {
				if !errors.Is(err, ErrNotFound) {
					return err
				}
				c.logger.Warn("attachment already removed", "id", doc.ID, "url", url)
			}
		}
	}

	return c.repo.Delete(ctx, doc.ID)
}

// discard removes an orphaned upload. Failures are logged only.
func (c *Controller) discard(ctx context.Context, url, reason string) {
	if err := c.files.Remove(ctx, url); err != nil && !errors.Is(err, ErrNotFound) {
		c.logger.Error("orphaned attachment cleanup failed", "url", url, "reason", reason, "error", err)
	}
}

func (c *Controller) record(op string, err *error) {
	if c.recorder != nil {
		c.recorder.Operation(c.Kind().Name, op, *err)
	}
}
