package resource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/tour-desk/pkg/docstore"
)

// Repository validates and persists documents of one kind. It holds no
// cache: every List reads the store.
type Repository struct {
	kind   Kind
	col    docstore.Collection
	norm   *normalizer
	logger *slog.Logger
}

// NewRepository binds kind to its collection in store.
func NewRepository(kind Kind, store docstore.System, logger *slog.Logger) *Repository {
	return &Repository{
		kind:   kind,
		col:    store.Collection(kind.Collection),
		norm:   newNormalizer(),
		logger: logger.With("system", "resource", "kind", kind.Name),
	}
}

// Kind returns the bound kind.
func (r *Repository) Kind() Kind {
	return r.kind
}

// List returns every document, in the kind's store-side ordering when one
// is declared, otherwise in store-native order.
func (r *Repository) List(ctx context.Context) ([]docstore.Document, error) {
	docs, err := r.col.List(ctx, docstore.ListOptions{
		OrderBy:    r.kind.OrderBy,
		Descending: r.kind.Descending,
	})
	if err != nil {
		return nil, r.mapError("list", err)
	}
	return docs, nil
}

func (r *Repository) Get(ctx context.Context, id string) (docstore.Document, error) {
	doc, err := r.col.Get(ctx, id)
	if err != nil {
		return docstore.Document{}, r.mapError("get", err)
	}
	return doc, nil
}

// Create validates the full field set and adds a document.
func (r *Repository) Create(ctx context.Context, fields map[string]any) (docstore.Document, error) {
	normalized, err := r.norm.normalize(r.kind, fields, false)
	if err != nil {
		return docstore.Document{}, err
	}

	doc, err := r.col.Add(ctx, normalized)
	if err != nil {
		return docstore.Document{}, r.mapError("create", err)
	}

	r.logger.Info("document created", "id", doc.ID)
	return doc, nil
}

// Update validates the supplied fields and merges them into document id.
func (r *Repository) Update(ctx context.Context, id string, fields map[string]any) error {
	normalized, err := r.norm.normalize(r.kind, fields, true)
	if err != nil {
		return err
	}

	if err := r.col.Update(ctx, id, normalized); err != nil {
		return r.mapError("update", err)
	}

	r.logger.Info("document updated", "id", id)
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.col.Delete(ctx, id); err != nil {
		return r.mapError("delete", err)
	}

	r.logger.Info("document deleted", "id", id)
	return nil
}

func (r *Repository) mapError(op string, err error) error {
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, docstore.ErrInvalidField):
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	r.logger.Error("document store call failed", "operation", op, "error", err)
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
