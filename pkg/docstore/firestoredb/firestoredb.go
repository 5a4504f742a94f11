// Package firestoredb maps docstore collections onto Cloud Firestore
// collections. Document ids are Firestore auto-ids.
package firestoredb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	fb "firebase.google.com/go/v4"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/JaimeStill/tour-desk/pkg/docstore"
	"github.com/JaimeStill/tour-desk/pkg/lifecycle"
)

type store struct {
	client *firestore.Client
	logger *slog.Logger
}

// New opens a Firestore client from app.
func New(ctx context.Context, app *fb.App, logger *slog.Logger) (docstore.System, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}

	return &store{
		client: client,
		logger: logger.With("system", "docstore", "driver", "firestore"),
	}, nil
}

func (s *store) Collection(name string) docstore.Collection {
	return &collection{ref: s.client.Collection(name)}
}

func (s *store) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting document store")

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := s.client.Close(); err != nil {
			s.logger.Error("firestore close failed", "error", err)
			return
		}
		s.logger.Info("firestore client closed")
	})

	return nil
}

type collection struct {
	ref *firestore.CollectionRef
}

// List reads the whole collection. Ordering by a field excludes documents
// that lack it, matching Firestore query semantics.
func (c *collection) List(ctx context.Context, opts docstore.ListOptions) ([]docstore.Document, error) {
	q := c.ref.Query
	if opts.OrderBy != "" {
		dir := firestore.Asc
		if opts.Descending {
			dir = firestore.Desc
		}
		q = q.OrderBy(opts.OrderBy, dir)
	}

	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, mapError(err)
	}

	docs := make([]docstore.Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, fromSnapshot(snap))
	}
	return docs, nil
}

func (c *collection) Get(ctx context.Context, id string) (docstore.Document, error) {
	doc, err := c.doc(id)
	if err != nil {
		return docstore.Document{}, err
	}

	snap, err := doc.Get(ctx)
	if err != nil {
		return docstore.Document{}, mapError(err)
	}
	return fromSnapshot(snap), nil
}

func (c *collection) Add(ctx context.Context, fields map[string]any) (docstore.Document, error) {
	data := maps.Clone(fields)
	if data == nil {
		data = map[string]any{}
	}

	ref, result, err := c.ref.Add(ctx, data)
	if err != nil {
		return docstore.Document{}, mapError(err)
	}

	created := time.Now().UTC()
	if result != nil {
		created = result.UpdateTime
	}

	return docstore.Document{
		ID:        ref.ID,
		Fields:    data,
		CreatedAt: created,
		UpdatedAt: created,
	}, nil
}

// Update applies a field-level merge. Firestore rejects it with NotFound
// when the document does not exist.
func (c *collection) Update(ctx context.Context, id string, fields map[string]any) error {
	doc, err := c.doc(id)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		_, err := doc.Get(ctx)
		return mapError(err)
	}

	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: v})
	}

	if _, err := doc.Update(ctx, updates); err != nil {
		return mapError(err)
	}
	return nil
}

func (c *collection) Delete(ctx context.Context, id string) error {
	doc, err := c.doc(id)
	if err != nil {
		return err
	}

	if _, err := doc.Delete(ctx, firestore.Exists); err != nil {
		return mapError(err)
	}
	return nil
}

func (c *collection) doc(id string) (*firestore.DocumentRef, error) {
	if id == "" || strings.Contains(id, "/") {
		return nil, docstore.ErrNotFound
	}
	return c.ref.Doc(id), nil
}

func fromSnapshot(snap *firestore.DocumentSnapshot) docstore.Document {
	fields := snap.Data()
	if fields == nil {
		fields = map[string]any{}
	}
	return docstore.Document{
		ID:        snap.Ref.ID,
		Fields:    fields,
		CreatedAt: snap.CreateTime,
		UpdatedAt: snap.UpdateTime,
	}
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return docstore.ErrNotFound
	case codes.Unavailable, codes.DeadlineExceeded, codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %v", docstore.ErrUnavailable, err)
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %v", docstore.ErrInvalidField, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", docstore.ErrUnavailable, err)
	}
	return err
}
