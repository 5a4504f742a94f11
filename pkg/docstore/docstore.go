// Package docstore defines the document store contract consumed by resource
// repositories: named collections of schemaless documents with list, get,
// add, merge-update and delete. Drivers live in subpackages; an in-memory
// driver is provided here for development and tests.
package docstore

import (
	"context"
	"encoding/json"
	"maps"
	"time"

	"github.com/JaimeStill/tour-desk/pkg/lifecycle"
)

// Document is a schemaless record identified by an opaque id.
type Document struct {
	ID        string
	Fields    map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Get returns the named field value, or nil.
func (d Document) Get(field string) any {
	if d.Fields == nil {
		return nil
	}
	return d.Fields[field]
}

// String returns the named field when it holds a string.
func (d Document) String(field string) string {
	s, _ := d.Get(field).(string)
	return s
}

// Clone returns a copy whose field map can be modified independently.
func (d Document) Clone() Document {
	d.Fields = maps.Clone(d.Fields)
	if d.Fields == nil {
		d.Fields = map[string]any{}
	}
	return d
}

// MarshalJSON flattens the document into its fields plus "id".
func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Fields)+1)
	maps.Copy(out, d.Fields)
	out["id"] = d.ID
	return json.Marshal(out)
}

// UnmarshalJSON reads a flattened document; "id" becomes the identity and
// every other key a field.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if id, ok := raw["id"].(string); ok {
		d.ID = id
	}
	delete(raw, "id")
	d.Fields = raw
	return nil
}

// ListOptions selects a store-side ordering. An empty OrderBy yields the
// store's native order.
type ListOptions struct {
	OrderBy    string
	Descending bool
}

// Collection is one named partition of documents.
type Collection interface {
	// List returns every document in the collection.
	List(ctx context.Context, opts ListOptions) ([]Document, error)

	// Get returns a single document or ErrNotFound.
	Get(ctx context.Context, id string) (Document, error)

	// Add stores fields under a new store-assigned identity.
	Add(ctx context.Context, fields map[string]any) (Document, error)

	// Update merges fields into an existing document. Fields not supplied keep
	// their values. Returns ErrNotFound when id does not exist.
	Update(ctx context.Context, id string, fields map[string]any) error

	// Delete removes a document. Returns ErrNotFound when id does not exist.
	Delete(ctx context.Context, id string) error
}

// System provides collections and participates in the service lifecycle.
type System interface {
	Collection(name string) Collection
	Start(lc *lifecycle.Coordinator) error
}
