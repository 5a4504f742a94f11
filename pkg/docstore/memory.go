package docstore

import (
	"context"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/JaimeStill/tour-desk/pkg/lifecycle"
	"github.com/JaimeStill/tour-desk/pkg/query"
	"github.com/google/uuid"
)

// memory keeps collections in process memory in insertion order.
type memory struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
	logger      *slog.Logger
	now         func() time.Time
}

// NewMemory creates an in-memory store. Data does not survive a restart.
func NewMemory(logger *slog.Logger) System {
	return &memory{
		collections: make(map[string]*memoryCollection),
		logger:      logger.With("system", "docstore", "driver", "memory"),
		now:         time.Now,
	}
}

func (m *memory) Collection(name string) Collection {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[name]
	if !ok {
		c = &memoryCollection{name: name, store: m}
		m.collections[name] = c
	}
	return c
}

func (m *memory) Start(lc *lifecycle.Coordinator) error {
	m.logger.Info("starting document store")
	return nil
}

type memoryCollection struct {
	name  string
	store *memory
	mu    sync.RWMutex
	docs  []Document
}

func (c *memoryCollection) List(ctx context.Context, opts ListOptions) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	docs := make([]Document, len(c.docs))
	for i, d := range c.docs {
		docs[i] = d.Clone()
	}
	c.mu.RUnlock()

	if opts.OrderBy == "" {
		return docs, nil
	}

	return query.SortBy(docs, func(d Document) any {
		return d.Get(opts.OrderBy)
	}, opts.Descending), nil
}

func (c *memoryCollection) Get(ctx context.Context, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.index(id)
	if i < 0 {
		return Document{}, ErrNotFound
	}
	return c.docs[i].Clone(), nil
}

func (c *memoryCollection) Add(ctx context.Context, fields map[string]any) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	now := c.store.now().UTC()
	doc := Document{
		ID:        uuid.NewString(),
		Fields:    maps.Clone(fields),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if doc.Fields == nil {
		doc.Fields = map[string]any{}
	}

	c.mu.Lock()
	c.docs = append(c.docs, doc)
	c.mu.Unlock()

	return doc.Clone(), nil
}

func (c *memoryCollection) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return ErrNotFound
	}

	doc := c.docs[i].Clone()
	maps.Copy(doc.Fields, fields)
	doc.UpdatedAt = c.store.now().UTC()
	c.docs[i] = doc
	return nil
}

func (c *memoryCollection) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return ErrNotFound
	}
	c.docs = append(c.docs[:i], c.docs[i+1:]...)
	return nil
}

func (c *memoryCollection) index(id string) int {
	for i, d := range c.docs {
		if d.ID == id {
			return i
		}
	}
	return -1
}
