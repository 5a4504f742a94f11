package resource_test

import (
	"context"
	"strings"
	"sync"

	"github.com/JaimeStill/tour-desk/pkg/blobstore"
	"github.com/JaimeStill/tour-desk/pkg/docstore"
	"github.com/JaimeStill/tour-desk/pkg/lifecycle"
	"github.com/JaimeStill/tour-desk/pkg/logging"
)

// events records remote calls across both stores in call order.
type events struct {
	mu  sync.Mutex
	log []string
}

func (e *events) add(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log = append(e.log, s)
}

func (e *events) take() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.log
	e.log = nil
	return out
}

const cdn = "https://cdn.test/"

type fakeBlobs struct {
	ev        *events
	mu        sync.Mutex
	objects   map[string][]byte
	putErr    error
	deleteErr error
}

func newFakeBlobs(ev *events) *fakeBlobs {
	return &fakeBlobs{ev: ev, objects: map[string][]byte{}}
}

func (f *fakeBlobs) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	f.ev.add("put " + key)
	if f.putErr != nil {
		return "", f.putErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return cdn + key, nil
}

func (f *fakeBlobs) Delete(ctx context.Context, url string) error {
	f.ev.add("remove " + url)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := strings.TrimPrefix(url, cdn)
	if _, ok := f.objects[key]; !ok {
		return blobstore.ErrNotFound
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeBlobs) Start(lc *lifecycle.Coordinator) error { return nil }

func (f *fakeBlobs) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

// fakeStore wraps the in-memory store and logs mutations.
type fakeStore struct {
	docstore.System
	ev     *events
	addErr error
}

func newFakeStore(ev *events) *fakeStore {
	return &fakeStore{System: docstore.NewMemory(logging.Discard()), ev: ev}
}

func (s *fakeStore) Collection(name string) docstore.Collection {
	return &fakeCollection{Collection: s.System.Collection(name), store: s}
}

type fakeCollection struct {
	docstore.Collection
	store *fakeStore
}

func (c *fakeCollection) Add(ctx context.Context, fields map[string]any) (docstore.Document, error) {
	c.store.ev.add("add")
	if c.store.addErr != nil {
		return docstore.Document{}, c.store.addErr
	}
	return c.Collection.Add(ctx, fields)
}

func (c *fakeCollection) Update(ctx context.Context, id string, fields map[string]any) error {
	c.store.ev.add("update " + id)
	return c.Collection.Update(ctx, id, fields)
}

func (c *fakeCollection) Delete(ctx context.Context, id string) error {
	c.store.ev.add("delete " + id)
	return c.Collection.Delete(ctx, id)
}

type recorded struct {
	kind, op string
	failed   bool
}

type fakeRecorder struct {
	mu  sync.Mutex
	ops []recorded
}

func (r *fakeRecorder) Operation(kind, operation string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, recorded{kind, operation, err != nil})
}
