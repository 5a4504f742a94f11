package docstore_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/JaimeStill/tour-desk/pkg/docstore"
	"github.com/JaimeStill/tour-desk/pkg/logging"
)

func TestMemory_AddAndList(t *testing.T) {
	ctx := context.Background()
	col := docstore.NewMemory(logging.Discard()).Collection("subscribedUsers")

	for range 2 {
		if _, err := col.Add(ctx, map[string]any{"email": "a@example.com"}); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	docs, err := col.List(ctx, docstore.ListOptions{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len(docs) = %d, want 2", len(docs))
	}
	if docs[0].ID == docs[1].ID {
		t.Error("documents should receive distinct ids")
	}
}

func TestMemory_ListOrderBy(t *testing.T) {
	ctx := context.Background()
	col := docstore.NewMemory(logging.Discard()).Collection("bookings")

	stamps := []time.Time{
		time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
	}
	for _, ts := range stamps {
		if _, err := col.Add(ctx, map[string]any{"timestamp": ts}); err != nil {
			t.Fatal(err)
		}
	}

	docs, err := col.List(ctx, docstore.ListOptions{OrderBy: "timestamp", Descending: true})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	want := []time.Time{stamps[1], stamps[2], stamps[0]}
	for i, d := range docs {
		if got := d.Get("timestamp").(time.Time); !got.Equal(want[i]) {
			t.Errorf("docs[%d].timestamp = %v, want %v", i, got, want[i])
		}
	}
}

func TestMemory_UpdateMerges(t *testing.T) {
	ctx := context.Background()
	col := docstore.NewMemory(logging.Discard()).Collection("services")

	doc, err := col.Add(ctx, map[string]any{"title": "City Tour", "content": "Walk", "image": "u1"})
	if err != nil {
		t.Fatal(err)
	}

	if err := col.Update(ctx, doc.ID, map[string]any{"title": "Old Town Tour"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := col.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.String("title") != "Old Town Tour" {
		t.Errorf("title = %q", got.String("title"))
	}
	if got.String("content") != "Walk" || got.String("image") != "u1" {
		t.Errorf("unsupplied fields should be preserved: %v", got.Fields)
	}
}

func TestMemory_NotFound(t *testing.T) {
	ctx := context.Background()
	col := docstore.NewMemory(logging.Discard()).Collection("packages")

	if _, err := col.Get(ctx, "missing"); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
	if err := col.Update(ctx, "missing", map[string]any{"x": 1}); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
	if err := col.Delete(ctx, "missing"); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	col := docstore.NewMemory(logging.Discard()).Collection("testimonials")

	a, _ := col.Add(ctx, map[string]any{"authorName": "A"})
	b, _ := col.Add(ctx, map[string]any{"authorName": "B"})

	if err := col.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	docs, _ := col.List(ctx, docstore.ListOptions{})
	if len(docs) != 1 || docs[0].ID != b.ID {
		t.Errorf("remaining docs = %v", docs)
	}
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	col := docstore.NewMemory(logging.Discard()).Collection("contacts")

	doc, _ := col.Add(ctx, map[string]any{"name": "Ana"})
	doc.Fields["name"] = "mutated"

	got, _ := col.Get(ctx, doc.ID)
	if got.String("name") != "Ana" {
		t.Errorf("stored document was mutated through returned copy")
	}
}

func TestMemory_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	col := docstore.NewMemory(logging.Discard()).Collection("services")
	if _, err := col.List(ctx, docstore.ListOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("List() error = %v, want context.Canceled", err)
	}
}

func TestDocument_JSON(t *testing.T) {
	doc := docstore.Document{ID: "abc", Fields: map[string]any{"title": "City Tour"}}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}

	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		t.Fatal(err)
	}
	if flat["id"] != "abc" || flat["title"] != "City Tour" {
		t.Errorf("flattened = %v", flat)
	}

	var back docstore.Document
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.ID != "abc" || back.String("title") != "City Tour" {
		t.Errorf("round trip = %+v", back)
	}
	if _, ok := back.Fields["id"]; ok {
		t.Error("id should not be kept as a field")
	}
}
