package resource_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/tour-desk/internal/catalog"
	"github.com/JaimeStill/tour-desk/internal/resource"
	"github.com/JaimeStill/tour-desk/pkg/docstore"
	"github.com/JaimeStill/tour-desk/pkg/logging"
)

func TestRepository_Validation(t *testing.T) {
	tests := []struct {
		name    string
		kind    resource.Kind
		fields  map[string]any
		wantErr string
	}{
		{
			name:   "valid package with string price",
			kind:   catalog.Packages,
			fields: map[string]any{"title": "Safari", "content": "3 days", "price": "120.50"},
		},
		{
			name:    "negative price",
			kind:    catalog.Packages,
			fields:  map[string]any{"title": "Safari", "content": "3 days", "price": -1.0},
			wantErr: "price must be greater than or equal to 0",
		},
		{
			name:    "non-numeric price",
			kind:    catalog.Packages,
			fields:  map[string]any{"title": "Safari", "content": "3 days", "price": "cheap"},
			wantErr: "price must be a number",
		},
		{
			name:    "missing required",
			kind:    catalog.Services,
			fields:  map[string]any{"content": "x"},
			wantErr: "title is required",
		},
		{
			name:    "blank required",
			kind:    catalog.Services,
			fields:  map[string]any{"title": "   ", "content": "x"},
			wantErr: "title is required",
		},
		{
			name:    "unknown field",
			kind:    catalog.Subscribers,
			fields:  map[string]any{"email": "a@example.com", "admin": true},
			wantErr: "admin is not a field of subscribers",
		},
		{
			name:    "bad email",
			kind:    catalog.Subscribers,
			fields:  map[string]any{"email": "not-an-email"},
			wantErr: "email must be a valid email address",
		},
		{
			name:    "empty email",
			kind:    catalog.Subscribers,
			fields:  map[string]any{"email": ""},
			wantErr: "email is required",
		},
		{
			name:    "bad image url",
			kind:    catalog.Services,
			fields:  map[string]any{"title": "T", "content": "C", "image": "not a url"},
			wantErr: "image must be a valid URL",
		},
		{
			name:   "relative image url",
			kind:   catalog.Services,
			fields: map[string]any{"title": "T", "content": "C", "image": "/blobs/services/a/b.jpg"},
		},
		{
			name: "booking dates",
			kind: catalog.Bookings,
			fields: map[string]any{
				"travellerName": "Ana", "travelPlace": "Zanzibar",
				"startDate": "2025-03-01", "returnDate": "03/09/2025",
				"timestamp": "2025-02-01T10:00:00Z",
			},
			wantErr: "returnDate must be a date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := resource.NewRepository(tt.kind, docstore.NewMemory(logging.Discard()), logging.Discard())
			_, err := repo.Create(context.Background(), tt.fields)

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Create() error = %v", err)
				}
				return
			}
			if !errors.Is(err, resource.ErrValidation) {
				t.Fatalf("Create() error = %v, want ErrValidation", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestRepository_NormalizesValues(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory(logging.Discard())

	packages := resource.NewRepository(catalog.Packages, store, logging.Discard())
	doc, err := packages.Create(ctx, map[string]any{"title": " Safari ", "content": "3 days", "price": "99.5"})
	if err != nil {
		t.Fatal(err)
	}
	if doc.Get("price") != 99.5 {
		t.Errorf("price = %#v, want float64 99.5", doc.Get("price"))
	}
	if doc.String("title") != "Safari" {
		t.Errorf("title = %q, want trimmed", doc.String("title"))
	}

	bookings := resource.NewRepository(catalog.Bookings, store, logging.Discard())
	b, err := bookings.Create(ctx, map[string]any{
		"travellerName": "Ana", "travelPlace": "Zanzibar",
		"startDate": "2025-03-01", "returnDate": "2025-03-09",
		"timestamp": "2025-02-01T13:00:00+03:00",
	})
	if err != nil {
		t.Fatal(err)
	}
	ts, ok := b.Get("timestamp").(time.Time)
	if !ok || !ts.Equal(time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)) || ts.Location() != time.UTC {
		t.Errorf("timestamp = %#v, want UTC time", b.Get("timestamp"))
	}
}

func TestRepository_UpdateMergesPartialFields(t *testing.T) {
	ctx := context.Background()
	repo := resource.NewRepository(catalog.Services, docstore.NewMemory(logging.Discard()), logging.Discard())

	doc, _ := repo.Create(ctx, map[string]any{"title": "City Tour", "content": "Half-day tour"})

	if err := repo.Update(ctx, doc.ID, map[string]any{"content": "Full-day tour"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, _ := repo.Get(ctx, doc.ID)
	if got.String("title") != "City Tour" || got.String("content") != "Full-day tour" {
		t.Errorf("fields = %v", got.Fields)
	}

	if err := repo.Update(ctx, "missing", map[string]any{"title": "x"}); !errors.Is(err, resource.ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
}

func TestRepository_BookingsListedNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := resource.NewRepository(catalog.Bookings, docstore.NewMemory(logging.Discard()), logging.Discard())

	for _, day := range []string{"2025-03-01", "2025-03-05", "2025-03-03"} {
		if _, err := repo.Create(ctx, map[string]any{
			"travellerName": "T" + day, "travelPlace": "P",
			"startDate": day, "returnDate": day,
			"timestamp": day + "T09:00:00Z",
		}); err != nil {
			t.Fatal(err)
		}
	}

	docs, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, d := range docs {
		got = append(got, d.String("startDate"))
	}
	if strings.Join(got, ",") != "2025-03-05,2025-03-03,2025-03-01" {
		t.Errorf("order = %v, want timestamp descending", got)
	}
}

type downStore struct{ docstore.System }

func (downStore) Collection(string) docstore.Collection { return downCollection{} }

type downCollection struct{ docstore.Collection }

func (downCollection) List(context.Context, docstore.ListOptions) ([]docstore.Document, error) {
	return nil, docstore.ErrUnavailable
}

func TestRepository_StoreUnavailable(t *testing.T) {
	repo := resource.NewRepository(catalog.Services, downStore{}, logging.Discard())

	_, err := repo.List(context.Background())
	if !errors.Is(err, resource.ErrStoreUnavailable) {
		t.Errorf("List() error = %v, want ErrStoreUnavailable", err)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{resource.ErrNotFound, http.StatusNotFound},
		{resource.ErrValidation, http.StatusBadRequest},
		{resource.ErrReadOnly, http.StatusMethodNotAllowed},
		{resource.ErrSingleton, http.StatusConflict},
		{resource.ErrBusy, http.StatusConflict},
		{resource.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{resource.ErrUploadFailed, http.StatusBadGateway},
		{resource.ErrRemoveFailed, http.StatusBadGateway},
		{resource.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := resource.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
