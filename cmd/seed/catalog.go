package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JaimeStill/tour-desk/internal/catalog"
	"github.com/JaimeStill/tour-desk/internal/resource"
	"github.com/JaimeStill/tour-desk/pkg/decode"
)

func init() {
	registerSeeder(&kindSeeder[bookingSeed]{kind: catalog.Bookings, prepare: stampBooking})
	registerSeeder(&kindSeeder[catalog.Service]{kind: catalog.Services})
	registerSeeder(&kindSeeder[catalog.Package]{kind: catalog.Packages})
	registerSeeder(&kindSeeder[catalog.Testimonial]{kind: catalog.Testimonials})
	registerSeeder(&kindSeeder[catalog.SubscribedUser]{kind: catalog.Subscribers})
	registerSeeder(&kindSeeder[catalog.ContactFormEntry]{kind: catalog.Contacts})
	registerSeeder(&kindSeeder[catalog.ContactDetails]{kind: catalog.ContactInfo})
}

// bookingSeed places a booking relative to the seeding time so the day
// filters have something to show.
type bookingSeed struct {
	catalog.Booking
	DaysAgo  int `json:"daysAgo"`
	HoursAgo int `json:"hoursAgo"`
}

var now = time.Now

func stampBooking(b bookingSeed) any {
	b.Timestamp = now().UTC().
		AddDate(0, 0, -b.DaysAgo).
		Add(-time.Duration(b.HoursAgo) * time.Hour)
	return b.Booking
}

// kindSeeder decodes the kind's array from the seed data as []T and creates
// one document per element.
type kindSeeder[T any] struct {
	kind    resource.Kind
	prepare func(T) any
}

func (s *kindSeeder[T]) Name() string {
	return s.kind.Name
}

func (s *kindSeeder[T]) Kind() resource.Kind {
	return s.kind
}

func (s *kindSeeder[T]) Description() string {
	return fmt.Sprintf("Seeds %s", s.kind.Label)
}

func (s *kindSeeder[T]) Seed(ctx context.Context, repo *resource.Repository, data SeedData) (int, error) {
	raw, ok := data[s.kind.Name]
	if !ok {
		return 0, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0, fmt.Errorf("parse %s: %w", s.kind.Name, err)
	}

	for i, item := range items {
		var value any = item
		if s.prepare != nil {
			value = s.prepare(item)
		}

		fields, err := decode.ToMap(value)
		if err != nil {
			return i, err
		}
		delete(fields, "id")

		if _, err := repo.Create(ctx, fields); err != nil {
			return i, fmt.Errorf("item %d: %w", i, err)
		}
	}

	return len(items), nil
}
