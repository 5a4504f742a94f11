// Package view projects a listed result set into what a screen shows:
// an optional day filter, a stable client-side sort, and a zero-based page
// window. Projections never modify the listed documents.
package view

import (
	"fmt"
	"sync"
	"time"

	"github.com/JaimeStill/tour-desk/pkg/docstore"
	"github.com/JaimeStill/tour-desk/pkg/pagination"
	"github.com/JaimeStill/tour-desk/pkg/query"
)

// Quick is a day-relative quick filter.
type Quick string

const (
	Clear              Quick = "clear"
	Today              Quick = "today"
	Yesterday          Quick = "yesterday"
	DayBeforeYesterday Quick = "dayBeforeYesterday"
)

// ParseQuick accepts the quick filter names. An empty string clears.
func ParseQuick(s string) (Quick, error) {
	switch q := Quick(s); q {
	case "", Clear:
		return Clear, nil
	case Today, Yesterday, DayBeforeYesterday:
		return q, nil
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

// offset is the number of days before today the filter selects.
func (q Quick) offset() (int, bool) {
	switch q {
	case Today:
		return 0, true
	case Yesterday:
		return 1, true
	case DayBeforeYesterday:
		return 2, true
	}
	return 0, false
}

// Options configure a Model.
type Options struct {
	DayField    string
	DefaultSort string
	PageSize    int
	Location    *time.Location
	Now         func() time.Time
}

// State is the externally visible view state.
type State struct {
	Sort       query.SortField `json:"sort"`
	Filter     Quick           `json:"filter"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	Total      int             `json:"total"`
	TotalPages int             `json:"totalPages"`
}

// Model holds the last listed result and the projection settings applied
// to it.
type Model struct {
	mu       sync.RWMutex
	items    []docstore.Document
	sort     query.SortField
	filter   Quick
	page     int
	size     int
	dayField string
	loc      *time.Location
	now      func() time.Time
}

// New creates a Model. A zero PageSize defaults to 5 rows.
func New(opts Options) *Model {
	m := &Model{
		sort:     query.SortField{Field: opts.DefaultSort},
		filter:   Clear,
		size:     opts.PageSize,
		dayField: opts.DayField,
		loc:      opts.Location,
		now:      opts.Now,
	}
	if m.size < 1 {
		m.size = 5
	}
	if m.loc == nil {
		m.loc = time.Local
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// SetItems replaces the listed result, typically after a refresh.
func (m *Model) SetItems(docs []docstore.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = docs
}

// Items returns the listed result as last set.
func (m *Model) Items() []docstore.Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items
}

// SortBy selects field. Selecting the current field toggles its direction;
// selecting a different field starts ascending.
func (m *Model) SortBy(field string) query.SortField {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sort.Field == field {
		m.sort.Descending = !m.sort.Descending
	} else {
		m.sort = query.SortField{Field: field}
	}
	return m.sort
}

// SetSort applies an explicit sort.
func (m *Model) SetSort(s query.SortField) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sort = s
}

// Page selects a zero-based window. Changing size resets index to 0.
func (m *Model) Page(index, size int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if size >= 1 && size != m.size {
		m.size = size
		m.page = 0
		return
	}
	m.page = max(index, 0)
}

// Filter applies a quick filter and returns to the first page. Kinds without
// a day field accept only Clear.
func (m *Model) Filter(q Quick) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if q != Clear && m.dayField == "" {
		return fmt.Errorf("filter %q not supported: no day field", q)
	}
	m.filter = q
	m.page = 0
	return nil
}

// Rows returns the current page of the filtered, sorted result.
func (m *Model) Rows() []docstore.Document {
	return m.Result().Data
}

// Result returns the current page with pagination metadata.
func (m *Model) Result() pagination.PageResult[docstore.Document] {
	m.mu.RLock()
	defer m.mu.RUnlock()

	projected := m.project()
	return pagination.NewPageResult(
		pagination.Window(projected, m.page, m.size),
		len(projected), m.page, m.size,
	)
}

// State returns the projection settings and totals.
func (m *Model) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := len(m.project())
	return State{
		Sort:       m.sort,
		Filter:     m.filter,
		Page:       m.page,
		PageSize:   m.size,
		Total:      total,
		TotalPages: pagination.TotalPages(total, m.size),
	}
}

func (m *Model) project() []docstore.Document {
	docs := m.items
	if off, ok := m.filter.offset(); ok {
		docs = FilterDay(docs, m.dayField, off, m.now(), m.loc)
	}
	if m.sort.Field != "" {
		docs = Sort(docs, m.sort.Field, m.sort.Descending)
	}
	return docs
}

// Sort returns docs ordered by field using natural-type comparison.
// Ascending is stable and descending is its exact reverse.
func Sort(docs []docstore.Document, field string, descending bool) []docstore.Document {
	return query.SortBy(docs, func(d docstore.Document) any {
		return d.Get(field)
	}, descending)
}

// FilterDay keeps documents whose field falls on the calendar day daysAgo
// days before now, in loc. Documents without a time value are excluded.
func FilterDay(docs []docstore.Document, field string, daysAgo int, now time.Time, loc *time.Location) []docstore.Document {
	y, mo, d := now.In(loc).Date()
	start := time.Date(y, mo, d-daysAgo, 0, 0, 0, 0, loc)
	end := time.Date(y, mo, d-daysAgo+1, 0, 0, 0, 0, loc)

	return query.Filter(docs, func(doc docstore.Document) bool {
		t, ok := query.AsTime(doc.Get(field))
		if !ok {
			return false
		}
		return !t.Before(start) && t.Before(end)
	})
}
