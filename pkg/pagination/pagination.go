package pagination

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/tour-desk/pkg/query"
)

// PageRequest is a client request for one zero-based page of a list.
type PageRequest struct {
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Sort     []query.SortField `json:"sort,omitempty"`
	Filter   string            `json:"filter,omitempty"`
}

// Normalize clamps the request to valid values for cfg.
func (r *PageRequest) Normalize(cfg Config) {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.PageSize < 1 {
		r.PageSize = cfg.DefaultPageSize
	}
	if r.PageSize > cfg.MaxPageSize {
		r.PageSize = cfg.MaxPageSize
	}
}

// Offset is the index of the first item on the requested page.
func (r *PageRequest) Offset() int {
	return r.Page * r.PageSize
}

// PageRequestFromQuery parses page, page_size, sort and filter from URL query
// values. sort is comma-separated with a "-" prefix for descending. A missing
// or malformed page selects page 0.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	page, _ := strconv.Atoi(values.Get("page"))
	pageSize, _ := strconv.Atoi(values.Get("page_size"))

	req := PageRequest{
		Page:     page,
		PageSize: pageSize,
		Sort:     query.ParseSortFields(values.Get("sort")),
		Filter:   values.Get("filter"),
	}

	req.Normalize(cfg)
	return req
}

// Window returns the items on zero-based page index with the given size.
// Pages past the end are empty. Consecutive windows partition items with no
// gaps or overlaps.
func Window[T any](items []T, index, size int) []T {
	if size < 1 || index < 0 {
		return []T{}
	}
	start := index * size
	if start >= len(items) {
		return []T{}
	}
	end := min(start+size, len(items))
	return items[start:end]
}

// TotalPages is the number of windows of size needed to cover total items.
// An empty list still has one (empty) page.
func TotalPages(total, size int) int {
	if size < 1 {
		return 1
	}
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return max(pages, 1)
}

// PageResult holds a page of data along with pagination metadata.
type PageResult[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPageResult creates a PageResult with calculated total pages.
func NewPageResult[T any](data []T, total, page, pageSize int) PageResult[T] {
	if data == nil {
		data = []T{}
	}

	return PageResult[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(total, pageSize),
	}
}
