package pagination_test

import (
	"net/url"
	"testing"

	"github.com/JaimeStill/tour-desk/pkg/pagination"
)

func TestWindow_Partition(t *testing.T) {
	for n := 0; n <= 23; n++ {
		for size := 1; size <= 7; size++ {
			items := make([]int, n)
			for i := range items {
				items[i] = i
			}

			pages := pagination.TotalPages(n, size)
			var seen []int
			var last []int
			for p := range pages {
				w := pagination.Window(items, p, size)
				seen = append(seen, w...)
				last = w
			}

			if len(seen) != n {
				t.Fatalf("n=%d size=%d: windows cover %d items", n, size, len(seen))
			}
			for i, v := range seen {
				if v != i {
					t.Fatalf("n=%d size=%d: item %d = %d, windows overlap or skip", n, size, i, v)
				}
			}

			if n > 0 {
				want := n % size
				if want == 0 {
					want = size
				}
				if len(last) != want {
					t.Errorf("n=%d size=%d: last window len = %d, want %d", n, size, len(last), want)
				}
			}
		}
	}
}

func TestWindow_OutOfRange(t *testing.T) {
	items := []int{1, 2, 3}

	if w := pagination.Window(items, 5, 2); len(w) != 0 {
		t.Errorf("Window past end = %v, want empty", w)
	}
	if w := pagination.Window(items, -1, 2); len(w) != 0 {
		t.Errorf("Window(-1) = %v, want empty", w)
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	cfg := pagination.Config{DefaultPageSize: 5, MaxPageSize: 50}

	tests := []struct {
		name     string
		query    string
		page     int
		pageSize int
		sorts    int
		filter   string
	}{
		{"defaults", "", 0, 5, 0, ""},
		{"explicit", "page=2&page_size=10&sort=-timestamp&filter=today", 2, 10, 1, "today"},
		{"negative page", "page=-3", 0, 5, 0, ""},
		{"clamped size", "page_size=500", 0, 50, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			req := pagination.PageRequestFromQuery(values, cfg)

			if req.Page != tt.page || req.PageSize != tt.pageSize {
				t.Errorf("page=%d size=%d, want page=%d size=%d", req.Page, req.PageSize, tt.page, tt.pageSize)
			}
			if len(req.Sort) != tt.sorts {
				t.Errorf("len(Sort) = %d, want %d", len(req.Sort), tt.sorts)
			}
			if req.Filter != tt.filter {
				t.Errorf("Filter = %q, want %q", req.Filter, tt.filter)
			}
		})
	}
}

func TestNewPageResult(t *testing.T) {
	result := pagination.NewPageResult[int](nil, 11, 0, 5)

	if result.Data == nil {
		t.Error("Data should be an empty slice, not nil")
	}
	if result.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", result.TotalPages)
	}
}

func TestConfig_Finalize(t *testing.T) {
	var cfg pagination.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if cfg.DefaultPageSize != 5 {
		t.Errorf("DefaultPageSize = %d, want 5", cfg.DefaultPageSize)
	}

	bad := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
	if err := bad.Finalize(nil); err == nil {
		t.Error("Finalize() accepted default larger than max")
	}
}
