// Package query provides in-memory ordering and filtering over fetched result
// sets: sort-field parsing, natural-type comparison, and stable sorting.
package query

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// SortField names a field and its direction.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// String renders the field in its query form ("-field" for descending).
func (s SortField) String() string {
	if s.Descending {
		return "-" + s.Field
	}
	return s.Field
}

// ParseSortFields parses a comma-separated sort expression. A leading "-"
// marks a field as descending. Empty segments are ignored.
func ParseSortFields(s string) []SortField {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	fields := make([]SortField, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		desc := strings.HasPrefix(part, "-")
		name := strings.TrimPrefix(part, "-")
		if name == "" {
			continue
		}
		fields = append(fields, SortField{Field: name, Descending: desc})
	}
	return fields
}

// SortBy returns a sorted copy of items ordered by the key extracted from each
// item. Ascending order is stable; descending order is the exact reverse of
// the ascending order, so equal keys appear in reverse input order.
func SortBy[T any](items []T, key func(T) any, descending bool) []T {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return Compare(key(a), key(b))
	})
	if descending {
		slices.Reverse(sorted)
	}
	return sorted
}

// Compare orders two field values by their natural type: numbers numerically,
// times chronologically, strings lexicographically, false before true. Nil
// sorts first. Values of different kinds order by kind, then by their string
// form, so the result is total.
func Compare(a, b any) int {
	ka, kb := kindOf(a), kindOf(b)
	if ka != kb {
		return cmp.Compare(ka, kb)
	}

	switch ka {
	case kindNil:
		return 0
	case kindNumber:
		fa, _ := AsFloat(a)
		fb, _ := AsFloat(b)
		return cmp.Compare(fa, fb)
	case kindTime:
		ta, _ := AsTime(a)
		tb, _ := AsTime(b)
		return ta.Compare(tb)
	case kindBool:
		ba, bb := a.(bool), b.(bool)
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		default:
			return 1
		}
	case kindString:
		return strings.Compare(a.(string), b.(string))
	default:
		return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
}

const (
	kindNil = iota
	kindBool
	kindNumber
	kindTime
	kindString
	kindOther
)

func kindOf(v any) int {
	switch v := v.(type) {
	case nil:
		return kindNil
	case bool:
		return kindBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, json.Number:
		return kindNumber
	case time.Time:
		return kindTime
	case *time.Time:
		if v == nil {
			return kindNil
		}
		return kindTime
	case string:
		return kindString
	default:
		return kindOther
	}
}

// AsFloat converts a numeric value to float64.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
}

// AsTime interprets v as a point in time. It accepts time.Time values and
// strings in RFC 3339, date-time, or date-only form.
func AsTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}
