package query

// Predicate reports whether an item belongs in a filtered result.
type Predicate[T any] func(T) bool

// Filter returns the items matching pred in their original order.
// A nil predicate matches everything.
func Filter[T any](items []T, pred Predicate[T]) []T {
	result := make([]T, 0, len(items))
	for _, item := range items {
		if pred == nil || pred(item) {
			result = append(result, item)
		}
	}
	return result
}
