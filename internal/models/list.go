// ABOUTME: Copy-on-write operations for repeating field lists
// ABOUTME: Each operation returns a new slice and leaves its input untouched

package models

// Replace returns a copy of items with index i set to v.
// An out-of-range index returns an unchanged copy.
func Replace[T any](items []T, i int, v T) []T {
	out := append([]T(nil), items...)
	if i >= 0 && i < len(out) {
		out[i] = v
	}
	return out
}

// Remove returns a copy of items without index i
func Remove[T any](items []T, i int) []T {
	if i < 0 || i >= len(items) {
		return append([]T(nil), items...)
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

// Append returns a copy of items with v added at the end
func Append[T any](items []T, v T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, v)
}

// CanRemove reports whether a remove action should be offered.
// The last remaining row cannot be removed.
func CanRemove[T any](items []T) bool {
	return len(items) > 1
}
