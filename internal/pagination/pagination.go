// Package pagination provides the pure page arithmetic for the list views.
// It operates on already-filtered slices; it never fetches and never mutates
// its input.
package pagination

// TotalPages returns how many pages count items occupy at the given page
// size. Zero items means zero pages; callers suppress pagination controls in
// that case rather than showing "page 1 of 1" of nothing.
func TotalPages(count, size int) int {
	if count <= 0 || size <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// Visible returns the items shown on a 1-based page. A page beyond the end
// yields an empty slice; the stored page index is never corrected here, so a
// stale page simply shows nothing until the user navigates.
func Visible[T any](items []T, page, size int) []T {
	if size <= 0 {
		return nil
	}
	start := (page - 1) * size
	if start < 0 || start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Clamp bounds a requested 1-based page to [1, total]. With zero pages it
// returns 1 so navigation always lands somewhere stable.
func Clamp(page, total int) int {
	if page < 1 || total < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}
