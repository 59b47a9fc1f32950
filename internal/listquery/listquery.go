// Package listquery is the pure search/filter/pagination pipeline applied to
// cached catalog collections. It never mutates its input: output pages are
// subsets of the input in input order.
package listquery

import (
	"strings"

	"github.com/rushikulya/marketkit/internal/domain"
)

// DefaultPageSize matches the admin seller-items tables. Storefront grids
// pass All for an unpaginated view.
const DefaultPageSize = 10

// All disables pagination.
const All = 0

// Matches reports whether e satisfies the free-text search term (substring,
// case-insensitive, against the entity's key set) and the exact name filter.
// Empty term and filter match everything.
func Matches(e domain.Entity, term, filter string) bool {
	if term != "" {
		t := strings.ToLower(term)
		found := false
		for _, key := range e.SearchKeys() {
			if strings.Contains(strings.ToLower(key), t) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter != "" && e.NameKey() != filter {
		return false
	}
	return true
}

// Filter returns the items matching term and filter, preserving relative
// order.
func Filter[T domain.Entity](items []T, term, filter string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if Matches(it, term, filter) {
			out = append(out, it)
		}
	}
	return out
}

// Paginate slices out the 1-based page of the given size. An out-of-range
// page is an empty page, not an error. Size All returns everything.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		return append([]T(nil), items...)
	}
	if page < 1 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return append([]T(nil), items[start:end]...)
}

// TotalPages is the number of pages needed for n items, at least 1 so that
// page clamping always has a valid target.
func TotalPages(n, size int) int {
	if size <= 0 || n <= 0 {
		return 1
	}
	pages := (n + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Visible runs the full pipeline for one view state.
func Visible[T domain.Entity](items []T, st State, size int) []T {
	return Paginate(Filter(items, st.Term(), st.Filter()), st.Page(), size)
}
