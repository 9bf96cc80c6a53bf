package dataset

import "strconv"

// DefaultPageSize is used when neither the request nor the configuration sets
// a page size.
const DefaultPageSize = 10

// Page selects a window of a filtered collection. Number is 0-based.
type Page struct {
	Number int
	Size   int
}

// ParsePage reads the page and size query values. Missing, non-numeric or
// negative values fall back to page 0 and defaultSize; a size of 0 is kept
// and selects nothing.
func ParsePage(page, size string, defaultSize int) Page {
	if defaultSize < 0 {
		defaultSize = DefaultPageSize
	}
	p := Page{Number: 0, Size: defaultSize}
	if n, ok := parseNonNegativeInt(page); ok {
		p.Number = n
	}
	if n, ok := parseNonNegativeInt(size); ok {
		p.Size = n
	}
	return p
}

func parseNonNegativeInt(v string) (int, bool) {
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// filter returns the elements of items for which keep reports true, in order.
// The result is never nil.
func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Paginate returns items[p.Number*p.Size : (p.Number+1)*p.Size] clamped to the
// slice bounds. Pages past the end are empty rather than an error.
func Paginate[T any](items []T, p Page) []T {
	total := len(items)
	if p.Size <= 0 || p.Number < 0 || total == 0 {
		return []T{}
	}

	// Compare against the page count so Number*Size cannot overflow.
	pages := total / p.Size
	if total%p.Size != 0 {
		pages++
	}
	if p.Number >= pages {
		return []T{}
	}

	start := p.Number * p.Size
	end := start + min(p.Size, total-start)
	return items[start:end]
}

// equalIfSet reports whether want is empty or equal to got.
func equalIfSet(want, got string) bool {
	return want == "" || want == got
}
