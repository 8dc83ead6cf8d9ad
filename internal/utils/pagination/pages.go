package pagination

import "strconv"

// PageSize is the fixed ledger page size.
const PageSize = 10

// Ellipsis is the marker emitted where a run of page numbers is collapsed.
const Ellipsis = "..."

// windowDelta is how many pages are shown on either side of the current page.
const windowDelta = 2

// Offset converts a 1-based page number into a row offset for PageSize pages.
func Offset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * PageSize
}

// TotalPages returns the number of pages needed for count rows.
func TotalPages(count int64) int {
	return int((count + PageSize - 1) / PageSize)
}

// Clamp bounds a requested page to [1, totalPages]. An empty result set
// clamps to page 1. This is what sends the view back to the last valid page
// after the final row of the last page is deleted.
func Clamp(page, totalPages int) int {
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Window produces the page-number strip for the given current page: the first
// and last page always appear, up to windowDelta pages flank the current page,
// and any gap collapses into a single Ellipsis marker. No page number is ever
// duplicated.
func Window(current, totalPages int) []string {
	if totalPages <= 0 {
		return nil
	}
	if totalPages == 1 {
		return []string{"1"}
	}

	out := []string{"1"}
	if current-windowDelta > 2 {
		out = append(out, Ellipsis)
	}

	lo := current - windowDelta
	if lo < 2 {
		lo = 2
	}
	hi := current + windowDelta
	if hi > totalPages-1 {
		hi = totalPages - 1
	}
	for p := lo; p <= hi; p++ {
		out = append(out, strconv.Itoa(p))
	}

	if current+windowDelta < totalPages-1 {
		out = append(out, Ellipsis)
	}
	out = append(out, strconv.Itoa(totalPages))

	return out
}
