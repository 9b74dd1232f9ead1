// Package pagination computes fixed-size page windows over ordered result
// sets. Pages are 1-indexed; a request beyond the valid range clamps to the
// last page rather than erroring, and an empty result set clamps to page 1.
package pagination

// Page describes one window of a paginated result set.
type Page struct {
	Number     int   `json:"number"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Paginate resolves the requested page number against the total item count.
// size must be positive; requested values below 1 are treated as page 1.
func Paginate(totalItems int64, requested, size int) Page {
	totalPages := int((totalItems + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Page{
		Number:     number,
		Size:       size,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasNext:    number < totalPages,
		HasPrev:    number > 1,
	}
}

// Offset returns the item offset of the first element on the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Limit returns the maximum number of items on the page.
func (p Page) Limit() int {
	return p.Size
}
