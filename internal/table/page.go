package table

import "github.com/jask/orderdesk/internal/orders"

// DefaultPageSizes are the rows-per-page choices offered by the table.
var DefaultPageSizes = []int{5, 10, 25}

// Paginate returns rows[page*size : page*size+size], clamped to the slice bounds.
// Out-of-range input yields a shorter or empty slice.
func Paginate(rows []orders.DisplayOrder, page, size int) []orders.DisplayOrder {
	if page < 0 || page >= PageCount(len(rows), size) {
		return nil
	}
	start := page * size
	end := start + min(size, len(rows)-start)
	return rows[start:end:end]
}

// PageCount is the number of pages needed for total rows.
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	n := total / size
	if total%size != 0 {
		n++
	}
	return n
}

// PageBounds reports the 1-based first and last row numbers shown on page,
// as in "6-10 of 12". Both are 0 when the page is empty.
func PageBounds(total, page, size int) (from, to int) {
	if page < 0 || page >= PageCount(total, size) {
		return 0, 0
	}
	start := page * size
	return start + 1, start + min(size, total-start)
}
