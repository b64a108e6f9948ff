package services

// Ellipsis marks a collapsed run of page numbers in a PageWindow.
const Ellipsis = 0

// Page is one slice of a derived view plus its pagination metadata.
type Page[T any] struct {
	Items      []T `json:"items"`
	Number     int `json:"current_page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// TotalPages is ceil(n / perPage); zero items means zero pages.
func TotalPages(n, perPage int) int {
	if perPage <= 0 || n <= 0 {
		return 0
	}
	return (n + perPage - 1) / perPage
}

// ClampPage returns page if it is within [1, totalPages], and 1 otherwise.
func ClampPage(page, totalPages int) int {
	if page < 1 || page > totalPages {
		return 1
	}
	return page
}

// Paginate returns items[(page-1)*perPage : page*perPage]. An out-of-range
// page is reset to 1.
func Paginate[T any](items []T, perPage, page int) Page[T] {
	if perPage <= 0 {
		perPage = len(items)
		if perPage == 0 {
			perPage = 1
		}
	}
	total := TotalPages(len(items), perPage)
	page = ClampPage(page, total)

	start := (page - 1) * perPage
	end := start + perPage
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:      items[start:end:end],
		Number:     page,
		PerPage:    perPage,
		TotalItems: len(items),
		TotalPages: total,
	}
}

// PageWindow selects the page numbers to render: always the first and last
// page and current±1, with every gap collapsed into a single Ellipsis.
func PageWindow(current, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}
	current = ClampPage(current, totalPages)

	var out []int
	last := 0
	for p := 1; p <= totalPages; p++ {
		if p != 1 && p != totalPages && (p < current-1 || p > current+1) {
			continue
		}
		if last != 0 && p-last > 1 {
			out = append(out, Ellipsis)
		}
		out = append(out, p)
		last = p
	}
	return out
}

// HasPrev and HasNext are convenience accessors for navigation controls.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }
