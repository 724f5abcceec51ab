// Package pagination computes the bounded set of page controls shown for a
// catalog listing.
package pagination

const (
	// PageSize is the number of books the catalog returns per page
	PageSize = 20

	// windowSize is the maximum number of consecutive pages in a window
	windowSize = 10
	// pagesBefore is how many pages before the current one the window reaches
	pagesBefore = 4
)

// Item is a single rendered control: a page number or an ellipsis gap
type Item struct {
	Page     int  `json:"page,omitempty"`
	Active   bool `json:"active,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// TotalPages returns ceil(count / PageSize)
func TotalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + PageSize - 1) / PageSize
}

// Clamp keeps page within [1, max(totalPages, 1)]
func Clamp(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Bounds returns the first and last page of the consecutive window.
// The window reaches 4 pages back and fills forward to 10 pages.
func Bounds(currentPage, totalPages int) (lower, upper int) {
	lower = max(1, currentPage-pagesBefore)
	upper = min(totalPages, lower+windowSize-1)
	return lower, upper
}

// Window returns the controls to render for currentPage out of totalPages.
// It returns nil when there are no pages.
func Window(currentPage, totalPages int) []Item {
	if totalPages <= 0 {
		return nil
	}

	lower, upper := Bounds(currentPage, totalPages)
	items := make([]Item, 0, windowSize+4)

	if lower > 1 {
		items = append(items, page(1, currentPage))
		if lower > 2 {
			items = append(items, Item{Ellipsis: true})
		}
	}

	for i := lower; i <= upper; i++ {
		items = append(items, page(i, currentPage))
	}

	if upper < totalPages {
		if upper < totalPages-1 {
			items = append(items, Item{Ellipsis: true})
		}
		items = append(items, page(totalPages, currentPage))
	}

	return items
}

// Pages returns only the page numbers of a window, in order
func Pages(items []Item) []int {
	pages := make([]int, 0, len(items))
	for _, item := range items {
		if !item.Ellipsis {
			pages = append(pages, item.Page)
		}
	}
	return pages
}

// PrevDisabled reports whether there is no previous page
func PrevDisabled(currentPage int) bool {
	return currentPage <= 1
}

// NextDisabled reports whether there is no next page
func NextDisabled(currentPage, totalPages int) bool {
	return currentPage >= totalPages
}

func page(n, current int) Item {
	return Item{Page: n, Active: n == current}
}
