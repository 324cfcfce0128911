package models

import "strconv"

type Page[T any] struct {
	Items       []T  `json:"items"`
	Number      int  `json:"number"`
	PerPage     int  `json:"per_page"`
	TotalItems  int  `json:"total_items"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// PageRequest is a resolved page position: Number is always within [1, TotalPages].
type PageRequest struct {
	Number     int
	PerPage    int
	TotalItems int
}

// ResolvePage turns a raw "page" query value into a valid page position.
// A value that is not a number selects the first page; a number outside the
// available range selects the last page.
func ResolvePage(raw string, perPage, totalItems int) PageRequest {
	pages := totalPages(perPage, totalItems)
	number := 1
	if raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			number = 1
		case n < 1 || n > pages:
			number = pages
		default:
			number = n
		}
	}
	return PageRequest{Number: number, PerPage: perPage, TotalItems: totalItems}
}

func (r PageRequest) Offset() int {
	return (r.Number - 1) * r.PerPage
}

func (r PageRequest) Limit() int {
	return r.PerPage
}

func NewPage[T any](req PageRequest, items []T) Page[T] {
	if items == nil {
		items = make([]T, 0)
	}
	pages := totalPages(req.PerPage, req.TotalItems)
	return Page[T]{
		Items:       items,
		Number:      req.Number,
		PerPage:     req.PerPage,
		TotalItems:  req.TotalItems,
		TotalPages:  pages,
		HasNext:     req.Number < pages,
		HasPrevious: req.Number > 1,
	}
}

func totalPages(perPage, totalItems int) int {
	if perPage <= 0 || totalItems <= 0 {
		return 1
	}
	return (totalItems + perPage - 1) / perPage
}
