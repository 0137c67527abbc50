package transport

import (
	"net/http"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

// PageParams reads 1-based page and limit query parameters, falling back to
// the defaults on absent or malformed values.
func PageParams(r *http.Request) (page, limit int) {
	page = DefaultPage
	limit = DefaultLimit

	if s := r.URL.Query().Get("page"); s != "" {
		if p, err := strconv.Atoi(s); err == nil && p > 0 {
			page = p
		}
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		if l, err := strconv.Atoi(s); err == nil && l > 0 && l <= MaxLimit {
			limit = l
		}
	}
	return page, limit
}

// Paginate slices the full filtered, ordered set in memory. Page p with
// limit n returns items (p-1)*n through p*n-1; a page past the end returns
// an empty slice with consistent totals.
func Paginate[T any](items []T, page, limit int) ([]T, Pagination, int) {
	total := len(items)

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	p := Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1 && total > 0,
	}
	return items[start:end], p, total
}
