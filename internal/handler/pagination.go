package handler

import (
	"net/http"
	"strconv"
)

// Bounds for the issue-history listing.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type PaginationParams struct {
	Limit  int
	Offset int
}

// ParsePagination reads ?limit=&offset=. Out-of-range or unparseable values
// fall back to the defaults rather than failing the request.
func ParsePagination(r *http.Request) PaginationParams {
	query := r.URL.Query()
	p := PaginationParams{
		Limit:  queryInt(query.Get("limit"), DefaultLimit),
		Offset: queryInt(query.Get("offset"), 0),
	}

	if p.Limit <= 0 || p.Limit > MaxLimit {
		p.Limit = DefaultLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
