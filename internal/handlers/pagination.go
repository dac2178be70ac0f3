package handlers

import (
	"fmt"
	"net/http"
	"strconv"
)

type paginationParams struct {
	page     int
	pageSize int
	limit    int
	offset   int
}

func parsePaginationParams(r *http.Request, defaultSize int, maxSize int) (paginationParams, error) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return paginationParams{}, fmt.Errorf("invalid page %q", raw)
		}
		page = n
	}

	pageSize := defaultSize
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return paginationParams{}, fmt.Errorf("invalid page_size %q", raw)
		}
		if n > maxSize {
			n = maxSize
		}
		pageSize = n
	}

	return paginationParams{
		page:     page,
		pageSize: pageSize,
		limit:    pageSize,
		offset:   (page - 1) * pageSize,
	}, nil
}

func writePaginatedResponse(w http.ResponseWriter, status int, items any, page int, pageSize int, total int) {
	writeJSON(w, status, map[string]any{
		"items":     items,
		"page":      page,
		"page_size": pageSize,
		"total":     total,
	})
}
