package service

import (
	"math"

	"github.com/mitrahub/auth-api/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100

	// keeps (page-1)*limit within int32 for every store
	maxPage = math.MaxInt32 / maxPageLimit
)

// normalizePage clamps page to [1, maxPage] and limit to [1, maxPageLimit].
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func newPagination(page, limit int, total int64) ports.Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return ports.Pagination{
		CurrentPage:  page,
		TotalPages:   pages,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}
