package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/carmen-hq/carmen/internal/shared/query"
)

// ParsePaginate parses the paginate descriptor from the request query string.
// defaultSearchFields is the per-entity fallback used when a search term
// arrives without explicit searchfields.
func ParsePaginate(c *gin.Context, defaultSearchFields []string) (query.Paginate, error) {
	return query.FromValues(c.Request.URL.Query(), defaultSearchFields)
}

// TotalPages computes the page count for a total row count and page size.
func TotalPages(total int64, perpage int) int {
	if total == 0 || perpage <= 0 {
		return 1
	}
	pages := int((total + int64(perpage) - 1) / int64(perpage))
	if pages == 0 {
		return 1
	}
	return pages
}
