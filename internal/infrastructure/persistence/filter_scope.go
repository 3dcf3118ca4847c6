package persistence

import (
	"strings"

	"github.com/gestio/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// allowedOrderColumns holds per-table whitelists for ORDER BY columns.
// Anything not listed falls back to the caller's default ordering so
// user-supplied sort fields can never reach the SQL text unchecked.
var allowedOrderColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"code":       true,
	"date":       true,
	"number":     true,
	"status":     true,
	"amount":     true,
	"total":      true,
}

// applyPagination adds offset/limit from the filter's page settings
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

// applyOrdering adds ORDER BY from the filter, falling back to defaultOrder
// when the requested column is not whitelisted
func applyOrdering(query *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	if filter.OrderBy != "" && allowedOrderColumns[filter.OrderBy] {
		dir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			dir = "DESC"
		}
		return query.Order(filter.OrderBy + " " + dir)
	}
	return query.Order(defaultOrder)
}

// applyListFilter combines ordering and pagination for list queries
func applyListFilter(query *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	return applyPagination(applyOrdering(query, filter, defaultOrder), filter)
}
