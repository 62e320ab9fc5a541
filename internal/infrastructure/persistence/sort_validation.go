package persistence

import (
	"strings"

	"github.com/marketplace/backend/internal/domain/catalog"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ArticleSortFields contains allowed sort fields for articles
var ArticleSortFields = map[string]bool{
	"created_at":   true,
	"published_at": true,
	"title":        true,
}

// productSortColumns maps listing sort keys to SQL. Aggregate keys refer to
// the aliases selected by the listing query.
var productSortColumns = map[catalog.SortField]string{
	catalog.SortByRating:    "reviews_avg_rating",
	catalog.SortByCreatedAt: "products.created_at",
	catalog.SortByPrice:     "products.price",
	catalog.SortByTotalSell: "total_sell",
}

// ProductOrderClause renders one product sort term. Unknown fields fall back
// to creation date. Products without reviews always sort after rated ones.
func ProductOrderClause(s catalog.ProductSort) string {
	column, ok := productSortColumns[s.Field]
	if !ok {
		column = productSortColumns[catalog.SortByCreatedAt]
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	if s.Field == catalog.SortByRating {
		return column + " " + dir + " NULLS LAST"
	}
	return column + " " + dir
}
