package catalog

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Category groups products on the storefront
type Category struct {
	shared.BaseEntity
	Name          string
	Slug          string
	Image         string
	SubCategories []SubCategory

	// ProductsCount is filled by counting queries.
	ProductsCount int64
}

// SubCategory is a second-level grouping inside a category
type SubCategory struct {
	shared.BaseEntity
	CategoryID uuid.UUID
	Name       string
	Slug       string
}

// HasSubCategory reports whether id belongs to this category
func (c *Category) HasSubCategory(id uuid.UUID) bool {
	for _, sc := range c.SubCategories {
		if sc.ID == id {
			return true
		}
	}
	return false
}
