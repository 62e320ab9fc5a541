package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a live product without relations or aggregates
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindDetail finds a product with category, seller, variants and stats loaded
	FindDetail(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs finds live products by ID, in no particular order
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// Search runs a paginated listing with seller and stats loaded
	Search(ctx context.Context, q ProductQuery) (shared.Paginated[Product], error)

	// Sample returns up to limit products matching q in random order
	Sample(ctx context.Context, q ProductQuery, limit int) ([]Product, error)

	// FindVariants returns the live variants of parentID
	FindVariants(ctx context.Context, parentID uuid.UUID) ([]Product, error)

	// SaveWithVariants upserts the parent and its variants and soft-deletes
	// removed variants in one transaction
	SaveWithVariants(ctx context.Context, parent *Product, plan VariantPlan) error

	// Delete soft-deletes a product together with its variants
	Delete(ctx context.Context, id uuid.UUID) error

	// SellerAverageRating averages review ratings over every product of a seller
	SellerAverageRating(ctx context.Context, sellerID uuid.UUID) (float64, error)

	// CountListed counts non-variant products
	CountListed(ctx context.Context) (int64, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindAllWithCounts returns every category with its listed product count,
	// restricted to sellerID when it is non-nil
	FindAllWithCounts(ctx context.Context, sellerID *uuid.UUID) ([]Category, error)

	// Save creates or updates a category together with its sub-categories
	Save(ctx context.Context, c *Category) error
}
