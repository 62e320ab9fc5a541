package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const categoryProductsCount = `(SELECT COUNT(*) FROM products
	WHERE products.category_id = categories.id
	AND products.parent_id IS NULL
	AND products.deleted_at IS NULL) AS products_count`

const categorySellerProductsCount = `(SELECT COUNT(*) FROM products
	WHERE products.category_id = categories.id
	AND products.parent_id IS NULL
	AND products.deleted_at IS NULL
	AND products.seller_id = ?) AS products_count`

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category with its sub-categories
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var m models.CategoryModel
	if err := r.db.WithContext(ctx).Preload("SubCategories").First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAllWithCounts returns every category ordered by name with its listed
// product count, restricted to sellerID when it is non-nil
func (r *GormCategoryRepository) FindAllWithCounts(ctx context.Context, sellerID *uuid.UUID) ([]catalog.Category, error) {
	query := r.db.WithContext(ctx).Model(&models.CategoryModel{})
	if sellerID != nil {
		query = query.Select("categories.*, "+categorySellerProductsCount, *sellerID)
	} else {
		query = query.Select("categories.*, " + categoryProductsCount)
	}

	var ms []models.CategoryModel
	if err := query.Preload("SubCategories").Order("categories.name ASC").Find(&ms).Error; err != nil {
		return nil, err
	}

	categories := make([]catalog.Category, len(ms))
	for i := range ms {
		categories[i] = *ms[i].ToDomain()
	}
	return categories, nil
}

// Save creates or updates a category together with its sub-categories
func (r *GormCategoryRepository) Save(ctx context.Context, c *catalog.Category) error {
	m := &models.CategoryModel{}
	m.FromDomain(c)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(m).Error; err != nil {
			return fmt.Errorf("save category: %w", err)
		}
		for i := range m.SubCategories {
			if err := tx.Save(&m.SubCategories[i]).Error; err != nil {
				return fmt.Errorf("save sub-category: %w", err)
			}
		}
		return nil
	})
}

// Ensure GormCategoryRepository implements CategoryRepository
var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
