package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Aggregate columns computed per product row. They are plain correlated
// subqueries so the same SQL runs on PostgreSQL and SQLite.
const (
	reviewsAvgRatingColumn = `(SELECT AVG(reviews.rating) FROM reviews WHERE reviews.product_id = products.id) AS reviews_avg_rating`
	reviewsCountColumn     = `(SELECT COUNT(*) FROM reviews WHERE reviews.product_id = products.id) AS reviews_count`
	totalSellColumn        = `(SELECT COALESCE(SUM(order_items.quantity), 0) FROM order_items JOIN orders ON orders.id = order_items.order_id WHERE order_items.product_id = products.id AND orders.status = 'done') AS total_sell`
	totalImagesColumn      = `(SELECT COALESCE(SUM(reviews.image_count), 0) FROM reviews WHERE reviews.product_id = products.id) AS total_images`
)

var (
	listingColumns = []string{"products.*", reviewsAvgRatingColumn, totalSellColumn}
	detailColumns  = []string{"products.*", reviewsAvgRatingColumn, reviewsCountColumn, totalSellColumn, totalImagesColumn}
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a live product without relations or aggregates
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var m models.ProductModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindDetail finds a product with category, seller, variants and stats loaded
func (r *GormProductRepository) FindDetail(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var m models.ProductModel
	err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Select(detailColumns).
		Preload("Seller").
		Preload("Category.SubCategories").
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("products.id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByIDs finds live products by ID with their seller loaded
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var ms []models.ProductModel
	if err := r.db.WithContext(ctx).Preload("Seller").Where("id IN ?", ids).Find(&ms).Error; err != nil {
		return nil, err
	}
	return toProducts(ms), nil
}

// Search runs a paginated listing with seller and stats loaded
func (r *GormProductRepository) Search(ctx context.Context, q catalog.ProductQuery) (shared.Paginated[catalog.Product], error) {
	page := q.Pagination()

	var total int64
	if err := r.filtered(ctx, q).Count(&total).Error; err != nil {
		return shared.Paginated[catalog.Product]{}, fmt.Errorf("count products: %w", err)
	}

	var ms []models.ProductModel
	err := r.filtered(ctx, q).
		Select(listingColumns).
		Preload("Seller").
		Scopes(orderProducts(q)).
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&ms).Error
	if err != nil {
		return shared.Paginated[catalog.Product]{}, fmt.Errorf("list products: %w", err)
	}

	return shared.NewPaginated(toProducts(ms), total, page.Page, page.PageSize), nil
}

// Sample returns up to limit products matching q. The order follows q.Sorts,
// or is random when q.Random is set.
func (r *GormProductRepository) Sample(ctx context.Context, q catalog.ProductQuery, limit int) ([]catalog.Product, error) {
	var ms []models.ProductModel
	err := r.filtered(ctx, q).
		Select(listingColumns).
		Preload("Seller").
		Scopes(orderProducts(q)).
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return toProducts(ms), nil
}

// FindVariants returns the live variants of parentID
func (r *GormProductRepository) FindVariants(ctx context.Context, parentID uuid.UUID) ([]catalog.Product, error) {
	var ms []models.ProductModel
	if err := r.db.WithContext(ctx).Where("parent_id = ?", parentID).Order("created_at ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return toProducts(ms), nil
}

// SaveWithVariants upserts the parent and its variants and soft-deletes
// removed variants in one transaction
func (r *GormProductRepository) SaveWithVariants(ctx context.Context, parent *catalog.Product, plan catalog.VariantPlan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(models.ProductModelFromDomain(parent)).Error; err != nil {
			return fmt.Errorf("save product: %w", err)
		}
		for _, v := range plan.Upserts {
			if err := tx.Omit(clause.Associations).Save(models.ProductModelFromDomain(v)).Error; err != nil {
				return fmt.Errorf("save variant %s: %w", v.VariantName, err)
			}
		}
		if len(plan.Removed) > 0 {
			err := tx.Where("parent_id = ? AND id IN ?", parent.ID, plan.Removed).
				Delete(&models.ProductModel{}).Error
			if err != nil {
				return fmt.Errorf("remove variants: %w", err)
			}
		}
		return nil
	})
}

// Delete soft-deletes a product together with its variants
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ? OR parent_id = ?", id, id).Delete(&models.ProductModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SellerAverageRating averages review ratings over every live product of a seller
func (r *GormProductRepository) SellerAverageRating(ctx context.Context, sellerID uuid.UUID) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(AVG(reviews.rating), 0)
		FROM reviews
		JOIN products ON products.id = reviews.product_id
		WHERE products.seller_id = ? AND products.deleted_at IS NULL`, sellerID).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	return avg, nil
}

// CountListed counts live non-variant products
func (r *GormProductRepository) CountListed(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("parent_id IS NULL").Count(&count).Error
	return count, err
}

// filtered returns a fresh query with the WHERE part of q applied
func (r *GormProductRepository) filtered(ctx context.Context, q catalog.ProductQuery) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{})

	if !q.IncludeVariants {
		query = query.Where("products.parent_id IS NULL")
	}
	if q.SellerID != nil {
		query = query.Where("products.seller_id = ?", *q.SellerID)
	}
	if q.CategoryID != nil {
		query = query.Where("products.category_id = ?", *q.CategoryID)
	}
	if q.ExcludeID != nil {
		query = query.Where("products.id <> ?", *q.ExcludeID)
	}
	if q.PromoOnly {
		query = query.Where("products.discount IS NOT NULL")
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		query = query.Where("LOWER(products.name) LIKE ? ESCAPE '!'", containsPattern(search))
	}
	return query
}

func orderProducts(q catalog.ProductQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.Random {
			return db.Order("RANDOM()")
		}
		for _, s := range q.Sorts {
			db = db.Order(ProductOrderClause(s))
		}
		return db.Order("products.id ASC")
	}
}

func toProducts(ms []models.ProductModel) []catalog.Product {
	products := make([]catalog.Product, len(ms))
	for i := range ms {
		products[i] = *ms[i].ToDomain()
	}
	return products
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern builds a lowercase LIKE pattern matching s literally
// anywhere in the value, with '!' as the escape character
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

