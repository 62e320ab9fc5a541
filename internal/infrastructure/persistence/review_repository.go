package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/review"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReviewRepository implements review.Repository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Save creates or updates a review
func (r *GormReviewRepository) Save(ctx context.Context, rv *review.Review) error {
	m := &models.ReviewModel{}
	m.FromDomain(rv)
	return r.db.WithContext(ctx).Save(m).Error
}

// CountImages sums the photo counts of a product's reviews
func (r *GormReviewRepository) CountImages(ctx context.Context, productID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.ReviewModel{}).
		Select("COALESCE(SUM(image_count), 0)").
		Where("product_id = ?", productID).
		Scan(&total).Error
	return total, err
}

// Ensure GormReviewRepository implements review.Repository
var _ review.Repository = (*GormReviewRepository)(nil)
