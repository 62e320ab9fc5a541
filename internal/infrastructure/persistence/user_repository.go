package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByFirebaseUID finds a user by Firebase UID
func (r *GormUserRepository) FindByFirebaseUID(ctx context.Context, uid string) (*identity.User, error) {
	return r.findOne(ctx, "firebase_uid = ?", uid)
}

// FindByEmail finds a user by email, case-insensitively
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	return r.findOne(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

// FindSellerBySlug finds a seller and counts its listed products
func (r *GormUserRepository) FindSellerBySlug(ctx context.Context, slug string) (*identity.User, int64, error) {
	user, err := r.findOne(ctx, "seller_slug = ? AND is_seller = ?", slug, true)
	if err != nil {
		return nil, 0, err
	}

	var count int64
	err = r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("seller_id = ? AND parent_id IS NULL", user.ID).
		Count(&count).Error
	if err != nil {
		return nil, 0, err
	}
	return user, count, nil
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Save(models.UserModelFromDomain(user)).Error
}

// SellerSlugTaken reports whether a user other than exceptID uses slug
func (r *GormUserRepository) SellerSlugTaken(ctx context.Context, slug string, exceptID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("seller_slug = ? AND id <> ?", slug, exceptID).
		Count(&count).Error
	return count > 0, err
}

// CountSellers counts users with a storefront
func (r *GormUserRepository) CountSellers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserModel{}).Where("is_seller = ?", true).Count(&count).Error
	return count, err
}

// CountBuyers counts users without a storefront
func (r *GormUserRepository) CountBuyers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserModel{}).Where("is_seller = ?", false).Count(&count).Error
	return count, err
}

func (r *GormUserRepository) findOne(ctx context.Context, query string, args ...any) (*identity.User, error) {
	var m models.UserModel
	if err := r.db.WithContext(ctx).Where(query, args...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// Ensure GormUserRepository implements UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)
