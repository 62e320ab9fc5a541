package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/content"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormArticleRepository implements content.ArticleRepository using GORM
type GormArticleRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormArticleRepository creates a new GormArticleRepository
func NewGormArticleRepository(db *gorm.DB) *GormArticleRepository {
	return &GormArticleRepository{db: db, now: time.Now}
}

// FindPublishedByID finds a published article
func (r *GormArticleRepository) FindPublishedByID(ctx context.Context, id uuid.UUID) (*content.Article, error) {
	var m models.ArticleModel
	err := r.published(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// ListPublished pages through published articles, newest first unless the
// filter names another whitelisted column
func (r *GormArticleRepository) ListPublished(ctx context.Context, filter shared.Filter) (shared.Paginated[content.Article], error) {
	filter.Normalize()

	var total int64
	if err := r.published(ctx).Count(&total).Error; err != nil {
		return shared.Paginated[content.Article]{}, fmt.Errorf("count articles: %w", err)
	}

	orderBy := ValidateSortField(filter.OrderBy, ArticleSortFields, "published_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var ms []models.ArticleModel
	err := r.published(ctx).
		Order(orderBy + " " + orderDir).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&ms).Error
	if err != nil {
		return shared.Paginated[content.Article]{}, fmt.Errorf("list articles: %w", err)
	}

	articles := make([]content.Article, len(ms))
	for i := range ms {
		articles[i] = *ms[i].ToDomain()
	}
	return shared.NewPaginated(articles, total, filter.Page, filter.PageSize), nil
}

// Save creates or updates an article
func (r *GormArticleRepository) Save(ctx context.Context, a *content.Article) error {
	m := &models.ArticleModel{}
	m.FromDomain(a)
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *GormArticleRepository) published(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.ArticleModel{}).
		Where("published_at IS NOT NULL AND published_at <= ?", r.now())
}

// Ensure GormArticleRepository implements ArticleRepository
var _ content.ArticleRepository = (*GormArticleRepository)(nil)

// GormPaymentMethodRepository implements content.PaymentMethodRepository using GORM
type GormPaymentMethodRepository struct {
	db *gorm.DB
}

// NewGormPaymentMethodRepository creates a new GormPaymentMethodRepository
func NewGormPaymentMethodRepository(db *gorm.DB) *GormPaymentMethodRepository {
	return &GormPaymentMethodRepository{db: db}
}

// ListActive returns active methods ordered by sort order then name
func (r *GormPaymentMethodRepository) ListActive(ctx context.Context) ([]content.PaymentMethod, error) {
	var ms []models.PaymentMethodModel
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("sort_order ASC").
		Order("name ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	methods := make([]content.PaymentMethod, len(ms))
	for i := range ms {
		methods[i] = ms[i].ToDomain()
	}
	return methods, nil
}

// Save creates or updates a payment method
func (r *GormPaymentMethodRepository) Save(ctx context.Context, p *content.PaymentMethod) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m := &models.PaymentMethodModel{}
	m.FromDomain(p)
	return r.db.WithContext(ctx).Save(m).Error
}

// Ensure GormPaymentMethodRepository implements PaymentMethodRepository
var _ content.PaymentMethodRepository = (*GormPaymentMethodRepository)(nil)
