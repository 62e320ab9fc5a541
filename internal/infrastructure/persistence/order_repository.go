package persistence

import (
	"context"
	"fmt"

	"github.com/marketplace/backend/internal/domain/trade"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save creates or updates an order with its items
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	m := models.OrderModelFromDomain(order)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(m).Error; err != nil {
			return fmt.Errorf("save order: %w", err)
		}
		for i := range m.Items {
			if err := tx.Save(&m.Items[i]).Error; err != nil {
				return fmt.Errorf("save order item: %w", err)
			}
		}
		return nil
	})
}

// CountByStatus counts orders in status
func (r *GormOrderRepository) CountByStatus(ctx context.Context, status trade.OrderStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// Ensure GormOrderRepository implements OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
