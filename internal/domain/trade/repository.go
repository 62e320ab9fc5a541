package trade

import (
	"context"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// Save creates or updates an order with its items
	Save(ctx context.Context, order *Order) error

	// CountByStatus counts orders in status
	CountByStatus(ctx context.Context, status OrderStatus) (int64, error)
}
