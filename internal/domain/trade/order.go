package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shared/valueobject"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusProcessed OrderStatus = "processed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDone      OrderStatus = "done"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusProcessed, OrderStatusShipped, OrderStatusDone, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusPaid || target == OrderStatusCancelled
	case OrderStatusPaid:
		return target == OrderStatusProcessed || target == OrderStatusCancelled
	case OrderStatusProcessed:
		return target == OrderStatusShipped
	case OrderStatusShipped:
		return target == OrderStatusDone
	}
	return false
}

// OrderItem is one product line of an order
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	Price     int64
	CreatedAt time.Time
}

// Subtotal returns quantity times the captured unit price
func (i OrderItem) Subtotal() valueobject.Money {
	return valueobject.NewMoneyFromInt(i.Price).MultiplyByInt(int64(i.Quantity))
}

// Order is a purchase from a single seller
type Order struct {
	shared.BaseEntity
	BuyerID        uuid.UUID
	SellerID       uuid.UUID
	AddressID      *uuid.UUID
	Invoice        string
	Status         OrderStatus
	Courier        string
	CourierService string
	ShippingCost   int64
	Subtotal       int64
	Total          int64
	Items          []OrderItem
}

// NewOrder creates a pending order for buyerID from sellerID
func NewOrder(buyerID, sellerID uuid.UUID) (*Order, error) {
	if buyerID == uuid.Nil || sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Buyer and seller are required")
	}
	o := &Order{
		BaseEntity: shared.NewBaseEntity(),
		BuyerID:    buyerID,
		SellerID:   sellerID,
		Status:     OrderStatusPending,
	}
	o.Invoice = fmt.Sprintf("INV/%s/%s", o.CreatedAt.Format("20060102"), o.ID.String()[:8])
	return o, nil
}

// AddItem appends a product line at the given unit price
func (o *Order) AddItem(productID uuid.UUID, quantity int, price int64) error {
	if o.Status != OrderStatusPending {
		return shared.ErrInvalidState.WithMessage("Items can only be added to pending orders")
	}
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	o.Items = append(o.Items, OrderItem{
		ID:        uuid.New(),
		OrderID:   o.ID,
		ProductID: productID,
		Quantity:  quantity,
		Price:     price,
		CreatedAt: time.Now(),
	})
	o.recalculate()
	return nil
}

// SetShipping records the chosen courier service and its cost
func (o *Order) SetShipping(courier, service string, cost int64) {
	o.Courier = courier
	o.CourierService = service
	o.ShippingCost = cost
	o.recalculate()
}

// TransitionTo moves the order to target when the lifecycle allows it
func (o *Order) TransitionTo(target OrderStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.ErrInvalidState.WithMessage(
			fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}
	o.Status = target
	o.Touch()
	return nil
}

// IsDone returns true once the buyer has received the order
func (o *Order) IsDone() bool {
	return o.Status == OrderStatusDone
}

func (o *Order) recalculate() {
	subtotal := valueobject.ZeroMoney()
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Subtotal())
	}
	o.Subtotal = subtotal.Int64()
	o.Total = subtotal.Add(valueobject.NewMoneyFromInt(o.ShippingCost)).Int64()
	o.Touch()
}
