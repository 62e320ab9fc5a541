package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/trade"
)

// OrderModel is the persistence model for the Order domain entity.
type OrderModel struct {
	BaseModel
	BuyerID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	SellerID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	AddressID      *uuid.UUID        `gorm:"type:uuid"`
	Invoice        string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	Status         trade.OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Courier        string            `gorm:"type:varchar(30)"`
	CourierService string            `gorm:"type:varchar(100)"`
	ShippingCost   int64             `gorm:"not null;default:0"`
	Subtotal       int64             `gorm:"not null;default:0"`
	Total          int64             `gorm:"not null;default:0"`
	Items          []OrderItemModel  `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *trade.Order {
	o := &trade.Order{
		BaseEntity:     m.BaseModel.ToDomain(),
		BuyerID:        m.BuyerID,
		SellerID:       m.SellerID,
		AddressID:      m.AddressID,
		Invoice:        m.Invoice,
		Status:         m.Status,
		Courier:        m.Courier,
		CourierService: m.CourierService,
		ShippingCost:   m.ShippingCost,
		Subtotal:       m.Subtotal,
		Total:          m.Total,
		Items:          make([]trade.OrderItem, 0, len(m.Items)),
	}
	for _, it := range m.Items {
		o.Items = append(o.Items, trade.OrderItem{
			ID:        it.ID,
			OrderID:   it.OrderID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			CreatedAt: it.CreatedAt,
		})
	}
	return o
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.BuyerID = o.BuyerID
	m.SellerID = o.SellerID
	m.AddressID = o.AddressID
	m.Invoice = o.Invoice
	m.Status = o.Status
	m.Courier = o.Courier
	m.CourierService = o.CourierService
	m.ShippingCost = o.ShippingCost
	m.Subtotal = o.Subtotal
	m.Total = o.Total
	m.Items = make([]OrderItemModel, 0, len(o.Items))
	for _, it := range o.Items {
		m.Items = append(m.Items, OrderItemModel{
			ID:        it.ID,
			OrderID:   o.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			CreatedAt: it.CreatedAt,
		})
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for order lines
type OrderItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int       `gorm:"not null"`
	Price     int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}
