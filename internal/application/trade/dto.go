package trade

import (
	"github.com/google/uuid"
	appaddress "github.com/marketplace/backend/internal/application/address"
	"github.com/marketplace/backend/internal/domain/shipping"
	"github.com/marketplace/backend/internal/domain/trade"
)

// PrecheckInput is the cart sent by the checkout page. AddressID selects the
// destination; when nil the buyer's main address is used where one is needed.
type PrecheckInput struct {
	Items     []trade.CartItem
	AddressID *uuid.UUID
	Couriers  []string
}

// CheckoutLineResponse is a priced cart line
type CheckoutLineResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	Name        string    `json:"name"`
	VariantName string    `json:"variant_name,omitempty"`
	Image       string    `json:"image"`
	Quantity    int       `json:"quantity"`
	Price       int64     `json:"price"`
	Discount    *int      `json:"discount"`
	FinalPrice  int64     `json:"final_price"`
	Subtotal    int64     `json:"subtotal"`
	Weight      int       `json:"weight"`
	Stock       int       `json:"stock"`
	InStock     bool      `json:"in_stock"`
}

// CheckoutSellerResponse identifies the seller of a group
type CheckoutSellerResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	SellerName string    `json:"seller_name"`
	SellerSlug string    `json:"seller_slug"`
}

// SellerGroupResponse is the part of the cart shipped by one seller
type SellerGroupResponse struct {
	SellerID        uuid.UUID                   `json:"seller_id"`
	Seller          *CheckoutSellerResponse     `json:"seller"`
	Lines           []CheckoutLineResponse      `json:"items"`
	Subtotal        int64                       `json:"subtotal"`
	Weight          int                         `json:"weight"`
	Origin          *appaddress.AddressResponse `json:"origin,omitempty"`
	DeliveryOptions []shipping.CostOption       `json:"delivery_options,omitempty"`
}

// CheckoutResponse is the priced cart
type CheckoutResponse struct {
	Groups            []SellerGroupResponse       `json:"groups"`
	Subtotal          int64                       `json:"subtotal"`
	SubtotalFormatted string                      `json:"subtotal_formatted"`
	TotalQuantity     int                         `json:"total_quantity"`
	TotalWeight       int                         `json:"total_weight"`
	Address           *appaddress.AddressResponse `json:"address,omitempty"`
}

// ToCheckoutResponse converts a domain Checkout
func ToCheckoutResponse(c *trade.Checkout) *CheckoutResponse {
	resp := &CheckoutResponse{
		Groups:            make([]SellerGroupResponse, len(c.Groups)),
		Subtotal:          c.Subtotal.Int64(),
		SubtotalFormatted: c.Subtotal.String(),
		TotalQuantity:     c.TotalQuantity,
		TotalWeight:       c.TotalWeight,
	}
	for i, g := range c.Groups {
		group := SellerGroupResponse{
			SellerID: g.SellerID,
			Lines:    make([]CheckoutLineResponse, len(g.Lines)),
			Subtotal: g.Subtotal.Int64(),
			Weight:   g.Weight,
		}
		if g.Seller != nil {
			group.Seller = &CheckoutSellerResponse{
				ID:         g.Seller.ID,
				Name:       g.Seller.Name,
				SellerName: g.Seller.SellerName,
				SellerSlug: g.Seller.SellerSlug,
			}
		}
		for j, l := range g.Lines {
			line := CheckoutLineResponse{
				ProductID:   l.Product.ID,
				Name:        l.Product.Name,
				VariantName: l.Product.VariantName,
				Quantity:    l.Quantity,
				Price:       l.UnitPrice.Int64(),
				Discount:    l.Product.Discount,
				FinalPrice:  l.FinalPrice.Int64(),
				Subtotal:    l.Subtotal.Int64(),
				Weight:      l.Weight,
				Stock:       l.Product.Stock,
				InStock:     l.InStock,
			}
			if len(l.Product.Images) > 0 {
				line.Image = l.Product.Images[0]
			}
			group.Lines[j] = line
		}
		resp.Groups[i] = group
	}
	return resp
}
