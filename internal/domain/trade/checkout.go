package trade

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shared/valueobject"
)

// CartItem is one requested product and quantity
type CartItem struct {
	ProductID uuid.UUID
	Quantity  int
}

// CheckoutLine is a priced cart item
type CheckoutLine struct {
	Product    catalog.Product
	Quantity   int
	UnitPrice  valueobject.Money
	FinalPrice valueobject.Money
	Subtotal   valueobject.Money
	Weight     int
	InStock    bool
}

// SellerGroup collects the lines shipped by one seller
type SellerGroup struct {
	SellerID uuid.UUID
	Seller   *catalog.SellerSummary
	Lines    []CheckoutLine
	Subtotal valueobject.Money
	Weight   int
}

// Checkout is a priced cart grouped by seller
type Checkout struct {
	Groups        []SellerGroup
	Subtotal      valueobject.Money
	TotalQuantity int
	TotalWeight   int
}

// BuildCheckout prices items against products. Duplicate product ids are
// merged; groups keep the order in which sellers first appear in items.
func BuildCheckout(items []CartItem, products []catalog.Product) (*Checkout, error) {
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "At least one item is required")
	}

	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var order []uuid.UUID
	quantities := make(map[uuid.UUID]int)
	var missing []string
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
		}
		if _, ok := byID[item.ProductID]; !ok {
			missing = append(missing, item.ProductID.String())
			continue
		}
		if _, seen := quantities[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		quantities[item.ProductID] += item.Quantity
	}
	if len(missing) > 0 {
		return nil, shared.ErrNotFound.WithMessage("Product not found: " + strings.Join(missing, ", "))
	}

	c := &Checkout{Subtotal: valueobject.ZeroMoney()}
	groupIndex := make(map[uuid.UUID]int)
	for _, id := range order {
		p := byID[id]
		qty := quantities[id]
		final := p.FinalPrice()
		line := CheckoutLine{
			Product:    p,
			Quantity:   qty,
			UnitPrice:  valueobject.NewMoneyFromInt(p.Price),
			FinalPrice: final,
			Subtotal:   final.MultiplyByInt(int64(qty)),
			Weight:     p.Weight * qty,
			InStock:    p.HasStock(qty),
		}

		idx, ok := groupIndex[p.SellerID]
		if !ok {
			idx = len(c.Groups)
			groupIndex[p.SellerID] = idx
			c.Groups = append(c.Groups, SellerGroup{
				SellerID: p.SellerID,
				Seller:   p.Seller,
				Subtotal: valueobject.ZeroMoney(),
			})
		}
		g := &c.Groups[idx]
		g.Lines = append(g.Lines, line)
		g.Subtotal = g.Subtotal.Add(line.Subtotal)
		g.Weight += line.Weight

		c.Subtotal = c.Subtotal.Add(line.Subtotal)
		c.TotalQuantity += qty
		c.TotalWeight += line.Weight
	}
	return c, nil
}

// RequireStock fails with INSUFFICIENT_STOCK naming the first short line
func (c *Checkout) RequireStock() error {
	for _, g := range c.Groups {
		for _, l := range g.Lines {
			if !l.InStock {
				return shared.ErrInsufficientStock.WithMessage(
					fmt.Sprintf("Stok %s tidak mencukupi (tersisa %d)", l.Product.Name, l.Product.Stock))
			}
		}
	}
	return nil
}
