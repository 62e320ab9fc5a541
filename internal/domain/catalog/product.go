package catalog

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shared/valueobject"
)

// Product is a sellable catalog item. A product with ParentID set is a
// variant of another product and is hidden from listings.
type Product struct {
	shared.BaseEntity
	SellerID      uuid.UUID
	CategoryID    uuid.UUID
	SubCategoryID *uuid.UUID
	ParentID      *uuid.UUID
	Name          string
	Slug          string
	VariantName   string
	Price         int64
	Discount      *int
	Stock         int
	Weight        int
	Unit          string
	Description   string
	Images        []string

	// Populated by read queries only.
	Stats    ProductStats
	Seller   *SellerSummary
	Category *Category
	Variants []Product
}

// ProductStats holds aggregates computed over reviews and completed orders
type ProductStats struct {
	ReviewsAvgRating *float64
	ReviewsCount     int64
	TotalSell        int64
	TotalImages      int64
}

// SellerSummary is the part of a user account shown next to a product
type SellerSummary struct {
	ID            uuid.UUID
	Name          string
	SellerName    string
	SellerSlug    string
	Image         string
	ProductsCount int64
}

// ProductInput carries the editable attributes of a product
type ProductInput struct {
	Name          string
	CategoryID    uuid.UUID
	SubCategoryID *uuid.UUID
	Price         int64
	Discount      *int
	Stock         int
	Weight        int
	Unit          string
	Description   string
	Images        []string
}

// NewProduct creates a product owned by sellerID
func NewProduct(sellerID uuid.UUID, in ProductInput) (*Product, error) {
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller is required")
	}
	p := &Product{
		BaseEntity: shared.NewBaseEntity(),
		SellerID:   sellerID,
	}
	if err := p.Apply(in); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply validates in and copies it onto the product
func (p *Product) Apply(in ProductInput) error {
	if err := validateProductInput(in); err != nil {
		return err
	}
	p.Name = strings.TrimSpace(in.Name)
	p.Slug = valueobject.Slugify(p.Name)
	p.CategoryID = in.CategoryID
	p.SubCategoryID = in.SubCategoryID
	p.Price = in.Price
	p.Discount = in.Discount
	p.Stock = in.Stock
	p.Weight = in.Weight
	p.Unit = strings.TrimSpace(in.Unit)
	p.Description = in.Description
	p.Images = append([]string(nil), in.Images...)
	p.UpdatedAt = time.Now()
	return nil
}

// IsVariant returns true if the product is a variant of another product
func (p *Product) IsVariant() bool {
	return p.ParentID != nil
}

// IsOwnedBy returns true if userID is the product's seller
func (p *Product) IsOwnedBy(userID uuid.UUID) bool {
	return p.SellerID == userID
}

// HasPromo returns true if a discount is set
func (p *Product) HasPromo() bool {
	return p.Discount != nil
}

// FinalPrice returns the price after discount
func (p *Product) FinalPrice() valueobject.Money {
	price := valueobject.NewMoneyFromInt(p.Price)
	if p.Discount == nil {
		return price
	}
	return price.ApplyDiscount(*p.Discount)
}

// HasStock returns true if qty units can be sold
func (p *Product) HasStock(qty int) bool {
	return qty > 0 && p.Stock >= qty
}

func validateProductInput(in ProductInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 255 characters")
	}
	if in.CategoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Category is required")
	}
	if in.Price < 0 {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if in.Stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	if in.Weight < 1 {
		return shared.NewDomainError("INVALID_WEIGHT", "Weight must be at least 1 gram")
	}
	if in.Discount != nil && (*in.Discount < 1 || *in.Discount > 100) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount must be between 1 and 100 percent")
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	if utf8.RuneCountInString(unit) > 255 {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot exceed 255 characters")
	}
	if strings.TrimSpace(in.Description) == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if len(in.Images) == 0 {
		return shared.NewDomainError("INVALID_IMAGES", "At least one image is required")
	}
	return nil
}
