package models

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// ProductModel is the persistence model for the Product domain entity.
// Variants are rows of the same table pointing at their parent.
type ProductModel struct {
	BaseModel
	SellerID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	CategoryID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	SubCategoryID *uuid.UUID     `gorm:"type:uuid;index"`
	ParentID      *uuid.UUID     `gorm:"type:uuid;index"`
	Name          string         `gorm:"type:varchar(255);not null"`
	Slug          string         `gorm:"type:varchar(300);not null;index"`
	VariantName   string         `gorm:"type:varchar(255)"`
	Price         int64          `gorm:"not null;default:0"`
	Discount      *int           `gorm:"index"`
	Stock         int            `gorm:"not null;default:0"`
	Weight        int            `gorm:"not null;default:1"`
	Unit          string         `gorm:"type:varchar(255);not null"`
	Description   string         `gorm:"type:text;not null"`
	Images        []string       `gorm:"type:text;serializer:json"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`

	// Aggregates selected by listing queries; never written.
	ReviewsAvgRating *float64 `gorm:"->;-:migration"`
	ReviewsCount     int64    `gorm:"->;-:migration"`
	TotalSell        int64    `gorm:"->;-:migration"`
	TotalImages      int64    `gorm:"->;-:migration"`

	Seller   *UserModel     `gorm:"foreignKey:SellerID"`
	Category *CategoryModel `gorm:"foreignKey:CategoryID"`
	Variants []ProductModel `gorm:"foreignKey:ParentID"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
// Loaded relations are converted as well.
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		BaseEntity:    m.BaseModel.ToDomain(),
		SellerID:      m.SellerID,
		CategoryID:    m.CategoryID,
		SubCategoryID: m.SubCategoryID,
		ParentID:      m.ParentID,
		Name:          m.Name,
		Slug:          m.Slug,
		VariantName:   m.VariantName,
		Price:         m.Price,
		Discount:      m.Discount,
		Stock:         m.Stock,
		Weight:        m.Weight,
		Unit:          m.Unit,
		Description:   m.Description,
		Images:        m.Images,
		Stats: catalog.ProductStats{
			ReviewsAvgRating: m.ReviewsAvgRating,
			ReviewsCount:     m.ReviewsCount,
			TotalSell:        m.TotalSell,
			TotalImages:      m.TotalImages,
		},
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if m.Seller != nil {
		p.Seller = &catalog.SellerSummary{
			ID:         m.Seller.ID,
			Name:       m.Seller.Name,
			SellerName: m.Seller.SellerName,
			SellerSlug: derefString(m.Seller.SellerSlug),
			Image:      m.Seller.Image,
		}
	}
	if m.Category != nil {
		p.Category = m.Category.ToDomain()
	}
	for i := range m.Variants {
		p.Variants = append(p.Variants, *m.Variants[i].ToDomain())
	}
	return p
}

// FromDomain populates the persistence model from a domain Product entity.
// Relations and aggregates are not copied.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.SellerID = p.SellerID
	m.CategoryID = p.CategoryID
	m.SubCategoryID = p.SubCategoryID
	m.ParentID = p.ParentID
	m.Name = p.Name
	m.Slug = p.Slug
	m.VariantName = p.VariantName
	m.Price = p.Price
	m.Discount = p.Discount
	m.Stock = p.Stock
	m.Weight = p.Weight
	m.Unit = p.Unit
	m.Description = p.Description
	m.Images = p.Images
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// CategoryModel is the persistence model for the Category domain entity.
type CategoryModel struct {
	BaseModel
	Name          string             `gorm:"type:varchar(255);not null"`
	Slug          string             `gorm:"type:varchar(300);not null;uniqueIndex"`
	Image         string             `gorm:"type:varchar(500)"`
	SubCategories []SubCategoryModel `gorm:"foreignKey:CategoryID"`

	ProductsCount int64 `gorm:"->;-:migration"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	c := &catalog.Category{
		BaseEntity:    m.BaseModel.ToDomain(),
		Name:          m.Name,
		Slug:          m.Slug,
		Image:         m.Image,
		ProductsCount: m.ProductsCount,
	}
	for _, sc := range m.SubCategories {
		c.SubCategories = append(c.SubCategories, catalog.SubCategory{
			BaseEntity: sc.BaseModel.ToDomain(),
			CategoryID: sc.CategoryID,
			Name:       sc.Name,
			Slug:       sc.Slug,
		})
	}
	return c
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Slug = c.Slug
	m.Image = c.Image
	m.SubCategories = make([]SubCategoryModel, 0, len(c.SubCategories))
	for _, sc := range c.SubCategories {
		sm := SubCategoryModel{CategoryID: c.ID, Name: sc.Name, Slug: sc.Slug}
		sm.FromDomainBaseEntity(sc.BaseEntity)
		m.SubCategories = append(m.SubCategories, sm)
	}
}

// SubCategoryModel is the persistence model for sub-categories
type SubCategoryModel struct {
	BaseModel
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Slug       string    `gorm:"type:varchar(300);not null"`
}

// TableName returns the table name for GORM
func (SubCategoryModel) TableName() string {
	return "sub_categories"
}
