package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/application/upload"
	"github.com/marketplace/backend/internal/domain/address"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shipping"
)

// SellerResponse is the seller block shown with a product
type SellerResponse struct {
	ID          uuid.UUID              `json:"id"`
	Name        string                 `json:"name"`
	SellerName  string                 `json:"seller_name"`
	SellerSlug  string                 `json:"seller_slug"`
	Image       string                 `json:"image"`
	MainAddress *SellerAddressResponse `json:"address,omitempty"`
}

// SellerAddressResponse is the public part of a seller's main address
type SellerAddressResponse struct {
	ProvinceName    string `json:"province_name"`
	CityName        string `json:"city_name"`
	SubdistrictName string `json:"subdistrict_name"`
}

// ProductResponse is a product in listings
type ProductResponse struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Slug             string          `json:"slug"`
	VariantName      string          `json:"variant_name,omitempty"`
	CategoryID       uuid.UUID       `json:"category_id"`
	SubCategoryID    *uuid.UUID      `json:"sub_category_id"`
	Price            int64           `json:"price"`
	Discount         *int            `json:"discount"`
	FinalPrice       int64           `json:"final_price"`
	Stock            int             `json:"stock"`
	Weight           int             `json:"weight"`
	Unit             string          `json:"unit"`
	Images           []string        `json:"images"`
	Thumbnail        string          `json:"thumbnail"`
	ReviewsAvgRating *float64        `json:"reviews_avg_rating"`
	TotalSell        int64           `json:"total_sell"`
	Seller           *SellerResponse `json:"seller,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ProductDetailResponse is a product with its full description, relations and stats
type ProductDetailResponse struct {
	ProductResponse
	Description  string            `json:"description"`
	ReviewsCount int64             `json:"reviews_count"`
	TotalImages  int64             `json:"total_images"`
	Category     *CategoryResponse `json:"category,omitempty"`
	Variants     []ProductResponse `json:"variants"`
}

// ProductPageResponse is the product detail page payload
type ProductPageResponse struct {
	Product                *ProductDetailResponse `json:"product"`
	RatingSeller           float64                `json:"rating_seller"`
	DeliveryService        []shipping.CostOption  `json:"delivery_service"`
	RelatedProducts        []ProductResponse      `json:"related_products"`
	ProductsFromSameSeller []ProductResponse      `json:"products_from_same_seller"`
}

// SubCategoryResponse is a sub-category
type SubCategoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// CategoryResponse is a category with its listed product count
type CategoryResponse struct {
	ID            uuid.UUID             `json:"id"`
	Name          string                `json:"name"`
	Slug          string                `json:"slug"`
	Image         string                `json:"image"`
	ProductsCount int64                 `json:"products_count"`
	SubCategories []SubCategoryResponse `json:"sub_categories"`
}

// ImageInput is one element of the images field: an uploaded file or a URL
// that is kept as is
type ImageInput struct {
	URL  string
	File *upload.File
}

// StoreProductInput is the store-or-update payload after transport decoding
type StoreProductInput struct {
	ID            *uuid.UUID
	Name          string
	CategoryID    uuid.UUID
	SubCategoryID *uuid.UUID
	Price         int64
	Discount      *int
	Stock         int
	Weight        int
	Unit          string
	Description   string
	Images        []ImageInput

	// Variants is nil when the field was not sent; existing variants are then
	// left alone. An empty slice removes every variant.
	Variants []catalog.VariantInput
}

// StoreProductResult reports what StoreOrUpdate did
type StoreProductResult struct {
	Product *ProductDetailResponse
	Created bool
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	r := ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		VariantName:      p.VariantName,
		CategoryID:       p.CategoryID,
		SubCategoryID:    p.SubCategoryID,
		Price:            p.Price,
		Discount:         p.Discount,
		FinalPrice:       p.FinalPrice().Int64(),
		Stock:            p.Stock,
		Weight:           p.Weight,
		Unit:             p.Unit,
		Images:           p.Images,
		ReviewsAvgRating: p.Stats.ReviewsAvgRating,
		TotalSell:        p.Stats.TotalSell,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if r.Images == nil {
		r.Images = []string{}
	}
	if len(r.Images) > 0 {
		r.Thumbnail = r.Images[0]
	}
	if p.Seller != nil {
		r.Seller = &SellerResponse{
			ID:         p.Seller.ID,
			Name:       p.Seller.Name,
			SellerName: p.Seller.SellerName,
			SellerSlug: p.Seller.SellerSlug,
			Image:      p.Seller.Image,
		}
	}
	return r
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}

// ToProductDetailResponse converts a product loaded with FindDetail
func ToProductDetailResponse(p *catalog.Product) *ProductDetailResponse {
	d := &ProductDetailResponse{
		ProductResponse: ToProductResponse(p),
		Description:     p.Description,
		ReviewsCount:    p.Stats.ReviewsCount,
		TotalImages:     p.Stats.TotalImages,
		Variants:        ToProductResponses(p.Variants),
	}
	if p.Category != nil {
		c := ToCategoryResponse(p.Category)
		d.Category = &c
	}
	return d
}

// ToCategoryResponse converts a domain Category
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	r := CategoryResponse{
		ID:            c.ID,
		Name:          c.Name,
		Slug:          c.Slug,
		Image:         c.Image,
		ProductsCount: c.ProductsCount,
		SubCategories: make([]SubCategoryResponse, 0, len(c.SubCategories)),
	}
	for _, sc := range c.SubCategories {
		r.SubCategories = append(r.SubCategories, SubCategoryResponse{ID: sc.ID, Name: sc.Name, Slug: sc.Slug})
	}
	return r
}

func toSellerAddress(a *address.Address) *SellerAddressResponse {
	if a == nil {
		return nil
	}
	return &SellerAddressResponse{
		ProvinceName:    a.ProvinceName,
		CityName:        a.CityName,
		SubdistrictName: a.SubdistrictName,
	}
}
