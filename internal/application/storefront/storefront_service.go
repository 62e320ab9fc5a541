// Package storefront builds the public seller pages.
package storefront

import (
	"context"
	"errors"

	"github.com/google/uuid"
	appaddress "github.com/marketplace/backend/internal/application/address"
	appcatalog "github.com/marketplace/backend/internal/application/catalog"
	"github.com/marketplace/backend/internal/domain/address"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Query is the seller page query string after parsing
type Query struct {
	Price      string
	Rating     string
	OrderBy    string
	CategoryID *uuid.UUID
	Page       int
}

// Seller is the storefront header
type Seller struct {
	ID          uuid.UUID
	Name        string
	SellerName  string
	Slug        string
	Description string
	Image       string
	JoinedYear  int
	Address     *appaddress.AddressResponse
}

// Page is everything the seller page renders
type Page struct {
	Seller        Seller
	ProductsCount int64
	Rating        float64
	Categories    []appcatalog.CategoryResponse
	Products      shared.Paginated[appcatalog.ProductResponse]
	Query         Query
}

// Service assembles storefronts
type Service struct {
	users      identity.UserRepository
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	addresses  address.Repository
}

// NewService creates a storefront Service
func NewService(
	users identity.UserRepository,
	products catalog.ProductRepository,
	categories catalog.CategoryRepository,
	addresses address.Repository,
) *Service {
	return &Service{users: users, products: products, categories: categories, addresses: addresses}
}

// SellerPage loads the storefront of the seller with slug. Unknown slugs
// return shared.ErrNotFound.
func (s *Service) SellerPage(ctx context.Context, slug string, q Query) (*Page, error) {
	seller, count, err := s.users.FindSellerBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	page := &Page{
		Seller: Seller{
			ID:          seller.ID,
			Name:        seller.Name,
			SellerName:  seller.SellerName,
			Slug:        seller.SellerSlug,
			Description: seller.SellerDescription,
			Image:       seller.Image,
			JoinedYear:  seller.CreatedAt.Year(),
		},
		ProductsCount: count,
		Query:         q,
	}

	main, err := s.addresses.FindMain(ctx, seller.ID)
	switch {
	case err == nil:
		a := appaddress.ToAddressResponse(main)
		page.Seller.Address = &a
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	if page.Rating, err = s.products.SellerAverageRating(ctx, seller.ID); err != nil {
		return nil, err
	}

	categories, err := s.categories.FindAllWithCounts(ctx, &seller.ID)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].ProductsCount == 0 {
			continue
		}
		page.Categories = append(page.Categories, appcatalog.ToCategoryResponse(&categories[i]))
	}

	params := catalog.StorefrontParams{
		SellerID:   seller.ID,
		Price:      q.Price,
		Rating:     q.Rating,
		OrderBy:    q.OrderBy,
		CategoryID: q.CategoryID,
		Page:       q.Page,
	}
	products, err := s.products.Search(ctx, params.Query())
	if err != nil {
		return nil, err
	}
	page.Products = shared.MapPaginated(products, func(p catalog.Product) appcatalog.ProductResponse {
		return appcatalog.ToProductResponse(&p)
	})
	return page, nil
}
