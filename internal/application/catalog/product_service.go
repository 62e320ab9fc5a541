// Package catalog holds the product and category use cases.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/application/upload"
	"github.com/marketplace/backend/internal/domain/address"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shipping"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Number of products in each strip of the detail page
const relatedLimit = 7

// ProductService handles product-related business operations
type ProductService struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	addresses  address.Repository
	shipping   shipping.Provider
	uploader   *upload.Uploader
}

// NewProductService creates a new ProductService
func NewProductService(
	products catalog.ProductRepository,
	categories catalog.CategoryRepository,
	addresses address.Repository,
	shippingProvider shipping.Provider,
	uploader *upload.Uploader,
) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		addresses:  addresses,
		shipping:   shippingProvider,
		uploader:   uploader,
	}
}

// List returns the public product listing
func (s *ProductService) List(ctx context.Context, params catalog.ListParams) (shared.Paginated[ProductResponse], error) {
	page, err := s.products.Search(ctx, params.Query())
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	return shared.MapPaginated(page, func(p catalog.Product) ProductResponse {
		return ToProductResponse(&p)
	}), nil
}

// Show builds the product page. viewerID is the signed-in buyer, if any; it
// only affects the delivery options.
func (s *ProductService) Show(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*ProductPageResponse, error) {
	p, err := s.products.FindDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	sellerAddress, err := s.mainAddress(ctx, p.SellerID)
	if err != nil {
		return nil, err
	}

	page := &ProductPageResponse{Product: ToProductDetailResponse(p)}
	if page.Product.Seller != nil {
		page.Product.Seller.MainAddress = toSellerAddress(sellerAddress)
	}

	page.RatingSeller, err = s.products.SellerAverageRating(ctx, p.SellerID)
	if err != nil {
		return nil, err
	}

	if viewerID != nil && sellerAddress != nil {
		page.DeliveryService = s.deliveryOptions(ctx, *viewerID, sellerAddress, p.Weight)
	}

	related, err := s.products.Sample(ctx, catalog.ProductQuery{
		CategoryID: &p.CategoryID,
		ExcludeID:  &p.ID,
		Random:     true,
	}, relatedLimit)
	if err != nil {
		return nil, err
	}
	page.RelatedProducts = ToProductResponses(related)

	sameSeller, err := s.products.Sample(ctx, catalog.ProductQuery{
		SellerID:  &p.SellerID,
		ExcludeID: &p.ID,
		Random:    true,
	}, relatedLimit)
	if err != nil {
		return nil, err
	}
	page.ProductsFromSameSeller = ToProductResponses(sameSeller)

	return page, nil
}

// SellerProducts lists the caller's own products, newest first
func (s *ProductService) SellerProducts(ctx context.Context, sellerID uuid.UUID, page int) (shared.Paginated[ProductResponse], error) {
	result, err := s.products.Search(ctx, catalog.ProductQuery{
		SellerID: &sellerID,
		Sorts:    []catalog.ProductSort{{Field: catalog.SortByCreatedAt, Desc: true}},
		Page:     page,
		PageSize: shared.DefaultPageSize,
	})
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	return shared.MapPaginated(result, func(p catalog.Product) ProductResponse {
		return ToProductResponse(&p)
	}), nil
}

// StoreOrUpdate creates a product for sellerID, or updates in.ID when set,
// and reconciles its variants in the same transaction
func (s *ProductService) StoreOrUpdate(ctx context.Context, sellerID uuid.UUID, in StoreProductInput) (*StoreProductResult, error) {
	if err := s.checkCategory(ctx, in.CategoryID, in.SubCategoryID); err != nil {
		return nil, err
	}

	var p *catalog.Product
	if in.ID != nil {
		existing, err := s.ownedProduct(ctx, sellerID, *in.ID)
		if err != nil {
			return nil, err
		}
		if existing.IsVariant() {
			return nil, shared.ErrInvalidInput.WithMessage("Variants are edited through their parent product")
		}
		p = existing
	}

	batch := s.uploader.NewBatch()
	result, err := s.saveProduct(ctx, batch, sellerID, p, in)
	if err != nil {
		batch.Discard(ctx)
		return nil, err
	}
	return result, nil
}

// saveProduct uploads the images, applies the input and persists the product
// with its variants. p is nil when a new product is created.
func (s *ProductService) saveProduct(ctx context.Context, batch *upload.Batch, sellerID uuid.UUID, p *catalog.Product, in StoreProductInput) (*StoreProductResult, error) {
	created := p == nil
	images, err := s.resolveImages(ctx, batch, sellerID, in.Images)
	if err != nil {
		return nil, err
	}

	input := catalog.ProductInput{
		Name:          in.Name,
		CategoryID:    in.CategoryID,
		SubCategoryID: in.SubCategoryID,
		Price:         in.Price,
		Discount:      in.Discount,
		Stock:         in.Stock,
		Weight:        in.Weight,
		Unit:          in.Unit,
		Description:   in.Description,
		Images:        images,
	}
	if created {
		p, err = catalog.NewProduct(sellerID, input)
	} else {
		err = p.Apply(input)
	}
	if err != nil {
		return nil, err
	}

	var plan catalog.VariantPlan
	if in.Variants != nil {
		var existing []catalog.Product
		if !created {
			existing, err = s.products.FindVariants(ctx, p.ID)
			if err != nil {
				return nil, err
			}
		}
		plan, err = catalog.ReplicateVariants(p, existing, in.Variants)
		if err != nil {
			return nil, err
		}
	}

	if err := s.products.SaveWithVariants(ctx, p, plan); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("product saved",
		zap.String("product_id", p.ID.String()),
		zap.Bool("created", created),
		zap.Int("uploaded", batch.Len()),
		zap.Int("variants", len(plan.Upserts)),
		zap.Int("variants_removed", len(plan.Removed)),
	)

	for _, v := range plan.Upserts {
		p.Variants = append(p.Variants, *v)
	}
	return &StoreProductResult{Product: ToProductDetailResponse(p), Created: created}, nil
}

// Delete soft-deletes one of the caller's products with its variants
func (s *ProductService) Delete(ctx context.Context, sellerID, id uuid.UUID) error {
	if _, err := s.ownedProduct(ctx, sellerID, id); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	logger.L(ctx).Info("product deleted", zap.String("product_id", id.String()))
	return nil
}

func (s *ProductService) ownedProduct(ctx context.Context, sellerID, id uuid.UUID) (*catalog.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsOwnedBy(sellerID) {
		return nil, shared.ErrForbidden.WithMessage("Product belongs to another seller")
	}
	return p, nil
}

func (s *ProductService) checkCategory(ctx context.Context, categoryID uuid.UUID, subCategoryID *uuid.UUID) error {
	category, err := s.categories.FindByID(ctx, categoryID)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError("INVALID_CATEGORY", "Category not found")
	}
	if err != nil {
		return err
	}
	if subCategoryID != nil && !category.HasSubCategory(*subCategoryID) {
		return shared.NewDomainError("INVALID_SUB_CATEGORY", "Sub-category does not belong to the category")
	}
	return nil
}

// resolveImages stores uploaded files and keeps URL strings, preserving order
func (s *ProductService) resolveImages(ctx context.Context, batch *upload.Batch, sellerID uuid.UUID, in []ImageInput) ([]string, error) {
	images := make([]string, 0, len(in))
	for _, img := range in {
		if img.File != nil {
			url, err := batch.SaveImage(ctx, "product", upload.ProductDir(sellerID), *img.File)
			if err != nil {
				return nil, err
			}
			images = append(images, url)
			continue
		}
		url := strings.TrimSpace(img.URL)
		if url == "" {
			return nil, shared.NewDomainError("INVALID_IMAGES", "Image cannot be empty")
		}
		images = append(images, url)
	}
	return images, nil
}

func (s *ProductService) mainAddress(ctx context.Context, userID uuid.UUID) (*address.Address, error) {
	a, err := s.addresses.FindMain(ctx, userID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return a, err
}

// deliveryOptions prices shipping from the seller to the viewer. Any failure
// yields nil so the product page still renders.
func (s *ProductService) deliveryOptions(ctx context.Context, viewerID uuid.UUID, seller *address.Address, weight int) []shipping.CostOption {
	buyer, err := s.mainAddress(ctx, viewerID)
	if err != nil {
		logger.L(ctx).Warn("load buyer address failed", zap.Error(err))
		return nil
	}
	if buyer == nil {
		return nil
	}

	options, err := s.shipping.Cost(ctx, shipping.CostQuery{
		Origin:      seller.SubdistrictID,
		Destination: buyer.SubdistrictID,
		Weight:      weight,
	})
	if err != nil {
		logger.L(ctx).Warn("delivery service lookup failed",
			zap.Int("origin", seller.SubdistrictID),
			zap.Int("destination", buyer.SubdistrictID),
			zap.Error(err),
		)
		return nil
	}
	return options
}
