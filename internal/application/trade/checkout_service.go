// Package trade holds the checkout and shipment tracking use cases.
package trade

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	appaddress "github.com/marketplace/backend/internal/application/address"
	"github.com/marketplace/backend/internal/domain/address"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shipping"
	"github.com/marketplace/backend/internal/domain/trade"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// CheckoutService prices carts and looks up shipping
type CheckoutService struct {
	products  catalog.ProductRepository
	addresses address.Repository
	shipping  shipping.Provider
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(products catalog.ProductRepository, addresses address.Repository, provider shipping.Provider) *CheckoutService {
	return &CheckoutService{products: products, addresses: addresses, shipping: provider}
}

// PrecheckEarly prices the cart and reports stock without failing on it
func (s *CheckoutService) PrecheckEarly(ctx context.Context, items []trade.CartItem) (*CheckoutResponse, error) {
	checkout, err := s.build(ctx, items)
	if err != nil {
		return nil, err
	}
	return ToCheckoutResponse(checkout), nil
}

// Precheck prices the cart and requires every line to be in stock. When
// in.AddressID is set the address must belong to the buyer and is echoed back.
func (s *CheckoutService) Precheck(ctx context.Context, buyerID uuid.UUID, in PrecheckInput) (*CheckoutResponse, error) {
	checkout, err := s.build(ctx, in.Items)
	if err != nil {
		return nil, err
	}
	if err := checkout.RequireStock(); err != nil {
		return nil, err
	}

	resp := ToCheckoutResponse(checkout)
	if in.AddressID != nil {
		a, err := s.addresses.FindByIDForUser(ctx, buyerID, *in.AddressID)
		if err != nil {
			return nil, err
		}
		ar := appaddress.ToAddressResponse(a)
		resp.Address = &ar
	}
	return resp, nil
}

// PrecheckWithDelivery runs Precheck and prices delivery for every seller
// group from the seller's main address to the buyer's address
func (s *CheckoutService) PrecheckWithDelivery(ctx context.Context, buyerID uuid.UUID, in PrecheckInput) (*CheckoutResponse, error) {
	checkout, err := s.build(ctx, in.Items)
	if err != nil {
		return nil, err
	}
	if err := checkout.RequireStock(); err != nil {
		return nil, err
	}

	destination, err := s.buyerAddress(ctx, buyerID, in.AddressID)
	if err != nil {
		return nil, err
	}

	resp := ToCheckoutResponse(checkout)
	dest := appaddress.ToAddressResponse(destination)
	resp.Address = &dest

	for i := range resp.Groups {
		group := &resp.Groups[i]
		origin, err := s.addresses.FindMain(ctx, group.SellerID)
		if errors.Is(err, shared.ErrNotFound) {
			name := group.SellerID.String()
			if group.Seller != nil && group.Seller.SellerName != "" {
				name = group.Seller.SellerName
			}
			return nil, shared.ErrSellerAddressMissing.WithMessage("Penjual " + name + " belum mengatur alamat")
		}
		if err != nil {
			return nil, err
		}
		originResp := appaddress.ToAddressResponse(origin)
		group.Origin = &originResp

		options, err := s.shipping.Cost(ctx, shipping.CostQuery{
			Origin:      origin.SubdistrictID,
			Destination: destination.SubdistrictID,
			Weight:      group.Weight,
			Couriers:    in.Couriers,
		})
		if err != nil {
			logger.L(ctx).Warn("delivery pricing failed",
				zap.String("seller_id", group.SellerID.String()),
				zap.Error(err),
			)
			return nil, err
		}
		group.DeliveryOptions = options
	}
	return resp, nil
}

// CheckShippingPrice asks the provider for prices between two subdistricts
func (s *CheckoutService) CheckShippingPrice(ctx context.Context, q shipping.CostQuery) ([]shipping.CostOption, error) {
	if q.Origin <= 0 || q.Destination <= 0 {
		return nil, shared.ErrInvalidInput.WithMessage("origin and destination are required")
	}
	if q.Weight < 1 {
		return nil, shared.ErrInvalidInput.WithMessage("weight must be at least 1")
	}
	return s.shipping.Cost(ctx, q)
}

// Waybill tracks a shipment
func (s *CheckoutService) Waybill(ctx context.Context, number, courier string) (*shipping.Waybill, error) {
	number = strings.TrimSpace(number)
	courier = strings.ToLower(strings.TrimSpace(courier))
	if number == "" || courier == "" {
		return nil, shared.ErrInvalidInput.WithMessage("waybill and courier are required")
	}
	return s.shipping.Waybill(ctx, number, courier)
}

func (s *CheckoutService) build(ctx context.Context, items []trade.CartItem) (*trade.Checkout, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return trade.BuildCheckout(items, products)
}

func (s *CheckoutService) buyerAddress(ctx context.Context, buyerID uuid.UUID, id *uuid.UUID) (*address.Address, error) {
	if id != nil {
		return s.addresses.FindByIDForUser(ctx, buyerID, *id)
	}
	a, err := s.addresses.FindMain(ctx, buyerID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.ErrAddressMissing.WithMessage("Silakan atur alamat pengiriman terlebih dahulu")
	}
	return a, err
}
