// Package address holds the buyer and seller address book use cases.
package address

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/address"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// RegionNamer resolves display names for region ids
type RegionNamer interface {
	Names(ctx context.Context, provinceID, cityID, subdistrictID int) (address.RegionNames, error)
}

// Service manages a user's addresses
type Service struct {
	addresses address.Repository
	regions   RegionNamer
}

// NewService creates an address Service
func NewService(addresses address.Repository, regions RegionNamer) *Service {
	return &Service{addresses: addresses, regions: regions}
}

// List returns the user's addresses, main first then newest
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]AddressResponse, error) {
	addresses, err := s.addresses.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToAddressResponses(addresses), nil
}

// Get returns one of the user's addresses
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*AddressResponse, error) {
	a, err := s.addresses.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := ToAddressResponse(a)
	return &resp, nil
}

// StoreOrUpdate creates an address, or updates in.ID when it is set. The
// second return value reports whether an address was created.
func (s *Service) StoreOrUpdate(ctx context.Context, userID uuid.UUID, in StoreInput) (*AddressResponse, bool, error) {
	var (
		a   *address.Address
		err error
	)
	created := in.ID == nil
	if created {
		a, err = address.New(userID, in.Input)
	} else {
		a, err = s.addresses.FindByIDForUser(ctx, userID, *in.ID)
		if err != nil {
			return nil, false, err
		}
		err = a.Apply(in.Input)
	}
	if err != nil {
		return nil, false, err
	}

	if a.ProvinceName == "" || a.CityName == "" || a.SubdistrictName == "" {
		s.resolveNames(ctx, a)
	}
	if in.Main {
		a.Main = true
	}

	if err := s.addresses.Save(ctx, a); err != nil {
		return nil, false, err
	}
	resp := ToAddressResponse(a)
	return &resp, created, nil
}

// SetMain makes id the user's only main address
func (s *Service) SetMain(ctx context.Context, userID, id uuid.UUID) error {
	return s.addresses.SetMain(ctx, userID, id)
}

// Delete removes one of the user's addresses
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.addresses.Delete(ctx, userID, id)
}

// resolveNames fills region names; a lookup failure leaves them empty
func (s *Service) resolveNames(ctx context.Context, a *address.Address) {
	if s.regions == nil {
		return
	}
	names, err := s.regions.Names(ctx, a.ProvinceID, a.CityID, a.SubdistrictID)
	if err != nil {
		logger.L(ctx).Warn("resolve region names failed",
			zap.Int("subdistrict_id", a.SubdistrictID),
			zap.Error(err),
		)
		return
	}
	a.SetRegionNames(names)
}
