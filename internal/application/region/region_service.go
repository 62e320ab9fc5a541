// Package region serves the administrative region lists used by address
// forms, cached in front of the shipping provider.
package region

import (
	"context"
	"fmt"
	"time"

	"github.com/marketplace/backend/internal/domain/address"
	"github.com/marketplace/backend/internal/domain/shipping"
	"github.com/marketplace/backend/internal/infrastructure/cache"
)

// DefaultTTL is how long region lists are cached
const DefaultTTL = 24 * time.Hour

// Service answers region lookups
type Service struct {
	provider shipping.Provider
	cache    cache.Store
	ttl      time.Duration
}

// NewService creates a region Service. A non-positive ttl uses DefaultTTL.
func NewService(provider shipping.Provider, store cache.Store, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{provider: provider, cache: store, ttl: ttl}
}

// Provinces lists every province
func (s *Service) Provinces(ctx context.Context) ([]shipping.Province, error) {
	return cache.GetOrLoad(ctx, s.cache, "region:provinces", s.ttl, s.provider.Provinces)
}

// Cities lists the cities of a province
func (s *Service) Cities(ctx context.Context, provinceID int) ([]shipping.City, error) {
	key := fmt.Sprintf("region:cities:%d", provinceID)
	return cache.GetOrLoad(ctx, s.cache, key, s.ttl, func(ctx context.Context) ([]shipping.City, error) {
		return s.provider.Cities(ctx, provinceID)
	})
}

// Subdistricts lists the subdistricts of a city
func (s *Service) Subdistricts(ctx context.Context, cityID int) ([]shipping.Subdistrict, error) {
	key := fmt.Sprintf("region:subdistricts:%d", cityID)
	return cache.GetOrLoad(ctx, s.cache, key, s.ttl, func(ctx context.Context) ([]shipping.Subdistrict, error) {
		return s.provider.Subdistricts(ctx, cityID)
	})
}

// Names resolves display names for a province, city and subdistrict triple.
// Ids missing from the lists resolve to empty names.
func (s *Service) Names(ctx context.Context, provinceID, cityID, subdistrictID int) (address.RegionNames, error) {
	var names address.RegionNames

	provinces, err := s.Provinces(ctx)
	if err != nil {
		return names, err
	}
	for _, p := range provinces {
		if p.ID == provinceID {
			names.Province = p.Name
			break
		}
	}

	cities, err := s.Cities(ctx, provinceID)
	if err != nil {
		return names, err
	}
	for _, c := range cities {
		if c.ID == cityID {
			names.City = c.Name
			if c.Type != "" {
				names.City = c.Type + " " + c.Name
			}
			break
		}
	}

	subdistricts, err := s.Subdistricts(ctx, cityID)
	if err != nil {
		return names, err
	}
	for _, sd := range subdistricts {
		if sd.ID == subdistrictID {
			names.Subdistrict = sd.Name
			break
		}
	}
	return names, nil
}
