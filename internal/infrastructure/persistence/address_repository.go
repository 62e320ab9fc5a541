package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/address"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAddressRepository implements address.Repository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByIDForUser finds an address owned by userID
func (r *GormAddressRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*address.Address, error) {
	return findAddress(r.db.WithContext(ctx), "user_id = ? AND id = ?", userID, id)
}

// FindByUser lists a user's addresses, main first then newest
func (r *GormAddressRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]address.Address, error) {
	var ms []models.AddressModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("main DESC").
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	addresses := make([]address.Address, len(ms))
	for i := range ms {
		addresses[i] = *ms[i].ToDomain()
	}
	return addresses, nil
}

// FindMain returns the user's main address
func (r *GormAddressRepository) FindMain(ctx context.Context, userID uuid.UUID) (*address.Address, error) {
	return findAddress(r.db.WithContext(ctx), "user_id = ? AND main = ?", userID, true)
}

// Save creates or updates an address. A main address clears the flag on the
// user's other addresses; a user without a main address gets this one.
func (r *GormAddressRepository) Save(ctx context.Context, a *address.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if a.Main {
			if err := clearMain(tx, a.UserID, a.ID); err != nil {
				return err
			}
		} else {
			var others int64
			err := tx.Model(&models.AddressModel{}).
				Where("user_id = ? AND main = ? AND id <> ?", a.UserID, true, a.ID).
				Count(&others).Error
			if err != nil {
				return fmt.Errorf("count main addresses: %w", err)
			}
			if others == 0 {
				a.Main = true
			}
		}
		if err := tx.Save(models.AddressModelFromDomain(a)).Error; err != nil {
			return fmt.Errorf("save address: %w", err)
		}
		return nil
	})
}

// SetMain makes id the user's only main address
func (r *GormAddressRepository) SetMain(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findAddress(tx, "user_id = ? AND id = ?", userID, id); err != nil {
			return err
		}
		if err := clearMain(tx, userID, id); err != nil {
			return err
		}
		return tx.Model(&models.AddressModel{}).Where("id = ?", id).Update("main", true).Error
	})
}

// Delete removes an address. When it was the main address, the newest
// remaining address of the user is promoted.
func (r *GormAddressRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findAddress(tx, "user_id = ? AND id = ?", userID, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.AddressModel{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete address: %w", err)
		}
		if !existing.Main {
			return nil
		}

		var next models.AddressModel
		err = tx.Where("user_id = ?", userID).Order("created_at DESC").First(&next).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Model(&models.AddressModel{}).Where("id = ?", next.ID).Update("main", true).Error
	})
}

func findAddress(db *gorm.DB, query string, args ...any) (*address.Address, error) {
	var m models.AddressModel
	if err := db.Where(query, args...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

func clearMain(tx *gorm.DB, userID, keepID uuid.UUID) error {
	err := tx.Model(&models.AddressModel{}).
		Where("user_id = ? AND id <> ? AND main = ?", userID, keepID, true).
		Update("main", false).Error
	if err != nil {
		return fmt.Errorf("clear main address: %w", err)
	}
	return nil
}

// Ensure GormAddressRepository implements address.Repository
var _ address.Repository = (*GormAddressRepository)(nil)
