package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/address"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAddress(t *testing.T, userID uuid.UUID, place string, created time.Time) *address.Address {
	t.Helper()
	a, err := address.New(userID, address.Input{
		PersonName:    "Sari",
		PhoneNumber:   "08123456789",
		PlaceName:     place,
		ProvinceID:    9,
		CityID:        23,
		SubdistrictID: 347,
		Address:       "Jl. Merdeka No. 1",
	})
	require.NoError(t, err)
	a.CreatedAt = created
	return a
}

func TestGormAddressRepository_MainAddress(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAddressRepository(db)
	ctx := context.Background()
	user := createBuyer(t, db, "Sari").ID
	base := time.Now().Add(-time.Hour)

	home := newAddress(t, user, "Rumah", base)
	require.NoError(t, repo.Save(ctx, home))
	assert.True(t, home.Main, "first address becomes main")

	office := newAddress(t, user, "Kantor", base.Add(time.Minute))
	require.NoError(t, repo.Save(ctx, office))
	assert.False(t, office.Main)

	t.Run("saving a main address clears the others", func(t *testing.T) {
		office.Main = true
		require.NoError(t, repo.Save(ctx, office))

		main, err := repo.FindMain(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, office.ID, main.ID)

		all, err := repo.FindByUser(ctx, user)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, office.ID, all[0].ID)
		assert.False(t, all[1].Main)
	})

	t.Run("set main switches the flag", func(t *testing.T) {
		require.NoError(t, repo.SetMain(ctx, user, home.ID))

		main, err := repo.FindMain(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, home.ID, main.ID)

		assert.ErrorIs(t, repo.SetMain(ctx, uuid.New(), home.ID), shared.ErrNotFound)
	})

	t.Run("deleting the main address promotes the newest one", func(t *testing.T) {
		warehouse := newAddress(t, user, "Gudang", base.Add(2*time.Minute))
		require.NoError(t, repo.Save(ctx, warehouse))

		require.NoError(t, repo.Delete(ctx, user, home.ID))

		main, err := repo.FindMain(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, warehouse.ID, main.ID)

		_, err = repo.FindByIDForUser(ctx, user, home.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("other users cannot reach the address", func(t *testing.T) {
		_, err := repo.FindByIDForUser(ctx, uuid.New(), office.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, uuid.New(), office.ID), shared.ErrNotFound)
	})
}

func TestGormAddressRepository_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAddressRepository(db)
	ctx := context.Background()
	user := createBuyer(t, db, "Sari").ID

	a := newAddress(t, user, "Rumah", time.Now())
	lat, long := -6.2, 106.8
	a.Lat, a.Long = &lat, &long
	a.SetRegionNames(address.RegionNames{Province: "DKI Jakarta", City: "Jakarta Pusat", Subdistrict: "Gambir"})
	require.NoError(t, repo.Save(ctx, a))

	got, err := repo.FindByIDForUser(ctx, user, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 347, got.SubdistrictID)
	assert.Equal(t, "Gambir", got.SubdistrictName)
	require.NotNil(t, got.Lat)
	assert.InDelta(t, -6.2, *got.Lat, 0.0001)

	_, err = repo.FindMain(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
