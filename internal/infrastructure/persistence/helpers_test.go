package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with every table migrated.
// A single connection keeps the in-memory database alive across queries.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func createSeller(t *testing.T, db *gorm.DB, name string) *identity.User {
	t.Helper()
	u, err := identity.NewFirebaseUser("uid-"+uuid.NewString(), name, "", "")
	require.NoError(t, err)
	require.NoError(t, u.BecomeSeller(name+" Store", ""))
	require.NoError(t, NewGormUserRepository(db).Save(context.Background(), u))
	return u
}

func createBuyer(t *testing.T, db *gorm.DB, name string) *identity.User {
	t.Helper()
	u, err := identity.NewFirebaseUser("uid-"+uuid.NewString(), name, "", "")
	require.NoError(t, err)
	require.NoError(t, NewGormUserRepository(db).Save(context.Background(), u))
	return u
}

func createCategory(t *testing.T, db *gorm.DB, name string) *catalog.Category {
	t.Helper()
	c := &catalog.Category{
		Name: name,
		Slug: uuid.NewString(),
	}
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	require.NoError(t, NewGormCategoryRepository(db).Save(context.Background(), c))
	return c
}

type productOpts struct {
	price    int64
	discount *int
	created  time.Time
}

func createProduct(t *testing.T, db *gorm.DB, sellerID, categoryID uuid.UUID, name string, opts productOpts) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(sellerID, catalog.ProductInput{
		Name:        name,
		CategoryID:  categoryID,
		Price:       opts.price,
		Discount:    opts.discount,
		Stock:       10,
		Weight:      500,
		Unit:        "pcs",
		Description: name + " description",
		Images:      []string{"https://cdn.example.com/" + name + ".jpg"},
	})
	require.NoError(t, err)
	if !opts.created.IsZero() {
		p.CreatedAt = opts.created
	}
	require.NoError(t, NewGormProductRepository(db).SaveWithVariants(context.Background(), p, catalog.VariantPlan{}))
	return p
}

func intPtr(v int) *int { return &v }
