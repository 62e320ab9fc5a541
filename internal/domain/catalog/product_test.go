package catalog

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func validInput() ProductInput {
	return ProductInput{
		Name:        "Kopi Gayo Arabika",
		CategoryID:  uuid.New(),
		Price:       85000,
		Stock:       12,
		Weight:      250,
		Unit:        "pack",
		Description: "Single origin dari Aceh Tengah",
		Images:      []string{"https://cdn.example.com/kopi.jpg"},
	}
}

func TestNewProduct(t *testing.T) {
	sellerID := uuid.New()

	t.Run("creates product with valid inputs", func(t *testing.T) {
		p, err := NewProduct(sellerID, validInput())
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, p.ID)
		assert.Equal(t, sellerID, p.SellerID)
		assert.Equal(t, "kopi-gayo-arabika", p.Slug)
		assert.False(t, p.IsVariant())
		assert.False(t, p.HasPromo())
		assert.True(t, p.IsOwnedBy(sellerID))
	})

	t.Run("requires seller", func(t *testing.T) {
		_, err := NewProduct(uuid.Nil, validInput())
		require.Error(t, err)
	})

	t.Run("copies images", func(t *testing.T) {
		in := validInput()
		p, err := NewProduct(sellerID, in)
		require.NoError(t, err)
		in.Images[0] = "changed"
		assert.Equal(t, "https://cdn.example.com/kopi.jpg", p.Images[0])
	})
}

func TestProduct_Apply_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProductInput)
		code   string
	}{
		{"empty name", func(in *ProductInput) { in.Name = "  " }, "INVALID_NAME"},
		{"long name", func(in *ProductInput) { in.Name = strings.Repeat("a", 256) }, "INVALID_NAME"},
		{"missing category", func(in *ProductInput) { in.CategoryID = uuid.Nil }, "INVALID_CATEGORY"},
		{"negative price", func(in *ProductInput) { in.Price = -1 }, "INVALID_PRICE"},
		{"negative stock", func(in *ProductInput) { in.Stock = -3 }, "INVALID_STOCK"},
		{"zero weight", func(in *ProductInput) { in.Weight = 0 }, "INVALID_WEIGHT"},
		{"discount too high", func(in *ProductInput) { in.Discount = intPtr(101) }, "INVALID_DISCOUNT"},
		{"discount zero", func(in *ProductInput) { in.Discount = intPtr(0) }, "INVALID_DISCOUNT"},
		{"empty unit", func(in *ProductInput) { in.Unit = "" }, "INVALID_UNIT"},
		{"empty description", func(in *ProductInput) { in.Description = "" }, "INVALID_DESCRIPTION"},
		{"no images", func(in *ProductInput) { in.Images = nil }, "INVALID_IMAGES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := NewProduct(uuid.New(), in)
			require.Error(t, err)

			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.code, de.Code)
		})
	}
}

func TestProduct_FinalPrice(t *testing.T) {
	p, err := NewProduct(uuid.New(), validInput())
	require.NoError(t, err)
	assert.Equal(t, int64(85000), p.FinalPrice().Int64())

	p.Discount = intPtr(20)
	assert.True(t, p.HasPromo())
	assert.Equal(t, int64(68000), p.FinalPrice().Int64())
}

func TestProduct_HasStock(t *testing.T) {
	p := &Product{Stock: 5}
	assert.True(t, p.HasStock(5))
	assert.False(t, p.HasStock(6))
	assert.False(t, p.HasStock(0))
}
