package web

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/application/storefront"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type storefrontFixture struct {
	users      *MockUserRepository
	products   *MockProductRepository
	categories *MockCategoryRepository
	addresses  *MockAddressRepository
	engine     *gin.Engine
}

func newStorefrontFixture(t *testing.T) *storefrontFixture {
	f := &storefrontFixture{
		users:      new(MockUserRepository),
		products:   new(MockProductRepository),
		categories: new(MockCategoryRepository),
		addresses:  new(MockAddressRepository),
	}
	svc := storefront.NewService(f.users, f.products, f.categories, f.addresses)
	h := NewStorefrontHandler(newTestRenderer(t), svc, nil)

	f.engine = gin.New()
	f.engine.GET("/seller/:slug", h.Seller)
	return f
}

func (f *storefrontFixture) get(target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func batikSeller() *identity.User {
	return &identity.User{
		BaseEntity: shared.NewBaseEntity(),
		Name:       "Rina",
		IsSeller:   true,
		SellerName: "Rina Batik",
		SellerSlug: "rina-batik",
	}
}

func TestStorefrontHandler_Seller(t *testing.T) {
	f := newStorefrontFixture(t)
	seller := batikSeller()
	batik := catalog.Category{BaseEntity: shared.NewBaseEntity(), Name: "batik tulis", ProductsCount: 20}
	discount := 10
	avg := 4.5
	product := catalog.Product{
		BaseEntity: shared.NewBaseEntity(),
		SellerID:   seller.ID,
		CategoryID: batik.ID,
		Name:       "Kain Batik Parang",
		Price:      50000,
		Discount:   &discount,
		Images:     []string{"http://cdn.test/batik.jpg"},
		Stats:      catalog.ProductStats{ReviewsAvgRating: &avg, TotalSell: 1200},
	}

	f.users.On("FindSellerBySlug", mock.Anything, "rina-batik").Return(seller, int64(20), nil)
	f.addresses.On("FindMain", mock.Anything, seller.ID).Return(nil, shared.ErrNotFound)
	f.products.On("SellerAverageRating", mock.Anything, seller.ID).Return(4.25, nil)
	f.categories.On("FindAllWithCounts", mock.Anything, &seller.ID).Return([]catalog.Category{batik}, nil)
	f.products.On("Search", mock.Anything, mock.MatchedBy(func(q catalog.ProductQuery) bool {
		return q.Page == 1 && q.CategoryID == nil && len(q.Sorts) == 2 && q.Sorts[0].Field == catalog.SortByPrice && q.Sorts[0].Desc
	})).Return(shared.NewPaginated([]catalog.Product{product}, 20, 1, shared.DefaultPageSize), nil)

	w := f.get("/seller/rina-batik?price=tertinggi&category_id=not-a-uuid&page=0")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<title>Rina Batik | Marketplace</title>")
	assert.Contains(t, body, "Kain Batik Parang")
	assert.Contains(t, body, "Rp 45.000")
	assert.Contains(t, body, "<s>Rp 50.000</s>")
	assert.Contains(t, body, "1.200 terjual")
	assert.Contains(t, body, "Batik Tulis")
	assert.Contains(t, body, `value="tertinggi" checked`)
	assert.Contains(t, body, `href="/seller/rina-batik?category_id=not-a-uuid&amp;page=2&amp;price=tertinggi"`)
	assert.NotContains(t, body, "Tidak ada data Produk saat ini")
	f.products.AssertExpectations(t)
}

func TestStorefrontHandler_Seller_CategoryFilter(t *testing.T) {
	f := newStorefrontFixture(t)
	seller := batikSeller()
	categoryID := uuid.New()

	f.users.On("FindSellerBySlug", mock.Anything, "rina-batik").Return(seller, int64(0), nil)
	f.addresses.On("FindMain", mock.Anything, seller.ID).Return(nil, shared.ErrNotFound)
	f.products.On("SellerAverageRating", mock.Anything, seller.ID).Return(0.0, nil)
	f.categories.On("FindAllWithCounts", mock.Anything, &seller.ID).Return([]catalog.Category{}, nil)
	f.products.On("Search", mock.Anything, mock.MatchedBy(func(q catalog.ProductQuery) bool {
		return q.CategoryID != nil && *q.CategoryID == categoryID && q.Page == 2
	})).Return(shared.NewPaginated([]catalog.Product{}, 0, 2, shared.DefaultPageSize), nil)

	w := f.get("/seller/rina-batik?category_id=" + categoryID.String() + "&page=2")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Tidak ada data Produk saat ini")
	assert.Contains(t, body, "Tidak ada kategori")
	assert.Contains(t, body, `name="category_id" value="`+categoryID.String()+`"`)
}

func TestStorefrontHandler_Seller_UnknownSlug(t *testing.T) {
	f := newStorefrontFixture(t)
	f.users.On("FindSellerBySlug", mock.Anything, "tidak-ada").Return(nil, int64(0), shared.ErrNotFound)

	w := f.get("/seller/tidak-ada")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Halaman yang kamu cari tidak ditemukan.")
}

func TestStorefrontHandler_Seller_Failure(t *testing.T) {
	f := newStorefrontFixture(t)
	f.users.On("FindSellerBySlug", mock.Anything, "rina-batik").Return(nil, int64(0), errors.New("connection reset"))

	w := f.get("/seller/rina-batik")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Terjadi kesalahan pada server.")
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestParseSellerQuery(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name   string
		target string
		want   storefront.Query
	}{
		{
			name:   "defaults",
			target: "/seller/x",
			want:   storefront.Query{Page: 1},
		},
		{
			name:   "all switches",
			target: "/seller/x?price=terendah&rating=tertinggi&orderBy=asc&page=3&category_id=" + id.String(),
			want:   storefront.Query{Price: "terendah", Rating: "tertinggi", OrderBy: "asc", Page: 3, CategoryID: &id},
		},
		{
			name:   "malformed page and category",
			target: "/seller/x?page=-2&category_id=12",
			want:   storefront.Query{Page: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, tt.target, nil)
			assert.Equal(t, tt.want, parseSellerQuery(c))
		})
	}
}
