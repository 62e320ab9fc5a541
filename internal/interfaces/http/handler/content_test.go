package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	catalogapp "github.com/marketplace/backend/internal/application/catalog"
	contentapp "github.com/marketplace/backend/internal/application/content"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/content"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) FindPublishedByID(ctx context.Context, id uuid.UUID) (*content.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Article), args.Error(1)
}

func (m *MockArticleRepository) ListPublished(ctx context.Context, filter shared.Filter) (shared.Paginated[content.Article], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[content.Article]), args.Error(1)
}

func (m *MockArticleRepository) Save(ctx context.Context, a *content.Article) error {
	return m.Called(ctx, a).Error(0)
}

type MockPaymentMethodRepository struct {
	mock.Mock
}

func (m *MockPaymentMethodRepository) ListActive(ctx context.Context) ([]content.PaymentMethod, error) {
	args := m.Called(ctx)
	return args.Get(0).([]content.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) Save(ctx context.Context, pm *content.PaymentMethod) error {
	return m.Called(ctx, pm).Error(0)
}

func newContentHandler(articles *MockArticleRepository, methods *MockPaymentMethodRepository) *ContentHandler {
	return NewContentHandler(nil, contentapp.NewArticleService(articles), contentapp.NewPaymentService(methods))
}

func publishedArticle(title, body string) content.Article {
	a, _ := content.NewArticle(title, body, "thumb.jpg")
	a.Publish(time.Now().Add(-time.Hour))
	return *a
}

func TestContentHandler_Articles(t *testing.T) {
	articles := new(MockArticleRepository)
	first := publishedArticle("Tips Belanja Hemat", "Belanja hemat dimulai dari daftar.")
	articles.On("ListPublished", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 2 && f.PageSize == shared.DefaultPageSize
	})).Return(shared.NewPaginated([]content.Article{first}, 16, 2, shared.DefaultPageSize), nil)

	r := newTestEngine(http.MethodGet, "/api/article", nil, newContentHandler(articles, nil).Articles)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/article?page=2", nil))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.TotalPages)
	item := resp.Data.([]any)[0].(map[string]any)
	assert.Equal(t, "tips-belanja-hemat", item["slug"])
	_, hasBody := item["body"]
	assert.False(t, hasBody)
}

func TestContentHandler_Article(t *testing.T) {
	t.Run("includes the body", func(t *testing.T) {
		articles := new(MockArticleRepository)
		a := publishedArticle("Cara Memilih Kopi", "Pilih biji yang segar.")
		articles.On("FindPublishedByID", mock.Anything, a.ID).Return(&a, nil)

		r := newTestEngine(http.MethodGet, "/api/article/:id", nil, newContentHandler(articles, nil).Article)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/article/"+a.ID.String(), nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Pilih biji yang segar.", decode(t, w).Data.(map[string]any)["body"])
	})

	t.Run("unpublished is not found", func(t *testing.T) {
		articles := new(MockArticleRepository)
		id := uuid.New()
		articles.On("FindPublishedByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		r := newTestEngine(http.MethodGet, "/api/article/:id", nil, newContentHandler(articles, nil).Article)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/article/"+id.String(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestContentHandler_PaymentMethods(t *testing.T) {
	methods := new(MockPaymentMethodRepository)
	methods.On("ListActive", mock.Anything).Return([]content.PaymentMethod{
		{ID: uuid.New(), Code: "bca", Name: "BCA Virtual Account", Type: content.PaymentTypeBankTransfer, Active: true},
		{ID: uuid.New(), Code: "ovo", Name: "OVO", Type: content.PaymentTypeEWallet, Active: true},
	}, nil)

	r := newTestEngine(http.MethodGet, "/api/payment-method", nil, newContentHandler(nil, methods).PaymentMethods)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/payment-method", nil))

	require.Equal(t, http.StatusOK, w.Code)
	items := decode(t, w).Data.([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "e_wallet", items[1].(map[string]any)["type"])
}

func TestCategoryHandler_List(t *testing.T) {
	categories := new(MockCategoryRepository)
	categories.On("FindAllWithCounts", mock.Anything, (*uuid.UUID)(nil)).Return([]catalog.Category{
		{BaseEntity: shared.NewBaseEntity(), Name: "Makanan", Slug: "makanan", ProductsCount: 12},
	}, nil)

	h := NewCategoryHandler(catalogapp.NewCategoryService(categories))
	r := newTestEngine(http.MethodGet, "/api/category", nil, h.List)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/category", nil))

	require.Equal(t, http.StatusOK, w.Code)
	item := decode(t, w).Data.([]any)[0].(map[string]any)
	assert.Equal(t, "Makanan", item["name"])
	assert.Equal(t, float64(12), item["products_count"])
}
