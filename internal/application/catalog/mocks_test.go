package catalog

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/application/upload"
	"github.com/marketplace/backend/internal/domain/address"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shipping"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindDetail(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Search(ctx context.Context, q catalog.ProductQuery) (shared.Paginated[catalog.Product], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(shared.Paginated[catalog.Product]), args.Error(1)
}

func (m *MockProductRepository) Sample(ctx context.Context, q catalog.ProductQuery, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, q, limit)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindVariants(ctx context.Context, parentID uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) SaveWithVariants(ctx context.Context, parent *catalog.Product, plan catalog.VariantPlan) error {
	args := m.Called(ctx, parent, plan)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) SellerAverageRating(ctx context.Context, sellerID uuid.UUID) (float64, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockProductRepository) CountListed(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAllWithCounts(ctx context.Context, sellerID *uuid.UUID) ([]catalog.Category, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, c *catalog.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockAddressRepository is a mock implementation of address.Repository
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*address.Address, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

func (m *MockAddressRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]address.Address, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]address.Address), args.Error(1)
}

func (m *MockAddressRepository) FindMain(ctx context.Context, userID uuid.UUID) (*address.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

func (m *MockAddressRepository) Save(ctx context.Context, a *address.Address) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAddressRepository) SetMain(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockAddressRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

// MockShippingProvider is a mock implementation of shipping.Provider
type MockShippingProvider struct {
	mock.Mock
}

func (m *MockShippingProvider) Provinces(ctx context.Context) ([]shipping.Province, error) {
	args := m.Called(ctx)
	return args.Get(0).([]shipping.Province), args.Error(1)
}

func (m *MockShippingProvider) Cities(ctx context.Context, provinceID int) ([]shipping.City, error) {
	args := m.Called(ctx, provinceID)
	return args.Get(0).([]shipping.City), args.Error(1)
}

func (m *MockShippingProvider) Subdistricts(ctx context.Context, cityID int) ([]shipping.Subdistrict, error) {
	args := m.Called(ctx, cityID)
	return args.Get(0).([]shipping.Subdistrict), args.Error(1)
}

func (m *MockShippingProvider) Cost(ctx context.Context, q shipping.CostQuery) ([]shipping.CostOption, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shipping.CostOption), args.Error(1)
}

func (m *MockShippingProvider) Waybill(ctx context.Context, number, courier string) (*shipping.Waybill, error) {
	args := m.Called(ctx, number, courier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Waybill), args.Error(1)
}

// memoryStore keeps uploaded objects in memory
type memoryStore struct {
	mu      sync.Mutex
	objects map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string]string{}}
}

func (s *memoryStore) Put(_ context.Context, key string, r io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = string(data)
	return "http://cdn.test/" + key, nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func imageFile(name, contentType, body string) ImageInput {
	return ImageInput{File: &upload.File{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}}
}
