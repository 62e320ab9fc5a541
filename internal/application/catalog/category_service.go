package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
)

// CategoryService handles category queries
type CategoryService struct {
	categories catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categories catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// List returns every category with its listed product count. With sellerID
// set the counts only include that seller's products.
func (s *CategoryService) List(ctx context.Context, sellerID *uuid.UUID) ([]CategoryResponse, error) {
	categories, err := s.categories.FindAllWithCounts(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToCategoryResponse(&categories[i])
	}
	return out, nil
}
