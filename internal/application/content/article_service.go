package content

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/content"
	"github.com/marketplace/backend/internal/domain/shared"
)

// ArticleService serves published articles
type ArticleService struct {
	articles content.ArticleRepository
}

// NewArticleService creates a new ArticleService
func NewArticleService(articles content.ArticleRepository) *ArticleService {
	return &ArticleService{articles: articles}
}

// List pages through published articles, newest first
func (s *ArticleService) List(ctx context.Context, page int) (shared.Paginated[ArticleResponse], error) {
	filter := shared.DefaultFilter()
	filter.Page = page
	filter.Normalize()

	result, err := s.articles.ListPublished(ctx, filter)
	if err != nil {
		return shared.Paginated[ArticleResponse]{}, err
	}
	return shared.MapPaginated(result, func(a content.Article) ArticleResponse {
		return ToArticleResponse(&a, false)
	}), nil
}

// Get returns one published article with its body
func (s *ArticleService) Get(ctx context.Context, id uuid.UUID) (*ArticleResponse, error) {
	a, err := s.articles.FindPublishedByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToArticleResponse(a, true)
	return &resp, nil
}

// PaymentService lists payment channels
type PaymentService struct {
	methods content.PaymentMethodRepository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(methods content.PaymentMethodRepository) *PaymentService {
	return &PaymentService{methods: methods}
}

// List returns active payment methods in display order
func (s *PaymentService) List(ctx context.Context) ([]PaymentMethodResponse, error) {
	methods, err := s.methods.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentMethodResponse, len(methods))
	for i, m := range methods {
		out[i] = ToPaymentMethodResponse(m)
	}
	return out, nil
}
