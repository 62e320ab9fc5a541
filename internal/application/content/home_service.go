// Package content serves the home page, marketplace counters, articles and
// payment channels.
package content

import (
	"context"

	appcatalog "github.com/marketplace/backend/internal/application/catalog"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/content"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/trade"
)

// Sizes of the home page strips
const (
	homeProductLimit = 8
	homeArticleLimit = 4
)

// HomeService assembles the home page and marketplace counters
type HomeService struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	articles   content.ArticleRepository
	users      identity.UserRepository
	orders     trade.OrderRepository
}

// NewHomeService creates a new HomeService
func NewHomeService(
	products catalog.ProductRepository,
	categories catalog.CategoryRepository,
	articles content.ArticleRepository,
	users identity.UserRepository,
	orders trade.OrderRepository,
) *HomeService {
	return &HomeService{
		products:   products,
		categories: categories,
		articles:   articles,
		users:      users,
		orders:     orders,
	}
}

// Home returns categories, product strips and the latest articles
func (s *HomeService) Home(ctx context.Context) (*HomeResponse, error) {
	categories, err := s.categories.FindAllWithCounts(ctx, nil)
	if err != nil {
		return nil, err
	}
	resp := &HomeResponse{Categories: make([]appcatalog.CategoryResponse, len(categories))}
	for i := range categories {
		resp.Categories[i] = appcatalog.ToCategoryResponse(&categories[i])
	}

	strips := []struct {
		query catalog.ProductQuery
		dst   *[]appcatalog.ProductResponse
	}{
		{catalog.ProductQuery{PromoOnly: true, Random: true}, &resp.Promo},
		{catalog.ProductQuery{Sorts: []catalog.ProductSort{{Field: catalog.SortByTotalSell, Desc: true}}}, &resp.BestSelling},
		{catalog.ProductQuery{Sorts: []catalog.ProductSort{{Field: catalog.SortByCreatedAt, Desc: true}}}, &resp.Latest},
	}
	for _, strip := range strips {
		products, err := s.products.Sample(ctx, strip.query, homeProductLimit)
		if err != nil {
			return nil, err
		}
		*strip.dst = appcatalog.ToProductResponses(products)
	}

	articles, err := s.articles.ListPublished(ctx, shared.Filter{Page: 1, PageSize: homeArticleLimit})
	if err != nil {
		return nil, err
	}
	resp.Articles = make([]ArticleResponse, len(articles.Items))
	for i := range articles.Items {
		resp.Articles[i] = ToArticleResponse(&articles.Items[i], false)
	}
	return resp, nil
}

// Stats counts listed products, sellers, buyers and completed orders
func (s *HomeService) Stats(ctx context.Context) (*StatsResponse, error) {
	var (
		stats StatsResponse
		err   error
	)
	if stats.Products, err = s.products.CountListed(ctx); err != nil {
		return nil, err
	}
	if stats.Sellers, err = s.users.CountSellers(ctx); err != nil {
		return nil, err
	}
	if stats.Buyers, err = s.users.CountBuyers(ctx); err != nil {
		return nil, err
	}
	if stats.Orders, err = s.orders.CountByStatus(ctx, trade.OrderStatusDone); err != nil {
		return nil, err
	}
	return &stats, nil
}
