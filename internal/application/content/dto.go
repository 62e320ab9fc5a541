package content

import (
	"time"

	"github.com/google/uuid"
	appcatalog "github.com/marketplace/backend/internal/application/catalog"
	"github.com/marketplace/backend/internal/domain/content"
)

// ArticleResponse represents an article in API responses
type ArticleResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Thumbnail   string     `json:"thumbnail"`
	Excerpt     string     `json:"excerpt"`
	Body        string     `json:"body,omitempty"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// PaymentMethodResponse represents a payment channel
type PaymentMethodResponse struct {
	ID   uuid.UUID           `json:"id"`
	Code string              `json:"code"`
	Name string              `json:"name"`
	Type content.PaymentType `json:"type"`
	Logo string              `json:"logo"`
}

// HomeResponse is the home page payload
type HomeResponse struct {
	Categories  []appcatalog.CategoryResponse `json:"categories"`
	Promo       []appcatalog.ProductResponse  `json:"promo_products"`
	BestSelling []appcatalog.ProductResponse  `json:"best_selling_products"`
	Latest      []appcatalog.ProductResponse  `json:"latest_products"`
	Articles    []ArticleResponse             `json:"articles"`
}

// StatsResponse carries the marketplace counters
type StatsResponse struct {
	Products int64 `json:"products"`
	Sellers  int64 `json:"sellers"`
	Buyers   int64 `json:"buyers"`
	Orders   int64 `json:"orders_done"`
}

const excerptLength = 160

// ToArticleResponse converts a domain Article. withBody includes the full text.
func ToArticleResponse(a *content.Article, withBody bool) ArticleResponse {
	r := ArticleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Thumbnail:   a.Thumbnail,
		Excerpt:     a.Excerpt(excerptLength),
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
	}
	if withBody {
		r.Body = a.Body
	}
	return r
}

// ToPaymentMethodResponse converts a domain PaymentMethod
func ToPaymentMethodResponse(m content.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{ID: m.ID, Code: m.Code, Name: m.Name, Type: m.Type, Logo: m.Logo}
}
