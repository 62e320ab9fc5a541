package content

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shared/valueobject"
)

// Article is an editorial post shown on the home page
type Article struct {
	shared.BaseEntity
	Title       string
	Slug        string
	Thumbnail   string
	Body        string
	PublishedAt *time.Time
}

// NewArticle creates an unpublished article
func NewArticle(title, body, thumbnail string) (*Article, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	return &Article{
		BaseEntity: shared.NewBaseEntity(),
		Title:      title,
		Slug:       valueobject.Slugify(title),
		Thumbnail:  thumbnail,
		Body:       body,
	}, nil
}

// Publish stamps the publication time
func (a *Article) Publish(at time.Time) {
	a.PublishedAt = &at
	a.Touch()
}

// IsPublished reports whether the article is visible at now
func (a *Article) IsPublished(now time.Time) bool {
	return a.PublishedAt != nil && !a.PublishedAt.After(now)
}

// Excerpt returns the first n runes of the body
func (a *Article) Excerpt(n int) string {
	r := []rune(strings.TrimSpace(a.Body))
	if len(r) <= n {
		return string(r)
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}

// ArticleRepository defines the interface for article persistence
type ArticleRepository interface {
	// FindPublishedByID finds a published article
	FindPublishedByID(ctx context.Context, id uuid.UUID) (*Article, error)

	// ListPublished pages through published articles, newest first
	ListPublished(ctx context.Context, filter shared.Filter) (shared.Paginated[Article], error)

	Save(ctx context.Context, a *Article) error
}
