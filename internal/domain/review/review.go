package review

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Review is a buyer's rating of a product, optionally with photos
type Review struct {
	shared.BaseEntity
	ProductID uuid.UUID
	UserID    uuid.UUID
	OrderID   *uuid.UUID
	Rating    int
	Comment   string
	Images    []string
}

// New creates a review after checking the rating range
func New(productID, userID uuid.UUID, rating int, comment string, images []string) (*Review, error) {
	if productID == uuid.Nil || userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REVIEW", "Product and user are required")
	}
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	return &Review{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		UserID:     userID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
		Images:     append([]string(nil), images...),
	}, nil
}

// ImageCount returns the number of attached photos
func (r *Review) ImageCount() int {
	return len(r.Images)
}

// Repository defines the interface for review persistence
type Repository interface {
	Save(ctx context.Context, r *Review) error

	// CountImages sums the photo counts of a product's reviews
	CountImages(ctx context.Context, productID uuid.UUID) (int64, error)
}
