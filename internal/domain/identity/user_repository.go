package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByFirebaseUID(ctx context.Context, uid string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindSellerBySlug finds a seller with its listed product count
	FindSellerBySlug(ctx context.Context, slug string) (*User, int64, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// SellerSlugTaken reports whether another user already uses slug
	SellerSlugTaken(ctx context.Context, slug string, exceptID uuid.UUID) (bool, error)

	CountSellers(ctx context.Context) (int64, error)
	CountBuyers(ctx context.Context) (int64, error)
}
