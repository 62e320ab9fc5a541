package address

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for address persistence. Implementations
// keep at most one main address per user.
type Repository interface {
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Address, error)

	// FindByUser lists a user's addresses, main first then newest
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Address, error)

	// FindMain returns the user's main address or shared.ErrNotFound
	FindMain(ctx context.Context, userID uuid.UUID) (*Address, error)

	// Save creates or updates an address. When the address is main, or the
	// user has no main address yet, it becomes the only main address.
	Save(ctx context.Context, a *Address) error

	// SetMain makes id the user's only main address
	SetMain(ctx context.Context, userID, id uuid.UUID) error

	// Delete removes an address; if it was main, the newest remaining
	// address of the user is promoted
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
