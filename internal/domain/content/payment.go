package content

import (
	"context"

	"github.com/google/uuid"
)

// PaymentType groups payment methods on the checkout page
type PaymentType string

const (
	PaymentTypeBankTransfer PaymentType = "bank_transfer"
	PaymentTypeEWallet      PaymentType = "e_wallet"
	PaymentTypeRetail       PaymentType = "retail"
	PaymentTypeCOD          PaymentType = "cod"
)

// PaymentMethod is a selectable payment channel
type PaymentMethod struct {
	ID        uuid.UUID
	Code      string
	Name      string
	Type      PaymentType
	Logo      string
	Active    bool
	SortOrder int
}

// PaymentMethodRepository defines the interface for payment method persistence
type PaymentMethodRepository interface {
	// ListActive returns active methods ordered by SortOrder
	ListActive(ctx context.Context) ([]PaymentMethod, error)

	Save(ctx context.Context, m *PaymentMethod) error
}
