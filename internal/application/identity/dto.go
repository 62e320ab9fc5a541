package identity

import (
	"time"

	"github.com/google/uuid"
	appaddress "github.com/marketplace/backend/internal/application/address"
	"github.com/marketplace/backend/internal/application/upload"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/infrastructure/auth"
)

// BirthDateLayout is the wire format of birth dates
const BirthDateLayout = "2006-01-02"

// UserResponse represents a user in API responses
type UserResponse struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone"`
	BirthDate         *string    `json:"birth_date"`
	Image             string     `json:"image"`
	IsSeller          bool       `json:"is_seller"`
	SellerName        string     `json:"seller_name"`
	SellerSlug        string     `json:"seller_slug"`
	SellerDescription string     `json:"seller_description"`
	LastLoginAt       *time.Time `json:"last_login_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ProfileResponse is the user with their main address
type ProfileResponse struct {
	UserResponse
	MainAddress *appaddress.AddressResponse `json:"main_address"`
}

// LoginResponse is returned by both login flows
type LoginResponse struct {
	*auth.Token
	User UserResponse `json:"user"`
}

// UpdateProfileInput is the profile form after transport decoding. Image is
// nil when no new avatar was uploaded.
type UpdateProfileInput struct {
	Name      string
	Email     string
	Phone     string
	BirthDate *time.Time
	Image     *upload.File
}

// UpdateSellerInput opens or renames the caller's storefront
type UpdateSellerInput struct {
	SellerName        string
	SellerDescription string
}

// ToUserResponse converts a domain User
func ToUserResponse(u *identity.User) UserResponse {
	r := UserResponse{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Phone:             u.Phone,
		Image:             u.Image,
		IsSeller:          u.IsSeller,
		SellerName:        u.SellerName,
		SellerSlug:        u.SellerSlug,
		SellerDescription: u.SellerDescription,
		LastLoginAt:       u.LastLoginAt,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
	if u.BirthDate != nil {
		s := u.BirthDate.Format(BirthDateLayout)
		r.BirthDate = &s
	}
	return r
}
