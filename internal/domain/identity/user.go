package identity

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shared/valueobject"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User is a marketplace account. Every user can buy; a user becomes a
// seller once a storefront name has been set.
type User struct {
	shared.BaseEntity
	Name              string
	Email             string
	FirebaseUID       string
	Phone             string
	BirthDate         *time.Time
	Image             string
	PasswordHash      string
	IsSeller          bool
	SellerName        string
	SellerSlug        string
	SellerDescription string
	LastLoginAt       *time.Time
}

// NewFirebaseUser creates a user from a verified Firebase identity
func NewFirebaseUser(uid, name, email, photoURL string) (*User, error) {
	if strings.TrimSpace(uid) == "" {
		return nil, shared.NewDomainError("INVALID_UID", "Firebase UID cannot be empty")
	}
	u := &User{
		BaseEntity:  shared.NewBaseEntity(),
		FirebaseUID: uid,
		Image:       photoURL,
	}
	u.Name = strings.TrimSpace(name)
	if u.Name == "" {
		u.Name = nameFromEmail(email)
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		u.Email = strings.ToLower(email)
	}
	return u, nil
}

// NewPasswordUser creates a user that signs in with email and password
func NewPasswordUser(name, email, password string) (*User, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	u := &User{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Email:      strings.ToLower(email),
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SyncFirebaseProfile fills empty profile fields from the identity provider
func (u *User) SyncFirebaseProfile(name, email, photoURL string) {
	if u.Name == "" && name != "" {
		u.Name = strings.TrimSpace(name)
	}
	if u.Email == "" && email != "" && validateEmail(email) == nil {
		u.Email = strings.ToLower(email)
	}
	if u.Image == "" {
		u.Image = photoURL
	}
	u.Touch()
}

// ProfileInput carries the editable profile fields
type ProfileInput struct {
	Name      string
	Email     string
	Phone     string
	BirthDate *time.Time
}

// UpdateProfile replaces the editable profile fields
func (u *User) UpdateProfile(in ProfileInput) error {
	if err := validateName(in.Name); err != nil {
		return err
	}
	if in.Email != "" {
		if err := validateEmail(in.Email); err != nil {
			return err
		}
	}
	if len(in.Phone) > 20 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 20 characters")
	}
	if in.BirthDate != nil && in.BirthDate.After(time.Now()) {
		return shared.NewDomainError("INVALID_BIRTH_DATE", "Birth date cannot be in the future")
	}

	u.Name = strings.TrimSpace(in.Name)
	u.Email = strings.ToLower(in.Email)
	u.Phone = in.Phone
	u.BirthDate = in.BirthDate
	u.Touch()
	return nil
}

// SetImage sets the profile image URL
func (u *User) SetImage(url string) {
	u.Image = url
	u.Touch()
}

// BecomeSeller opens or renames the user's storefront
func (u *User) BecomeSeller(sellerName, description string) error {
	name := strings.TrimSpace(sellerName)
	if name == "" {
		return shared.NewDomainError("INVALID_SELLER_NAME", "Seller name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 255 {
		return shared.NewDomainError("INVALID_SELLER_NAME", "Seller name cannot exceed 255 characters")
	}
	slug := valueobject.Slugify(name)
	if slug == "" {
		return shared.NewDomainError("INVALID_SELLER_NAME", "Seller name must contain letters or digits")
	}

	u.IsSeller = true
	u.SellerName = name
	u.SellerSlug = slug
	u.SellerDescription = description
	u.Touch()
	return nil
}

// SetPassword hashes and stores a new password
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// VerifyPassword checks if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLogin stamps the last login time
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// DisplayName returns the storefront name for sellers and the user name otherwise
func (u *User) DisplayName() string {
	if u.IsSeller && u.SellerName != "" {
		return u.SellerName
	}
	return u.Name
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 255 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func nameFromEmail(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return "Pengguna"
}
