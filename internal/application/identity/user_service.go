package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	appaddress "github.com/marketplace/backend/internal/application/address"
	"github.com/marketplace/backend/internal/application/upload"
	"github.com/marketplace/backend/internal/domain/address"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
)

// UserService handles the signed-in user's account
type UserService struct {
	users     identity.UserRepository
	addresses address.Repository
	uploader  *upload.Uploader
}

// NewUserService creates a new UserService
func NewUserService(users identity.UserRepository, addresses address.Repository, uploader *upload.Uploader) *UserService {
	return &UserService{users: users, addresses: addresses, uploader: uploader}
}

// Me returns the user record
func (s *UserService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Profile returns the user with their main address
func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := &ProfileResponse{UserResponse: ToUserResponse(user)}

	main, err := s.addresses.FindMain(ctx, userID)
	switch {
	case err == nil:
		a := appaddress.ToAddressResponse(main)
		resp.MainAddress = &a
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}
	return resp, nil
}

// UpdateProfile replaces the profile fields and, when given, the avatar
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email != "" && email != user.Email {
		other, err := s.users.FindByEmail(ctx, email)
		if err == nil && other.ID != user.ID {
			return nil, shared.ErrAlreadyExists.WithMessage("Email sudah digunakan")
		}
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	err = user.UpdateProfile(identity.ProfileInput{
		Name:      in.Name,
		Email:     email,
		Phone:     strings.TrimSpace(in.Phone),
		BirthDate: in.BirthDate,
	})
	if err != nil {
		return nil, err
	}

	if in.Image != nil {
		url, err := s.uploader.SaveImage(ctx, "profile", upload.ProfileDir(user.ID), *in.Image)
		if err != nil {
			return nil, err
		}
		user.SetImage(url)
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// UpdateSeller opens or renames the storefront. The slug derived from the
// seller name must not belong to another user.
func (s *UserService) UpdateSeller(ctx context.Context, userID uuid.UUID, in UpdateSellerInput) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.BecomeSeller(in.SellerName, in.SellerDescription); err != nil {
		return nil, err
	}

	taken, err := s.users.SellerSlugTaken(ctx, user.SellerSlug, user.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.ErrAlreadyExists.WithMessage("Nama toko sudah digunakan")
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}
