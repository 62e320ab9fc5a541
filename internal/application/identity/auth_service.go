// Package identity holds sign-in and account use cases.
package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/auth"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Login methods reported to the LoginRecorder
const (
	LoginMethodFirebase = "firebase"
	LoginMethodPassword = "password"
)

var errBadCredentials = shared.ErrUnauthorized.WithMessage("Email atau password salah")

// IDTokenVerifier resolves a Firebase ID token to its account
type IDTokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*auth.FirebaseIdentity, error)
}

// TokenIssuer signs access tokens
type TokenIssuer interface {
	GenerateToken(input auth.GenerateTokenInput) (*auth.Token, error)
}

// LoginRecorder observes successful logins
type LoginRecorder interface {
	Login(method string)
}

// AuthService handles sign-in and sign-out
type AuthService struct {
	users     identity.UserRepository
	verifier  IDTokenVerifier
	tokens    TokenIssuer
	blacklist auth.TokenBlacklist
	recorder  LoginRecorder
}

// NewAuthService creates a new AuthService. recorder may be nil.
func NewAuthService(
	users identity.UserRepository,
	verifier IDTokenVerifier,
	tokens TokenIssuer,
	blacklist auth.TokenBlacklist,
	recorder LoginRecorder,
) *AuthService {
	return &AuthService{
		users:     users,
		verifier:  verifier,
		tokens:    tokens,
		blacklist: blacklist,
		recorder:  recorder,
	}
}

// LoginFirebase signs in with a Firebase ID token. Unknown accounts are
// created; an existing account with the same email is linked to the
// Firebase uid.
func (s *AuthService) LoginFirebase(ctx context.Context, idToken string) (*LoginResponse, error) {
	fb, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidIDToken) {
			return nil, shared.ErrUnauthorized.WithMessage("Token Firebase tidak valid")
		}
		return nil, err
	}

	user, err := s.users.FindByFirebaseUID(ctx, fb.UID)
	switch {
	case err == nil:
		user.SyncFirebaseProfile(fb.Name, fb.Email, fb.PhotoURL)
	case errors.Is(err, shared.ErrNotFound):
		user, err = s.linkOrCreate(ctx, fb)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.complete(ctx, user, LoginMethodFirebase)
}

// LoginPassword signs in with email and password. Unknown emails and wrong
// passwords fail the same way.
func (s *AuthService) LoginPassword(ctx context.Context, email, password string) (*LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, shared.ErrNotFound) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.VerifyPassword(password) {
		logger.L(ctx).Info("password login rejected", zap.String("user_id", user.ID.String()))
		return nil, errBadCredentials
	}
	return s.complete(ctx, user, LoginMethodPassword)
}

// Logout revokes the token identified by jti for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, jti string, remaining time.Duration) error {
	if jti == "" || remaining <= 0 {
		return nil
	}
	return s.blacklist.AddToBlacklist(ctx, jti, remaining)
}

func (s *AuthService) linkOrCreate(ctx context.Context, fb *auth.FirebaseIdentity) (*identity.User, error) {
	if fb.Email != "" && fb.EmailVerified {
		user, err := s.users.FindByEmail(ctx, strings.ToLower(fb.Email))
		if err == nil && user.FirebaseUID == "" {
			user.FirebaseUID = fb.UID
			user.SyncFirebaseProfile(fb.Name, fb.Email, fb.PhotoURL)
			return user, nil
		}
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}
	return identity.NewFirebaseUser(fb.UID, fb.Name, fb.Email, fb.PhotoURL)
}

func (s *AuthService) complete(ctx context.Context, user *identity.User, method string) (*LoginResponse, error) {
	user.RecordLogin()
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(auth.GenerateTokenInput{
		UserID:   user.ID,
		Name:     user.DisplayName(),
		IsSeller: user.IsSeller,
	})
	if err != nil {
		return nil, err
	}

	if s.recorder != nil {
		s.recorder.Login(method)
	}
	logger.L(ctx).Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("method", method),
	)
	return &LoginResponse{Token: token, User: ToUserResponse(user)}, nil
}
