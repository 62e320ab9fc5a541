package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/infrastructure/auth"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// TokenSource extracts a raw token from a request, or returns ""
type TokenSource func(c *gin.Context) string

// FromBearer reads the api-client guard token from the Authorization header
func FromBearer() TokenSource {
	return func(c *gin.Context) string {
		header := c.GetHeader(AuthHeaderKey)
		if !strings.HasPrefix(header, BearerPrefix) {
			return ""
		}
		return strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	}
}

// FromCookie reads the web guard token from the session cookie
func FromCookie(name string) TokenSource {
	return func(c *gin.Context) string {
		value, err := c.Cookie(name)
		if err != nil {
			return ""
		}
		return value
	}
}

// AuthConfig holds configuration for the authentication guards
type AuthConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// Blacklist is optional; revoked tokens are rejected when set
	Blacklist auth.TokenBlacklist
	// Sources are tried in order until one yields a token
	Sources []TokenSource
	Logger  *zap.Logger
}

// Authenticator resolves request tokens into claims
type Authenticator struct {
	cfg AuthConfig
}

// NewAuthenticator creates an Authenticator. With no sources configured the
// bearer header is used.
func NewAuthenticator(cfg AuthConfig) *Authenticator {
	if len(cfg.Sources) == 0 {
		cfg.Sources = []TokenSource{FromBearer()}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Authenticator{cfg: cfg}
}

// WithSources returns a copy reading tokens from other sources
func (a *Authenticator) WithSources(sources ...TokenSource) *Authenticator {
	cfg := a.cfg
	cfg.Sources = sources
	return &Authenticator{cfg: cfg}
}

var errMissingToken = errors.New("missing token")

// resolve validates the first token found and stores its claims in c
func (a *Authenticator) resolve(c *gin.Context) (*auth.Claims, error) {
	var raw string
	for _, source := range a.cfg.Sources {
		if raw = source(c); raw != "" {
			break
		}
	}
	if raw == "" {
		return nil, errMissingToken
	}

	claims, err := a.cfg.JWTService.ValidateToken(raw)
	if err != nil {
		return nil, err
	}

	if a.cfg.Blacklist != nil && claims.ID != "" {
		revoked, err := a.cfg.Blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
		if err != nil {
			// Fail open on blacklist errors
			a.cfg.Logger.Error("Failed to check token blacklist",
				zap.String("jti", claims.ID),
				zap.Error(err))
		} else if revoked {
			return nil, auth.ErrTokenBlacklisted
		}
	}

	c.Set(JWTClaimsKey, claims)
	c.Set(logger.GinUserIDKey, claims.UserID)
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
	return claims, nil
}

// Required rejects requests without a valid token with 401
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := a.resolve(c); err != nil {
			a.cfg.Logger.Debug("Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized, authErrorMessage(err), GetRequestID(c)))
			return
		}
		c.Next()
	}
}

// Optional populates the user when a valid token is present and otherwise
// continues anonymously
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, _ = a.resolve(c)
		c.Next()
	}
}

// RequiredOrRedirect sends anonymous visitors of HTML pages to location
func (a *Authenticator) RequiredOrRedirect(location string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := a.resolve(c); err != nil {
			c.Redirect(http.StatusFound, location)
			c.Abort()
			return
		}
		c.Next()
	}
}

func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, errMissingToken):
		return "Unauthenticated."
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, auth.ErrTokenBlacklisted):
		return "Token has been revoked"
	default:
		return "Invalid token"
	}
}

// GetJWTClaims returns the claims stored by the guards, or nil
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetUserID returns the authenticated user's ID; ok is false for anonymous
// requests
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	claims := GetJWTClaims(c)
	if claims == nil {
		return uuid.Nil, false
	}
	id, err := claims.GetUserUUID()
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
