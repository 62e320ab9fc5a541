package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	appidentity "github.com/marketplace/backend/internal/application/identity"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/auth"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testCookie = config.CookieConfig{Name: "marketplace_session", Path: "/", SameSite: "lax"}

type authFixture struct {
	users     *MockUserRepository
	verifier  *MockVerifier
	blacklist *auth.InMemoryTokenBlacklist
	handler   *AuthHandler
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:     new(MockUserRepository),
		verifier:  new(MockVerifier),
		blacklist: auth.NewInMemoryTokenBlacklist(),
	}
	tokens := auth.NewJWTService(config.JWTConfig{
		Secret:                "handler-test-secret-of-sufficient-length",
		AccessTokenExpiration: time.Hour,
		Issuer:                "marketplace-test",
	})
	svc := appidentity.NewAuthService(f.users, f.verifier, tokens, f.blacklist, nil)
	f.handler = NewAuthHandler(svc, testCookie)
	return f
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookie.Name {
			return c
		}
	}
	return nil
}

func TestAuthHandler_LoginFirebase(t *testing.T) {
	t.Run("creates the account and sets the cookie", func(t *testing.T) {
		f := newAuthFixture()
		f.verifier.On("Verify", mock.Anything, "id-token").Return(&auth.FirebaseIdentity{
			UID:   "fb-1",
			Email: "rina@example.com",
			Name:  "Rina",
		}, nil)
		f.users.On("FindByFirebaseUID", mock.Anything, "fb-1").Return(nil, shared.ErrNotFound)
		f.users.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

		r := newTestEngine(http.MethodPost, "/login", nil, f.handler.LoginFirebase)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest(http.MethodPost, "/login", map[string]any{"id_token": "id-token"}))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decode(t, w)
		assert.Equal(t, "Login berhasil.", resp.Message)
		data := resp.Data.(map[string]any)
		token := data["token"].(string)
		assert.NotEmpty(t, token)
		assert.Equal(t, "Bearer", data["token_type"])
		assert.Equal(t, "Rina", data["user"].(map[string]any)["name"])

		cookie := sessionCookie(w)
		require.NotNil(t, cookie)
		assert.Equal(t, token, cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, 3600, cookie.MaxAge)
	})

	t.Run("rejected token", func(t *testing.T) {
		f := newAuthFixture()
		f.verifier.On("Verify", mock.Anything, "bad").Return(nil, auth.ErrInvalidIDToken)

		r := newTestEngine(http.MethodPost, "/login", nil, f.handler.LoginFirebase)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest(http.MethodPost, "/login", map[string]any{"id_token": "bad"}))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, sessionCookie(w))
	})

	t.Run("missing token", func(t *testing.T) {
		f := newAuthFixture()
		r := newTestEngine(http.MethodPost, "/login", nil, f.handler.LoginFirebase)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest(http.MethodPost, "/login", map[string]any{}))

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "id_token", decode(t, w).Error.Details[0].Field)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	user, err := identity.NewPasswordUser("Dewi", "dewi@example.com", "rahasia123")
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		f := newAuthFixture()
		f.users.On("FindByEmail", mock.Anything, "dewi@example.com").Return(user, nil)
		f.users.On("Save", mock.Anything, user).Return(nil)

		r := newTestEngine(http.MethodPost, "/login", nil, f.handler.Login)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest(http.MethodPost, "/login", map[string]any{
			"email":    "Dewi@Example.com",
			"password": "rahasia123",
		}))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.NotNil(t, sessionCookie(w))
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		f := newAuthFixture()
		f.users.On("FindByEmail", mock.Anything, "dewi@example.com").Return(user, nil)
		f.users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, shared.ErrNotFound)
		r := newTestEngine(http.MethodPost, "/login", nil, f.handler.Login)

		var messages []string
		for _, body := range []map[string]any{
			{"email": "dewi@example.com", "password": "salah-sekali"},
			{"email": "nobody@example.com", "password": "rahasia123"},
		} {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, jsonRequest(http.MethodPost, "/login", body))
			require.Equal(t, http.StatusUnauthorized, w.Code)
			messages = append(messages, decode(t, w).Error.Message)
		}
		assert.Equal(t, messages[0], messages[1])
		f.users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("invalid email", func(t *testing.T) {
		f := newAuthFixture()
		r := newTestEngine(http.MethodPost, "/login", nil, f.handler.Login)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest(http.MethodPost, "/login", map[string]any{"email": "dewi", "password": "x"}))

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "email", decode(t, w).Error.Details[0].Field)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("revokes the token and clears the cookie", func(t *testing.T) {
		f := newAuthFixture()
		jti := uuid.NewString()

		r := gin.New()
		r.POST("/logout", func(c *gin.Context) {
			c.Set(middleware.JWTClaimsKey, &auth.Claims{
				RegisteredClaims: jwt.RegisteredClaims{
					ID:        jti,
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * time.Minute)),
				},
				UserID: uuid.NewString(),
			})
			c.Next()
		}, f.handler.Logout)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Logout berhasil.", decode(t, w).Message)

		revoked, err := f.blacklist.IsBlacklisted(context.Background(), jti)
		require.NoError(t, err)
		assert.True(t, revoked)

		cookie := sessionCookie(w)
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge)
	})

	t.Run("without claims", func(t *testing.T) {
		f := newAuthFixture()
		r := newTestEngine(http.MethodPost, "/logout", nil, f.handler.Logout)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
