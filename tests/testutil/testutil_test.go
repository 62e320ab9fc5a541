package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/infrastructure/auth"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/infrastructure/persistence"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockDB(t *testing.T) {
	mockDB := NewMockDB(t)

	assert.NotNil(t, mockDB.DB)
	assert.NotNil(t, mockDB.Mock)
	mockDB.ExpectationsWereMet(t)
}

func TestNewSQLiteDB(t *testing.T) {
	db := NewSQLiteDB(t)
	ctx := ContextWithTimeout(t, 5*time.Second)

	u, err := identity.NewPasswordUser("Budi", "budi@example.com", "rahasia123")
	require.NoError(t, err)
	repo := persistence.NewGormUserRepository(db)
	require.NoError(t, repo.Save(ctx, u))

	got, err := repo.FindByEmail(ctx, "budi@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestTestContext(t *testing.T) {
	tc := NewTestContext(t)
	assert.Equal(t, http.MethodGet, tc.Context.Request.Method)

	id := uuid.New()
	tc.SetUserID(id)
	got, ok := middleware.GetUserID(tc.Context)
	require.True(t, ok)
	assert.Equal(t, id, got)

	tc.SetHeader("Authorization", "Bearer token")
	assert.Equal(t, "Bearer token", tc.Context.Request.Header.Get("Authorization"))

	tc.Context.Status(http.StatusCreated)
	tc.Context.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusCreated, tc.ResponseCode())
}

func TestNewTestUUID(t *testing.T) {
	assert.Equal(t, NewTestUUID("seller"), NewTestUUID("seller"))
	assert.NotEqual(t, NewTestUUID("seller"), NewTestUUID("buyer"))
}

func TestDoAndDecode(t *testing.T) {
	jwt := auth.NewJWTService(config.JWTConfig{Secret: "test-secret-with-enough-length-0001", AccessTokenExpiration: time.Hour, Issuer: "test"})
	u, err := identity.NewPasswordUser("Sari", "sari@example.com", "rahasia123")
	require.NoError(t, err)
	token := TokenFor(t, jwt, u)

	engine := gin.New()
	engine.POST("/echo", func(c *gin.Context) {
		if c.GetHeader("Authorization") != "Bearer "+token {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "no"},
			})
			return
		}
		var body map[string]string
		_ = c.ShouldBindJSON(&body)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": body})
	})

	w := Do(t, engine, Request{Method: http.MethodPost, Path: "/echo", Body: map[string]string{"q": "batik"}, Token: token})
	require.Equal(t, http.StatusOK, w.Code)
	env := Decode[map[string]string](t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "batik", env.Data["q"])

	w = Do(t, engine, Request{Method: http.MethodPost, Path: "/echo"})
	AssertErrorCode(t, w, http.StatusUnauthorized, "UNAUTHORIZED")
}
