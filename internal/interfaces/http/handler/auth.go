package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marketplace/backend/internal/application/identity"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles sign-in and sign-out. Successful logins also set the
// session cookie read by the web guard.
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
	cookie      config.CookieConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService, cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
	}
}

// FirebaseLoginRequest carries the ID token issued by the Firebase client SDK
type FirebaseLoginRequest struct {
	IDToken string `json:"id_token" form:"id_token" binding:"required"`
}

// LoginRequest represents a password login
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// LoginFirebase godoc
// @Summary      Sign in with Firebase
// @Description  Exchanges a Firebase ID token for an access token and sets the session cookie. Unknown accounts are registered on first sign-in.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body FirebaseLoginRequest true "Firebase ID token"
// @Success      200 {object} dto.Response{data=identity.LoginResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/user/login-firebase [post]
func (h *AuthHandler) LoginFirebase(c *gin.Context) {
	var req FirebaseLoginRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.authService.LoginFirebase(c.Request.Context(), req.IDToken)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSession(c, result.AccessToken, result.ExpiresIn)
	h.SuccessMessage(c, result, "Login berhasil.")
}

// Login godoc
// @Summary      Sign in with email and password
// @Description  Returns an access token and sets the session cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} dto.Response{data=identity.LoginResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/user/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.authService.LoginPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSession(c, result.AccessToken, result.ExpiresIn)
	h.SuccessMessage(c, result, "Login berhasil.")
}

// Logout godoc
// @Summary      Sign out
// @Description  Revokes the current token and clears the session cookie
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /api/user/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Unauthenticated.")
		return
	}

	var remaining time.Duration
	if claims.ExpiresAt != nil {
		remaining = time.Until(claims.ExpiresAt.Time)
	}
	if err := h.authService.Logout(c.Request.Context(), claims.ID, remaining); err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSession(c, "", -1)
	h.SuccessMessage(c, nil, "Logout berhasil.")
}

// setSession writes the HttpOnly session cookie; a negative maxAge deletes it
func (h *AuthHandler) setSession(c *gin.Context, token string, maxAge int64) {
	c.SetSameSite(h.cookie.SameSiteMode())
	c.SetCookie(h.cookie.Name, token, int(maxAge), h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)
}
