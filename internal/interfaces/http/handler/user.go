package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marketplace/backend/internal/application/identity"
)

// UserHandler handles the signed-in user's account
type UserHandler struct {
	BaseHandler
	userService *identity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *identity.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// UpdateProfileRequest is the profile form. The avatar arrives as the image
// file part of a multipart body.
type UpdateProfileRequest struct {
	Name      string `json:"name" form:"name" binding:"required,max=255"`
	Email     string `json:"email" form:"email" binding:"omitempty,email,max=255"`
	Phone     string `json:"phone" form:"phone" binding:"max=20"`
	BirthDate string `json:"birth_date" form:"birth_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateSellerRequest opens or renames the caller's storefront
type UpdateSellerRequest struct {
	SellerName        string `json:"seller_name" form:"seller_name" binding:"required,max=255"`
	SellerDescription string `json:"seller_description" form:"seller_description"`
}

// Me godoc
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Success      200 {object} dto.Response{data=identity.UserResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /api/user [get]
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	user, err := h.userService.Me(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Profile godoc
// @Summary      Current user profile
// @Description  Returns the user with their main address
// @Tags         users
// @Produce      json
// @Success      200 {object} dto.Response{data=identity.ProfileResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /api/user/profile [get]
func (h *UserHandler) Profile(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	profile, err := h.userService.Profile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// UpdateProfile godoc
// @Summary      Update profile
// @Description  Updates the profile fields. An image file part replaces the avatar.
// @Tags         users
// @Accept       json,mpfd
// @Produce      json
// @Param        request body UpdateProfileRequest true "Profile"
// @Success      200 {object} dto.Response{data=identity.UserResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /api/user/update-profile [post]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !h.bind(c, &req) {
		return
	}

	input := identity.UpdateProfileInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	if req.BirthDate != "" {
		birthDate, err := time.Parse(identity.BirthDateLayout, req.BirthDate)
		if err != nil {
			h.FieldError(c, "birth_date", "The birth date does not match the format 2006-01-02.")
			return
		}
		input.BirthDate = &birthDate
	}
	if fh, err := c.FormFile("image"); err == nil {
		input.Image = FileFromHeader(fh)
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessMessage(c, user, "Profil berhasil diperbarui.")
}

// UpdateSeller godoc
// @Summary      Open or rename a storefront
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body UpdateSellerRequest true "Storefront"
// @Success      200 {object} dto.Response{data=identity.UserResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /api/user/update-seller [post]
func (h *UserHandler) UpdateSeller(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req UpdateSellerRequest
	if !h.bind(c, &req) {
		return
	}

	user, err := h.userService.UpdateSeller(c.Request.Context(), userID, identity.UpdateSellerInput{
		SellerName:        req.SellerName,
		SellerDescription: req.SellerDescription,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessMessage(c, user, "Toko berhasil diperbarui.")
}
