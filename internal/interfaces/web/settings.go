package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appaddress "github.com/marketplace/backend/internal/application/address"
	appidentity "github.com/marketplace/backend/internal/application/identity"
	"github.com/marketplace/backend/internal/application/region"
	"github.com/marketplace/backend/internal/domain/address"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shipping"
	"github.com/marketplace/backend/internal/interfaces/http/handler"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Settings tabs
const (
	TabProfile = "profil"
	TabAddress = "alamat"
)

const (
	settingsPath        = "/dashboard/settings"
	settingsAddressPath = settingsPath + "?param=" + TabAddress
)

// SettingsConfig holds the dashboard page settings
type SettingsConfig struct {
	MapsAPIKey string
	Flash      FlashCookie
}

type settingsView struct {
	layoutData
	Tab        string
	Profile    *appidentity.ProfileResponse
	Addresses  []appaddress.AddressResponse
	Edit       *appaddress.AddressResponse
	Form       appaddress.AddressResponse
	Provinces  []shipping.Province
	MapsAPIKey string
}

// addressForm is the dashboard address form. Coordinates stay strings so a
// blank input means no coordinate rather than zero.
type addressForm struct {
	ID            string `form:"id" binding:"omitempty,uuid"`
	PersonName    string `form:"person_name" binding:"required,max=255"`
	PhoneNumber   string `form:"phone_number" binding:"required,max=20"`
	PlaceName     string `form:"place_name" binding:"required,max=255"`
	ProvinceID    int    `form:"ro_province_id" binding:"required,min=1"`
	CityID        int    `form:"ro_city_id" binding:"required,min=1"`
	SubdistrictID int    `form:"ro_subdistrict_id" binding:"required,min=1"`
	Address       string `form:"address" binding:"required"`
	Description   string `form:"description" binding:"max=1000"`
	Lat           string `form:"lat" binding:"omitempty,latitude"`
	Long          string `form:"long" binding:"omitempty,longitude"`
	Main          bool   `form:"main"`
}

func (f addressForm) input() appaddress.StoreInput {
	in := appaddress.StoreInput{
		Main: f.Main,
		Input: address.Input{
			PersonName:    strings.TrimSpace(f.PersonName),
			PhoneNumber:   strings.TrimSpace(f.PhoneNumber),
			PlaceName:     strings.TrimSpace(f.PlaceName),
			ProvinceID:    f.ProvinceID,
			CityID:        f.CityID,
			SubdistrictID: f.SubdistrictID,
			Address:       strings.TrimSpace(f.Address),
			Description:   strings.TrimSpace(f.Description),
			Lat:           parseCoordinate(f.Lat),
			Long:          parseCoordinate(f.Long),
		},
	}
	if id, err := uuid.Parse(f.ID); err == nil {
		in.ID = &id
	}
	return in
}

func parseCoordinate(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

// SettingsHandler renders the account dashboard and handles its forms
type SettingsHandler struct {
	renderer  *Renderer
	users     *appidentity.UserService
	addresses *appaddress.Service
	regions   *region.Service
	cfg       SettingsConfig
	logger    *zap.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(
	renderer *Renderer,
	users *appidentity.UserService,
	addresses *appaddress.Service,
	regions *region.Service,
	cfg SettingsConfig,
	logger *zap.Logger,
) *SettingsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsHandler{
		renderer:  renderer,
		users:     users,
		addresses: addresses,
		regions:   regions,
		cfg:       cfg,
		logger:    logger,
	}
}

// Show renders the settings page. ?param=alamat opens the address tab and
// ?edit=<id> fills the address form with one of the caller's addresses.
func (h *SettingsHandler) Show(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	ctx := c.Request.Context()

	view := settingsView{
		layoutData: layoutData{Title: "Pengaturan Akun", Flash: h.cfg.Flash.Pop(c)},
		Tab:        TabProfile,
		MapsAPIKey: h.cfg.MapsAPIKey,
	}
	if c.Query("param") == TabAddress {
		view.Tab = TabAddress
	}

	var err error
	if view.Profile, err = h.users.Profile(ctx, userID); err != nil {
		renderError(c, h.renderer, h.logger, err)
		return
	}
	if view.Addresses, err = h.addresses.List(ctx, userID); err != nil {
		renderError(c, h.renderer, h.logger, err)
		return
	}

	if id, err := uuid.Parse(c.Query("edit")); err == nil {
		view.Tab = TabAddress
		view.Edit, err = h.addresses.Get(ctx, userID, id)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			renderError(c, h.renderer, h.logger, err)
			return
		}
		if view.Edit != nil {
			view.Form = *view.Edit
		}
	}

	// Provinces are best effort
	if view.Provinces, err = h.regions.Provinces(ctx); err != nil {
		h.logger.Warn("Province list unavailable", zap.Error(err))
	}

	h.renderer.Render(c, http.StatusOK, pageSettings, view)
}

// UpdateProfile handles the profile form
func (h *SettingsHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var form handler.UpdateProfileRequest
	if err := c.ShouldBind(&form); err != nil {
		h.fail(c, settingsPath, err)
		return
	}

	input := appidentity.UpdateProfileInput{
		Name:  strings.TrimSpace(form.Name),
		Email: strings.TrimSpace(form.Email),
		Phone: strings.TrimSpace(form.Phone),
	}
	if form.BirthDate != "" {
		birthDate, err := time.Parse(appidentity.BirthDateLayout, form.BirthDate)
		if err != nil {
			h.fail(c, settingsPath, err)
			return
		}
		input.BirthDate = &birthDate
	}
	if fh, err := c.FormFile("image"); err == nil {
		input.Image = handler.FileFromHeader(fh)
	}

	if _, err := h.users.UpdateProfile(c.Request.Context(), userID, input); err != nil {
		h.fail(c, settingsPath, err)
		return
	}
	h.succeed(c, settingsPath, "Profil berhasil diperbarui.")
}

// SaveAddress handles the add and edit address form
func (h *SettingsHandler) SaveAddress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var form addressForm
	if err := c.ShouldBind(&form); err != nil {
		back := settingsAddressPath
		if _, perr := uuid.Parse(form.ID); perr == nil {
			back += "&edit=" + form.ID
		}
		h.fail(c, back, err)
		return
	}

	_, created, err := h.addresses.StoreOrUpdate(c.Request.Context(), userID, form.input())
	if err != nil {
		h.fail(c, settingsAddressPath, err)
		return
	}
	if created {
		h.succeed(c, settingsAddressPath, "Alamat berhasil disimpan.")
		return
	}
	h.succeed(c, settingsAddressPath, "Alamat berhasil diperbarui.")
}

func (h *SettingsHandler) succeed(c *gin.Context, location, msg string) {
	h.cfg.Flash.Set(c, FlashSuccess, msg)
	c.Redirect(http.StatusFound, location)
}

func (h *SettingsHandler) fail(c *gin.Context, location string, err error) {
	msg, expected := failureMessage(err)
	if !expected {
		h.logger.Error("Settings form failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	h.cfg.Flash.Set(c, FlashError, msg)
	c.Redirect(http.StatusFound, location)
}

// failureMessage is the text shown for a failed form post. expected is false
// for failures the visitor did not cause.
func failureMessage(err error) (msg string, expected bool) {
	if details := middleware.ValidationDetails(err); len(details) > 0 {
		return details[0].Message, true
	}

	var (
		domainErr *shared.DomainError
		parseErr  *time.ParseError
		numErr    *strconv.NumError
	)
	switch {
	case errors.As(err, &domainErr):
		return domainErr.Message, true
	case errors.As(err, &parseErr):
		return "Format tanggal lahir tidak valid.", true
	case errors.As(err, &numErr):
		return "Data formulir tidak valid.", true
	}
	return "Terjadi kesalahan, silakan coba lagi.", false
}
