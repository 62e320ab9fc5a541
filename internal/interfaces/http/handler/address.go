package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	appaddress "github.com/marketplace/backend/internal/application/address"
	"github.com/marketplace/backend/internal/domain/address"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// AddressHandler handles the caller's address book
type AddressHandler struct {
	BaseHandler
	addressService *appaddress.Service
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(addressService *appaddress.Service) *AddressHandler {
	return &AddressHandler{
		addressService: addressService,
	}
}

// StoreAddressRequest is the store-or-update body
type StoreAddressRequest struct {
	ID            *string  `json:"id" binding:"omitempty,uuid"`
	PersonName    string   `json:"person_name" binding:"required,max=255"`
	PhoneNumber   string   `json:"phone_number" binding:"required,max=20"`
	PlaceName     string   `json:"place_name" binding:"required,max=255"`
	ProvinceID    *int     `json:"ro_province_id" binding:"required,min=1"`
	CityID        *int     `json:"ro_city_id" binding:"required,min=1"`
	SubdistrictID *int     `json:"ro_subdistrict_id" binding:"required,min=1"`
	Address       string   `json:"address" binding:"required"`
	Description   string   `json:"description" binding:"max=1000"`
	Lat           *float64 `json:"lat" binding:"omitempty,latitude"`
	Long          *float64 `json:"long" binding:"omitempty,longitude"`
	Main          bool     `json:"main"`
}

// Input converts a validated request
func (r StoreAddressRequest) Input() appaddress.StoreInput {
	in := appaddress.StoreInput{
		Main: r.Main,
		Input: address.Input{
			PersonName:    strings.TrimSpace(r.PersonName),
			PhoneNumber:   strings.TrimSpace(r.PhoneNumber),
			PlaceName:     strings.TrimSpace(r.PlaceName),
			ProvinceID:    *r.ProvinceID,
			CityID:        *r.CityID,
			SubdistrictID: *r.SubdistrictID,
			Address:       strings.TrimSpace(r.Address),
			Description:   strings.TrimSpace(r.Description),
			Lat:           r.Lat,
			Long:          r.Long,
		},
	}
	if r.ID != nil {
		id := uuid.MustParse(*r.ID)
		in.ID = &id
	}
	return in
}

// List godoc
// @Summary      List addresses
// @Description  Returns the caller's addresses with the main address first
// @Tags         addresses
// @Produce      json
// @Success      200 {object} dto.Response{data=[]appaddress.AddressResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /api/addresses [get]
func (h *AddressHandler) List(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	addresses, err := h.addressService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addresses)
}

// StoreOrUpdate godoc
// @Summary      Create or update an address
// @Description  Creates an address, or updates the caller's address named by id. Accepts JSON or form bodies.
// @Tags         addresses
// @Accept       json,x-www-form-urlencoded,mpfd
// @Produce      json
// @Param        request body StoreAddressRequest true "Address"
// @Success      200 {object} dto.Response{data=appaddress.AddressResponse}
// @Success      201 {object} dto.Response{data=appaddress.AddressResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /api/addresses/store-or-update [post]
func (h *AddressHandler) StoreOrUpdate(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req StoreAddressRequest
	if isFormRequest(c) {
		form, err := newFormReader(c)
		if err != nil {
			h.BadRequest(c, "Malformed request body")
			return
		}
		req = addressFromForm(form)
		if len(form.errs) > 0 {
			h.ValidationError(c, form.errs)
			return
		}
		if err := binding.Validator.ValidateStruct(&req); err != nil {
			middleware.HandleValidationError(c, err)
			return
		}
	} else if !h.bind(c, &req) {
		return
	}

	result, created, err := h.addressService.StoreOrUpdate(c.Request.Context(), userID, req.Input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if created {
		h.Created(c, result, "Alamat berhasil disimpan.")
		return
	}
	h.SuccessMessage(c, result, "Alamat berhasil diperbarui.")
}

// SetMain godoc
// @Summary      Set the main address
// @Tags         addresses
// @Produce      json
// @Param        id path string true "Address ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /api/addresses/set-main-address/{id} [post]
func (h *AddressHandler) SetMain(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.addressService.SetMain(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessMessage(c, nil, "Alamat utama berhasil diubah.")
}

// Delete godoc
// @Summary      Delete an address
// @Tags         addresses
// @Produce      json
// @Param        id path string true "Address ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /api/addresses/delete/{id} [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.addressService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessMessage(c, nil, "Alamat berhasil dihapus.")
}

func addressFromForm(form *formReader) StoreAddressRequest {
	return StoreAddressRequest{
		ID:            form.optStr("id"),
		PersonName:    form.str("person_name"),
		PhoneNumber:   form.str("phone_number"),
		PlaceName:     form.str("place_name"),
		ProvinceID:    form.intVal("ro_province_id"),
		CityID:        form.intVal("ro_city_id"),
		SubdistrictID: form.intVal("ro_subdistrict_id"),
		Address:       form.str("address"),
		Description:   form.str("description"),
		Lat:           form.floatVal("lat"),
		Long:          form.floatVal("long"),
		Main:          form.boolVal("main"),
	}
}
