package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/marketplace/backend/internal/application/region"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
)

// RegionHandler serves the region lists used by address forms
type RegionHandler struct {
	BaseHandler
	regionService *region.Service
}

// NewRegionHandler creates a new RegionHandler
func NewRegionHandler(regionService *region.Service) *RegionHandler {
	return &RegionHandler{
		regionService: regionService,
	}
}

// Provinces godoc
// @Summary      List provinces
// @Tags         regionals
// @Produce      json
// @Success      200 {object} dto.Response{data=[]shipping.Province}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/regionals/provinces [get]
func (h *RegionHandler) Provinces(c *gin.Context) {
	provinces, err := h.regionService.Provinces(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, provinces)
}

// Cities godoc
// @Summary      List cities of a province
// @Tags         regionals
// @Produce      json
// @Param        provinceId path int true "Province ID"
// @Success      200 {object} dto.Response{data=[]shipping.City}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/regionals/cities/{provinceId} [get]
func (h *RegionHandler) Cities(c *gin.Context) {
	provinceID, ok := h.regionID(c, "provinceId")
	if !ok {
		return
	}

	cities, err := h.regionService.Cities(c.Request.Context(), provinceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cities)
}

// Subdistricts godoc
// @Summary      List subdistricts of a city
// @Tags         regionals
// @Produce      json
// @Param        cityId path int true "City ID"
// @Success      200 {object} dto.Response{data=[]shipping.Subdistrict}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/regionals/subdistricts/{cityId} [get]
func (h *RegionHandler) Subdistricts(c *gin.Context) {
	cityID, ok := h.regionID(c, "cityId")
	if !ok {
		return
	}

	subdistricts, err := h.regionService.Subdistricts(c.Request.Context(), cityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, subdistricts)
}

func (h *RegionHandler) regionID(c *gin.Context, param string) (int, bool) {
	id, ok := dto.RegionIDRequest{ID: c.Param(param)}.Int()
	if !ok {
		h.BadRequest(c, "Invalid region id")
		return 0, false
	}
	return id, true
}
