package web

import (
	"github.com/gin-gonic/gin"
	"github.com/marketplace/backend/internal/interfaces/http/handler"
	"github.com/marketplace/backend/internal/interfaces/http/router"
)

// Handlers bundles the page handlers
type Handlers struct {
	Storefront *StorefrontHandler
	Settings   *SettingsHandler
	Region     *handler.RegionHandler
}

// Groups returns the page routes. guard protects the dashboard and should
// redirect anonymous visitors.
func Groups(h Handlers, guard gin.HandlerFunc) []router.RouteRegistrar {
	seller := router.NewDomainGroup("storefront", "/seller").
		GET("/:slug", h.Storefront.Seller)

	dashboard := router.NewDomainGroup("dashboard", "/dashboard").
		Use(guard).
		GET("/settings", h.Settings.Show).
		POST("/settings/profile", h.Settings.UpdateProfile).
		POST("/settings/address", h.Settings.SaveAddress)
	dashboard.Group("regionals", "/regionals").
		GET("/cities/:provinceId", h.Region.Cities).
		GET("/subdistricts/:cityId", h.Region.Subdistricts)

	return []router.RouteRegistrar{seller, dashboard}
}
