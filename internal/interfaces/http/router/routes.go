package router

import (
	"github.com/gin-gonic/gin"
	"github.com/marketplace/backend/internal/interfaces/http/handler"
)

// Handlers bundles the JSON API handlers
type Handlers struct {
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Address  *handler.AddressHandler
	Region   *handler.RegionHandler
	Checkout *handler.CheckoutHandler
	Content  *handler.ContentHandler
}

// Guards are the bearer guards. Required rejects anonymous callers with 401;
// Optional loads the user when a valid token is present.
type Guards struct {
	Required gin.HandlerFunc
	Optional gin.HandlerFunc
}

// APIGroups returns the route groups of the JSON API
func APIGroups(h Handlers, g Guards) []RouteRegistrar {
	product := NewDomainGroup("product", "/product").
		GET("", h.Product.List).
		GET("/seller/my-products", g.Required, h.Product.SellerProducts).
		POST("/store-or-update-product", g.Required, h.Product.StoreOrUpdate).
		GET("/:id", g.Optional, h.Product.Show).
		DELETE("/:id", g.Required, h.Product.Delete)

	category := NewDomainGroup("category", "/category").
		GET("", h.Category.List)

	user := NewDomainGroup("user", "/user").
		POST("/login-firebase", h.Auth.LoginFirebase).
		POST("/login", h.Auth.Login).
		GET("", g.Required, h.User.Me).
		GET("/profile", g.Required, h.User.Profile).
		POST("/update-profile", g.Required, h.User.UpdateProfile).
		POST("/update-seller", g.Required, h.User.UpdateSeller).
		POST("/logout", g.Required, h.Auth.Logout)

	addresses := NewDomainGroup("address", "/addresses").
		Use(g.Required).
		GET("", h.Address.List).
		POST("/store-or-update", h.Address.StoreOrUpdate).
		POST("/set-main-address/:id", h.Address.SetMain).
		DELETE("/delete/:id", h.Address.Delete)

	regionals := NewDomainGroup("region", "/regionals").
		GET("/provinces", h.Region.Provinces).
		GET("/cities/:provinceId", h.Region.Cities).
		GET("/subdistricts/:cityId", h.Region.Subdistricts)

	// Pricing a delivery needs the buyer's address book, the rest is public
	order := NewDomainGroup("trade", "/order").
		POST("/precheck-early", h.Checkout.PrecheckEarly).
		POST("/precheck", g.Required, h.Checkout.Precheck).
		POST("/precheck-with-delivery", g.Required, h.Checkout.PrecheckWithDelivery).
		GET("/check-shipping-price", h.Checkout.CheckShippingPrice).
		POST("/waybill-check", h.Checkout.WaybillCheck)

	content := NewDomainGroup("content", "").
		GET("/home", h.Content.Home).
		GET("/stats-count", h.Content.Stats).
		GET("/article", h.Content.Articles).
		GET("/article/:id", h.Content.Article).
		GET("/payment/payment-list", h.Content.PaymentMethods)

	return []RouteRegistrar{product, category, user, addresses, regionals, order, content}
}
