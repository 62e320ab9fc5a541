package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.Equal(t, DefaultPrefix, r.prefix)
	assert.Empty(t, r.registrars)
}

func TestRouterWithPrefix(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithPrefix("/internal"))

	r.Register(NewDomainGroup("test", "/test").GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	}))
	r.Setup()

	w := serve(engine, http.MethodGet, "/internal/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/test/ping").Code)
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("catalog", "/product")
		assert.Equal(t, "catalog", g.Name())
		assert.Equal(t, "/product", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
		NewDomainGroup("test", "/items").
			GET("", ok).
			POST("/store", ok).
			PUT("/:id", ok).
			DELETE("/:id", ok).
			Handle(http.MethodPatch, "/:id", ok).
			RegisterRoutes(engine.Group("/api"))

		for method, target := range map[string]string{
			http.MethodGet:    "/api/items",
			http.MethodPost:   "/api/items/store",
			http.MethodPut:    "/api/items/7",
			http.MethodDelete: "/api/items/7",
			http.MethodPatch:  "/api/items/7",
		} {
			w := serve(engine, method, target)
			assert.Equal(t, http.StatusOK, w.Code, method)
			assert.Equal(t, method, w.Body.String())
		}
	})

	t.Run("group middleware runs before routes", func(t *testing.T) {
		engine := gin.New()
		NewDomainGroup("test", "/test").
			Use(func(c *gin.Context) {
				c.Header("X-Group", "applied")
				c.Next()
			}).
			GET("/items", func(c *gin.Context) { c.Status(http.StatusOK) }).
			RegisterRoutes(engine.Group("/api"))

		w := serve(engine, http.MethodGet, "/api/test/items")
		assert.Equal(t, "applied", w.Header().Get("X-Group"))
	})

	t.Run("subgroups nest", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("order", "/order")
		g.Group("shipping", "/shipping").GET("/price", func(c *gin.Context) {
			c.String(http.StatusOK, "price")
		})
		g.RegisterRoutes(engine.Group("/api"))

		w := serve(engine, http.MethodGet, "/api/order/shipping/price")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "price", w.Body.String())
	})
}

func TestAPIGroups(t *testing.T) {
	denied := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
	pass := func(c *gin.Context) { c.Next() }

	engine := gin.New()
	NewRouter(engine).
		Register(APIGroups(Handlers{}, Guards{Required: denied, Optional: pass})...).
		Setup()

	registered := map[string]bool{}
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"GET /api/product",
		"GET /api/product/:id",
		"GET /api/product/seller/my-products",
		"POST /api/product/store-or-update-product",
		"DELETE /api/product/:id",
		"GET /api/category",
		"POST /api/user/login-firebase",
		"POST /api/user/login",
		"GET /api/user",
		"GET /api/user/profile",
		"POST /api/user/update-profile",
		"POST /api/user/update-seller",
		"POST /api/user/logout",
		"GET /api/addresses",
		"POST /api/addresses/store-or-update",
		"POST /api/addresses/set-main-address/:id",
		"DELETE /api/addresses/delete/:id",
		"GET /api/regionals/provinces",
		"GET /api/regionals/cities/:provinceId",
		"GET /api/regionals/subdistricts/:cityId",
		"POST /api/order/precheck-early",
		"POST /api/order/precheck",
		"POST /api/order/precheck-with-delivery",
		"GET /api/order/check-shipping-price",
		"POST /api/order/waybill-check",
		"GET /api/home",
		"GET /api/stats-count",
		"GET /api/article",
		"GET /api/article/:id",
		"GET /api/payment/payment-list",
	} {
		assert.True(t, registered[want], want)
	}

	guarded := [][2]string{
		{http.MethodGet, "/api/product/seller/my-products"},
		{http.MethodPost, "/api/product/store-or-update-product"},
		{http.MethodDelete, "/api/product/0b3c"},
		{http.MethodGet, "/api/user"},
		{http.MethodPost, "/api/user/logout"},
		{http.MethodGet, "/api/addresses"},
		{http.MethodDelete, "/api/addresses/delete/1"},
		{http.MethodPost, "/api/order/precheck"},
		{http.MethodPost, "/api/order/precheck-with-delivery"},
	}
	for _, route := range guarded {
		w := serve(engine, route[0], route[1])
		require.Equal(t, http.StatusUnauthorized, w.Code, route[1])
	}
}
