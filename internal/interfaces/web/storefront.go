package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/application/storefront"
	"github.com/marketplace/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Page templates
const (
	pageSeller   = "seller.html"
	pageSettings = "settings.html"
	pageNotFound = "not_found.html"
	pageError    = "error.html"
)

// layoutData is what the layout reads from every page
type layoutData struct {
	Title string
	Flash *Flash
}

type sellerView struct {
	layoutData
	*storefront.Page
	Path   string
	Params url.Values
}

// StorefrontHandler renders public seller pages
type StorefrontHandler struct {
	renderer   *Renderer
	storefront *storefront.Service
	logger     *zap.Logger
}

// NewStorefrontHandler creates a new StorefrontHandler
func NewStorefrontHandler(renderer *Renderer, svc *storefront.Service, logger *zap.Logger) *StorefrontHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StorefrontHandler{renderer: renderer, storefront: svc, logger: logger}
}

// Seller renders the storefront of the seller in :slug
func (h *StorefrontHandler) Seller(c *gin.Context) {
	page, err := h.storefront.SellerPage(c.Request.Context(), c.Param("slug"), parseSellerQuery(c))
	if err != nil {
		renderError(c, h.renderer, h.logger, err)
		return
	}

	h.renderer.Render(c, http.StatusOK, pageSeller, sellerView{
		layoutData: layoutData{Title: page.Seller.SellerName},
		Page:       page,
		Path:       c.Request.URL.Path,
		Params:     c.Request.URL.Query(),
	})
}

// parseSellerQuery reads the storefront switches. Malformed category ids and
// pages fall back to no filter and the first page.
func parseSellerQuery(c *gin.Context) storefront.Query {
	q := storefront.Query{
		Price:   c.Query("price"),
		Rating:  c.Query("rating"),
		OrderBy: c.Query("orderBy"),
		Page:    1,
	}
	if id, err := uuid.Parse(c.Query("category_id")); err == nil {
		q.CategoryID = &id
	}
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		q.Page = p
	}
	return q
}

// renderError shows the not found page for ErrNotFound and a generic error
// page for everything else
func renderError(c *gin.Context, r *Renderer, logger *zap.Logger, err error) {
	if errors.Is(err, shared.ErrNotFound) {
		r.Render(c, http.StatusNotFound, pageNotFound, layoutData{Title: "Halaman tidak ditemukan"})
		return
	}
	logger.Error("Page failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	r.Render(c, http.StatusInternalServerError, pageError, layoutData{Title: "Terjadi kesalahan"})
}
