package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	catalogapp "github.com/marketplace/backend/internal/application/catalog"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// Product messages shown by the storefront
const (
	msgProductCreated = "Product berhasil disimpan."
	msgProductUpdated = "Product berhasil diperbarui."
	msgProductDeleted = "Product berhasil dihapus."
)

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// ListProductsRequest holds the listing switches. A switch is on when its
// parameter is present and non-empty.
type ListProductsRequest struct {
	Rating       string `form:"rating"`
	Promo        string `form:"promo"`
	Latest       string `form:"latest"`
	LowestPrice  string `form:"lowest_price"`
	HighestPrice string `form:"highest_price"`
	CategoryID   string `form:"category_id" binding:"omitempty,uuid"`
	Search       string `form:"search" binding:"max=255"`
	Page         int    `form:"page" binding:"omitempty,min=1,max=10000"`
}

// Params converts the request into catalog listing params
func (r ListProductsRequest) Params() catalog.ListParams {
	p := catalog.ListParams{
		Rating:       r.Rating != "",
		Promo:        r.Promo != "",
		Latest:       r.Latest != "",
		LowestPrice:  r.LowestPrice != "",
		HighestPrice: r.HighestPrice != "",
		Search:       r.Search,
		Page:         r.Page,
	}
	if id, err := uuid.Parse(r.CategoryID); err == nil {
		p.CategoryID = &id
	}
	return p
}

// VariantRequest is one element of the variants field
type VariantRequest struct {
	ID          *string `json:"id" binding:"omitempty,uuid"`
	VariantName string  `json:"variant_name" binding:"required,max=255"`
	Price       *int64  `json:"price" binding:"required,min=0"`
	Stock       *int    `json:"stock" binding:"required,min=0"`
	Weight      *int    `json:"weight" binding:"omitempty,min=1"`
	Discount    *int    `json:"discount" binding:"omitempty,min=1,max=100"`
}

// StoreProductRequest is the store-or-update body. Images holds the URL
// elements of a JSON body; form bodies may mix files and URLs and are
// decoded by hand.
type StoreProductRequest struct {
	ID            *string          `json:"id" binding:"omitempty,uuid"`
	Name          string           `json:"name" binding:"required,max=255"`
	CategoryID    string           `json:"category_id" binding:"required,uuid"`
	SubCategoryID *string          `json:"sub_category_id" binding:"omitempty,uuid"`
	Price         *int64           `json:"price" binding:"required,min=0"`
	Discount      *int             `json:"discount" binding:"omitempty,min=1,max=100"`
	Stock         *int             `json:"stock" binding:"required,min=0"`
	Weight        *int             `json:"weight" binding:"required,min=1"`
	Unit          string           `json:"unit" binding:"required,max=255"`
	Description   string           `json:"description" binding:"required"`
	Images        []string         `json:"images" binding:"-"`
	Variants      []VariantRequest `json:"variants" binding:"omitempty,dive"`

	images []catalogapp.ImageInput
}

// List godoc
// @Summary      List products
// @Description  Public product listing. A switch parameter is on when it is present and non-empty.
// @Tags         products
// @Produce      json
// @Param        rating query string false "Sort by rating"
// @Param        promo query string false "Discounted products only"
// @Param        latest query string false "Newest first"
// @Param        lowest_price query string false "Cheapest first"
// @Param        highest_price query string false "Most expensive first"
// @Param        category_id query string false "Category ID" format(uuid)
// @Param        search query string false "Name contains"
// @Param        page query int false "Page number" minimum(1) maximum(10000)
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse,meta=dto.Meta}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/product [get]
func (h *ProductHandler) List(c *gin.Context) {
	var req ListProductsRequest
	if !h.bindQuery(c, &req) {
		return
	}

	result, err := h.productService.List(c.Request.Context(), req.Params())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(result))
}

// Show godoc
// @Summary      Get a product page
// @Description  Returns the product with its seller, variants and related products. Signed-in viewers also get delivery options to their main address.
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.ProductPageResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /api/product/{id} [get]
func (h *ProductHandler) Show(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	page, err := h.productService.Show(c.Request.Context(), id, viewer(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// SellerProducts godoc
// @Summary      List my products
// @Tags         products
// @Produce      json
// @Param        page query int false "Page number" minimum(1) maximum(10000)
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse,meta=dto.Meta}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /api/product/seller/my-products [get]
func (h *ProductHandler) SellerProducts(c *gin.Context) {
	sellerID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req dto.PageRequest
	if !h.bindQuery(c, &req) {
		return
	}

	result, err := h.productService.SellerProducts(c.Request.Context(), sellerID, req.Page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(result))
}

// StoreOrUpdate godoc
// @Summary      Create or update a product
// @Description  Creates a product, or updates the caller's product named by id. Multipart bodies may mix uploaded images with image URLs.
// @Tags         products
// @Accept       json,mpfd
// @Produce      json
// @Param        request body StoreProductRequest true "Product"
// @Success      200 {object} dto.Response{data=catalogapp.ProductDetailResponse}
// @Success      201 {object} dto.Response{data=catalogapp.ProductDetailResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /api/product/store-or-update-product [post]
func (h *ProductHandler) StoreOrUpdate(c *gin.Context) {
	sellerID, ok := h.currentUser(c)
	if !ok {
		return
	}

	req, ok := h.decodeStoreProduct(c)
	if !ok {
		return
	}

	input := catalogapp.StoreProductInput{
		Name:        strings.TrimSpace(req.Name),
		CategoryID:  uuid.MustParse(req.CategoryID),
		Price:       *req.Price,
		Discount:    req.Discount,
		Stock:       *req.Stock,
		Weight:      *req.Weight,
		Unit:        strings.TrimSpace(req.Unit),
		Description: req.Description,
		Images:      req.images,
	}
	if req.ID != nil {
		id := uuid.MustParse(*req.ID)
		input.ID = &id
	}
	if req.SubCategoryID != nil {
		id := uuid.MustParse(*req.SubCategoryID)
		input.SubCategoryID = &id
	}
	if req.Variants != nil {
		input.Variants = make([]catalog.VariantInput, 0, len(req.Variants))
		for _, v := range req.Variants {
			input.Variants = append(input.Variants, v.toInput())
		}
	}

	result, err := h.productService.StoreOrUpdate(c.Request.Context(), sellerID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if result.Created {
		h.Created(c, result.Product, msgProductCreated)
		return
	}
	h.SuccessMessage(c, result.Product, msgProductUpdated)
}

// Delete godoc
// @Summary      Delete a product
// @Description  Soft-deletes one of the caller's products and its variants
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /api/product/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	sellerID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), sellerID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessMessage(c, nil, msgProductDeleted)
}

// decodeStoreProduct binds and validates a JSON or form body
func (h *ProductHandler) decodeStoreProduct(c *gin.Context) (*StoreProductRequest, bool) {
	var req StoreProductRequest

	if isFormRequest(c) {
		form, err := newFormReader(c)
		if err != nil {
			h.BadRequest(c, "Malformed request body")
			return nil, false
		}
		req = productFromForm(form)
		if len(form.errs) > 0 {
			h.ValidationError(c, form.errs)
			return nil, false
		}
		if err := binding.Validator.ValidateStruct(&req); err != nil {
			middleware.HandleValidationError(c, err)
			return nil, false
		}
	} else {
		if !h.bind(c, &req) {
			return nil, false
		}
		for _, url := range req.Images {
			req.images = append(req.images, catalogapp.ImageInput{URL: url})
		}
	}

	if details := validateImages(req.images); details != nil {
		h.ValidationError(c, details)
		return nil, false
	}
	return &req, true
}

// productFromForm decodes a multipart or urlencoded store-or-update body.
// An empty variants value sends an empty variant list.
func productFromForm(form *formReader) StoreProductRequest {
	req := StoreProductRequest{
		ID:            form.optStr("id"),
		Name:          form.str("name"),
		CategoryID:    form.str("category_id"),
		SubCategoryID: form.optStr("sub_category_id"),
		Price:         form.int64Val("price"),
		Discount:      form.intVal("discount"),
		Stock:         form.intVal("stock"),
		Weight:        form.intVal("weight"),
		Unit:          form.str("unit"),
		Description:   form.values.Get("description"),
	}

	for _, el := range form.list("images") {
		if el.file != nil {
			req.images = append(req.images, catalogapp.ImageInput{File: FileFromHeader(el.file)})
			continue
		}
		req.images = append(req.images, catalogapp.ImageInput{URL: el.value})
	}

	if form.has("variants") || form.has("variants[]") {
		req.Variants = []VariantRequest{}
	}
	form.each("variants", func(obj *formReader) {
		req.Variants = append(req.Variants, VariantRequest{
			ID:          obj.optStr("id"),
			VariantName: obj.str("variant_name"),
			Price:       obj.int64Val("price"),
			Stock:       obj.intVal("stock"),
			Weight:      obj.intVal("weight"),
			Discount:    obj.intVal("discount"),
		})
	})
	return req
}

// validateImages requires at least one image and no blank URL element
func validateImages(images []catalogapp.ImageInput) []dto.ValidationDetail {
	if len(images) == 0 {
		return []dto.ValidationDetail{{Field: "images", Message: "The images field is required."}}
	}
	var details []dto.ValidationDetail
	for i, img := range images {
		if img.File == nil && strings.TrimSpace(img.URL) == "" {
			details = append(details, dto.ValidationDetail{
				Field:   fmt.Sprintf("images.%d", i),
				Message: fmt.Sprintf("The images.%d must be a file or a URL.", i),
			})
		}
	}
	return details
}

func (v VariantRequest) toInput() catalog.VariantInput {
	in := catalog.VariantInput{
		VariantName: strings.TrimSpace(v.VariantName),
		Price:       *v.Price,
		Stock:       *v.Stock,
		Weight:      v.Weight,
		Discount:    v.Discount,
	}
	if v.ID != nil {
		id := uuid.MustParse(*v.ID)
		in.ID = &id
	}
	return in
}
