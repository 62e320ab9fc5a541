package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	contentapp "github.com/marketplace/backend/internal/application/content"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
)

// ContentHandler serves the home page, counters, articles and payment channels
type ContentHandler struct {
	BaseHandler
	homeService    *contentapp.HomeService
	articleService *contentapp.ArticleService
	paymentService *contentapp.PaymentService
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(
	homeService *contentapp.HomeService,
	articleService *contentapp.ArticleService,
	paymentService *contentapp.PaymentService,
) *ContentHandler {
	return &ContentHandler{
		homeService:    homeService,
		articleService: articleService,
		paymentService: paymentService,
	}
}

// Home godoc
// @Summary      Home page
// @Description  Returns categories, product strips and the latest articles
// @Tags         content
// @Produce      json
// @Success      200 {object} dto.Response{data=contentapp.HomeResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/home [get]
func (h *ContentHandler) Home(c *gin.Context) {
	home, err := h.homeService.Home(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, home)
}

// Stats godoc
// @Summary      Marketplace counters
// @Tags         content
// @Produce      json
// @Success      200 {object} dto.Response{data=contentapp.StatsResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/stats-count [get]
func (h *ContentHandler) Stats(c *gin.Context) {
	stats, err := h.homeService.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// Articles godoc
// @Summary      List articles
// @Description  Lists published articles, newest first
// @Tags         content
// @Produce      json
// @Param        page query int false "Page number" minimum(1)
// @Success      200 {object} dto.Response{data=[]contentapp.ArticleResponse,meta=dto.Meta}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/article [get]
func (h *ContentHandler) Articles(c *gin.Context) {
	var req dto.PageRequest
	if !h.bindQuery(c, &req) {
		return
	}

	articles, err := h.articleService.List(c.Request.Context(), req.Page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(articles))
}

// Article godoc
// @Summary      Get an article
// @Tags         content
// @Produce      json
// @Param        id path string true "Article ID" format(uuid)
// @Success      200 {object} dto.Response{data=contentapp.ArticleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/article/{id} [get]
func (h *ContentHandler) Article(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	article, err := h.articleService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, article)
}

// PaymentMethods godoc
// @Summary      List payment channels
// @Tags         content
// @Produce      json
// @Success      200 {object} dto.Response{data=[]contentapp.PaymentMethodResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/payment/payment-list [get]
func (h *ContentHandler) PaymentMethods(c *gin.Context) {
	methods, err := h.paymentService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, methods)
}
