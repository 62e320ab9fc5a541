package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/marketplace/backend/internal/application/trade"
	"github.com/marketplace/backend/internal/domain/shipping"
	"github.com/marketplace/backend/internal/domain/trade"
)

// CheckoutHandler prices carts and looks up shipping
type CheckoutHandler struct {
	BaseHandler
	checkoutService *tradeapp.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *tradeapp.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// CartItemRequest is one cart line
type CartItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// PrecheckRequest is the cart sent by the checkout page
type PrecheckRequest struct {
	Items     []CartItemRequest `json:"items" binding:"required,min=1,dive"`
	AddressID *string           `json:"address_id" binding:"omitempty,uuid"`
	Couriers  []string          `json:"couriers" binding:"omitempty,dive,alpha,max=20"`
}

// ShippingPriceRequest is the check-shipping-price query
type ShippingPriceRequest struct {
	Origin      int    `form:"origin" binding:"required,min=1"`
	Destination int    `form:"destination" binding:"required,min=1"`
	Weight      int    `form:"weight" binding:"required,min=1"`
	Courier     string `form:"courier" binding:"max=100"`
}

// WaybillRequest asks for the tracking history of a shipment
type WaybillRequest struct {
	Waybill string `json:"waybill" form:"waybill" binding:"required,max=100"`
	Courier string `json:"courier" form:"courier" binding:"required,max=20"`
}

// Input converts a validated request
func (r PrecheckRequest) Input() tradeapp.PrecheckInput {
	in := tradeapp.PrecheckInput{
		Items:    make([]trade.CartItem, 0, len(r.Items)),
		Couriers: r.Couriers,
	}
	for _, item := range r.Items {
		in.Items = append(in.Items, trade.CartItem{
			ProductID: uuid.MustParse(item.ProductID),
			Quantity:  item.Quantity,
		})
	}
	if r.AddressID != nil {
		id := uuid.MustParse(*r.AddressID)
		in.AddressID = &id
	}
	return in
}

// PrecheckEarly godoc
// @Summary      Price a cart
// @Description  Prices the cart and reports stock shortfalls without failing on them
// @Tags         order
// @Accept       json
// @Produce      json
// @Param        request body PrecheckRequest true "Cart"
// @Success      200 {object} dto.Response{data=tradeapp.CheckoutResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/order/precheck-early [post]
func (h *CheckoutHandler) PrecheckEarly(c *gin.Context) {
	var req PrecheckRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.checkoutService.PrecheckEarly(c.Request.Context(), req.Input().Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Precheck godoc
// @Summary      Price a cart for checkout
// @Description  Prices the cart and requires every line to be in stock
// @Tags         order
// @Accept       json
// @Produce      json
// @Param        request body PrecheckRequest true "Cart"
// @Success      200 {object} dto.Response{data=tradeapp.CheckoutResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /api/order/precheck [post]
func (h *CheckoutHandler) Precheck(c *gin.Context) {
	buyerID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req PrecheckRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.checkoutService.Precheck(c.Request.Context(), buyerID, req.Input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// PrecheckWithDelivery godoc
// @Summary      Price a cart with delivery
// @Description  Prices the cart and the delivery options of every seller group to the chosen address
// @Tags         order
// @Accept       json
// @Produce      json
// @Param        request body PrecheckRequest true "Cart with address"
// @Success      200 {object} dto.Response{data=tradeapp.CheckoutResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /api/order/precheck-with-delivery [post]
func (h *CheckoutHandler) PrecheckWithDelivery(c *gin.Context) {
	buyerID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req PrecheckRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.checkoutService.PrecheckWithDelivery(c.Request.Context(), buyerID, req.Input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CheckShippingPrice godoc
// @Summary      Price a delivery
// @Tags         order
// @Produce      json
// @Param        origin query int true "Origin subdistrict ID"
// @Param        destination query int true "Destination subdistrict ID"
// @Param        weight query int true "Weight in grams"
// @Param        courier query string false "Couriers separated by : or ,"
// @Success      200 {object} dto.Response{data=[]shipping.CostOption}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/order/check-shipping-price [get]
func (h *CheckoutHandler) CheckShippingPrice(c *gin.Context) {
	var req ShippingPriceRequest
	if !h.bindQuery(c, &req) {
		return
	}

	options, err := h.checkoutService.CheckShippingPrice(c.Request.Context(), shipping.CostQuery{
		Origin:      req.Origin,
		Destination: req.Destination,
		Weight:      req.Weight,
		Couriers:    splitCouriers(req.Courier),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, options)
}

// WaybillCheck godoc
// @Summary      Track a shipment
// @Tags         order
// @Accept       json
// @Produce      json
// @Param        request body WaybillRequest true "Waybill"
// @Success      200 {object} dto.Response{data=shipping.Waybill}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/order/waybill-check [post]
func (h *CheckoutHandler) WaybillCheck(c *gin.Context) {
	var req WaybillRequest
	if !h.bind(c, &req) {
		return
	}

	waybill, err := h.checkoutService.Waybill(c.Request.Context(), req.Waybill, req.Courier)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, waybill)
}

func splitCouriers(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ':' || r == ','
	})
	couriers := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			couriers = append(couriers, f)
		}
	}
	if len(couriers) == 0 {
		return nil
	}
	return couriers
}
