package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ovenfresh/pizza-order-api/internal/models"
	"github.com/ovenfresh/pizza-order-api/internal/services"
)

// OrderController handles checkout and the customer-facing order lifecycle.
type OrderController interface {
	CreatePaymentOrder(c *gin.Context)
	VerifyPayment(c *gin.Context)
	GetUserOrders(c *gin.Context)
	GetOrder(c *gin.Context)
	CancelOrder(c *gin.Context)
	RequestRefund(c *gin.Context)
	RateOrder(c *gin.Context)
}

type orderController struct {
	service services.OrderService
}

func NewOrderController(service services.OrderService) *orderController {
	return &orderController{service: service}
}

func listQuery(c *gin.Context) services.OrderListQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return services.OrderListQuery{
		Page:   page,
		Limit:  limit,
		Status: models.OrderStatus(c.Query("status")),
	}
}

// CreatePaymentOrder godoc
// @Summary Price a cart and open a payment order with the gateway
// @Description Validates ingredients and stock, prices each pizza and returns the gateway order for the checkout widget
// @Tags orders
// @Accept json
// @Produce json
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 409 {object} Envelope
// @Security BearerAuth
// @Router /api/v1/orders/create-payment-order [post]
func (oc *orderController) CreatePaymentOrder(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	draft, err := oc.service.CreatePaymentOrder(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, "Payment order created", draft)
}

// VerifyPayment godoc
// @Summary Verify a gateway payment signature and confirm the order
// @Description Confirms the order and decrements ingredient stock atomically. Replays of an already-verified payment succeed without side effects.
// @Tags orders
// @Accept json
// @Produce json
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Security BearerAuth
// @Router /api/v1/orders/verify-payment [post]
func (oc *orderController) VerifyPayment(c *gin.Context) {
	var req services.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := oc.service.VerifyPayment(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Payment verified, order confirmed", order)
}

// GetUserOrders godoc
// @Summary List the authenticated user's orders
// @Tags orders
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Filter by order status"
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /api/v1/orders/user [get]
func (oc *orderController) GetUserOrders(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	page, err := oc.service.GetUserOrders(userID, listQuery(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "", page)
}

// GetOrder godoc
// @Summary Get one of the authenticated user's orders
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /api/v1/orders/{id} [get]
func (oc *orderController) GetOrder(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseID(c)
	if !ok {
		return
	}

	order, err := oc.service.GetUserOrder(userID, orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "", order)
}

// CancelOrder godoc
// @Summary Cancel an order that has not started preparation
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} Envelope
// @Failure 409 {object} Envelope
// @Security BearerAuth
// @Router /api/v1/orders/{id}/cancel [put]
func (oc *orderController) CancelOrder(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"max=500"`
	}
	// An empty body is a bare cancellation
	_ = c.ShouldBindJSON(&req)

	order, err := oc.service.CancelOrder(userID, orderID, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Order cancelled", order)
}

// RequestRefund godoc
// @Summary Request a refund on a paid, undelivered order
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} Envelope
// @Failure 409 {object} Envelope
// @Security BearerAuth
// @Router /api/v1/orders/{id}/refund [post]
func (oc *orderController) RequestRefund(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required,max=500"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := oc.service.RequestRefund(userID, orderID, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Refund requested", order)
}

// RateOrder godoc
// @Summary Rate a delivered order
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 409 {object} Envelope
// @Security BearerAuth
// @Router /api/v1/orders/{id}/rate [post]
func (oc *orderController) RateOrder(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Rating int    `json:"rating" binding:"required"`
		Review string `json:"review" binding:"max=1000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := oc.service.RateOrder(userID, orderID, req.Rating, req.Review); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Thanks for your feedback", nil)
}
