package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ovenfresh/pizza-order-api/internal/models"
	"github.com/ovenfresh/pizza-order-api/internal/services"
)

// AdminController serves the back-office dashboard, order management and the
// inventory monitor controls.
type AdminController interface {
	Dashboard(c *gin.Context)
	SalesAnalytics(c *gin.Context)
	ListOrders(c *gin.Context)
	UpdateOrderStatus(c *gin.Context)
	MonitorStatus(c *gin.Context)
	MonitorCheck(c *gin.Context)
}

type adminController struct {
	orders  services.OrderService
	monitor *services.InventoryMonitor
}

func NewAdminController(orders services.OrderService, monitor *services.InventoryMonitor) *adminController {
	return &adminController{orders: orders, monitor: monitor}
}

// Dashboard godoc
// @Summary Back-office overview numbers
// @Tags admin
// @Produce json
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /api/v1/admin/dashboard [get]
func (ac *adminController) Dashboard(c *gin.Context) {
	overview, err := ac.orders.DashboardOverview()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "", overview)
}

// SalesAnalytics godoc
// @Summary Sales analytics over a recent window
// @Tags admin
// @Produce json
// @Param period query string false "Window: 7d, 30d or 90d" default(30d)
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /api/v1/admin/analytics [get]
func (ac *adminController) SalesAnalytics(c *gin.Context) {
	report, err := ac.orders.SalesAnalytics(c.DefaultQuery("period", "30d"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "", report)
}

// ListOrders godoc
// @Summary List all orders with optional status filter
// @Tags admin
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Filter by order status"
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /api/v1/admin/orders [get]
func (ac *adminController) ListOrders(c *gin.Context) {
	page, err := ac.orders.ListOrders(listQuery(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "", page)
}

// UpdateOrderStatus godoc
// @Summary Move an order through its lifecycle
// @Description Transitions follow the kitchen flow. Setting override bypasses the flow and is recorded in the order's history.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} Envelope
// @Failure 409 {object} Envelope
// @Security BearerAuth
// @Router /api/v1/admin/orders/{id}/status [put]
func (ac *adminController) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Status   models.OrderStatus `json:"status" binding:"required"`
		Note     string             `json:"note" binding:"max=500"`
		Override bool               `json:"override"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if !req.Status.Valid() {
		respondError(c, http.StatusBadRequest, models.NewAPIError(
			models.ErrBadRequest, "Unknown order status: "+string(req.Status)))
		return
	}

	order, err := ac.orders.UpdateStatus(c.Request.Context(), orderID, req.Status, req.Note, req.Override)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Order status updated", order)
}

// MonitorStatus godoc
// @Summary Inventory monitor state
// @Tags admin
// @Produce json
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /api/v1/admin/inventory/monitor/status [get]
func (ac *adminController) MonitorStatus(c *gin.Context) {
	respondOK(c, "", ac.monitor.Status())
}

// MonitorCheck godoc
// @Summary Run an inventory sweep immediately
// @Tags admin
// @Produce json
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /api/v1/admin/inventory/monitor/check [post]
func (ac *adminController) MonitorCheck(c *gin.Context) {
	report, err := ac.monitor.CheckNow()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Inventory check completed", report)
}
