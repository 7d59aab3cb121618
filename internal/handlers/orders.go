package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shopweb/shopweb-api/internal/middleware"
	"github.com/shopweb/shopweb-api/internal/models"
)

// CreateOrder handles POST /api/v1/orders. On success it answers 201
// with the full detail of the order it just placed.
func (h *Handlers) CreateOrder(c *gin.Context) {
	callerID, role, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	orderID, err := h.orders.Create(c.Request.Context(), callerID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	detail, err := h.orders.GetOrder(c.Request.Context(), orderID, callerID, role)
	if err != nil {
		// The order committed; answer with its id even if the read back
		// failed.
		h.logger.Error().Err(err).Int64("order_id", orderID).Msg("Failed to load created order")
		c.JSON(http.StatusCreated, gin.H{"order_id": orderID})
		return
	}

	c.JSON(http.StatusCreated, detail)
}

// GetOrder handles GET /api/v1/orders/:id.
func (h *Handlers) GetOrder(c *gin.Context) {
	callerID, role, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	orderID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	detail, err := h.orders.GetOrder(c.Request.Context(), orderID, callerID, role)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// ListOrders handles GET /api/v1/orders, returning the caller's own
// orders newest first.
func (h *Handlers) ListOrders(c *gin.Context) {
	callerID, _, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	orders, err := h.orders.ListOrders(c.Request.Context(), callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// ListAllOrders handles GET /api/v1/orders/admin/all. The route is
// admin-gated.
func (h *Handlers) ListAllOrders(c *gin.Context) {
	orders, err := h.orders.ListAllOrders(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// CancelOrder handles PUT /api/v1/orders/:id/cancel. Customers may
// cancel their own pending or processing orders; admins any.
func (h *Handlers) CancelOrder(c *gin.Context) {
	callerID, role, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	orderID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	if err := h.orders.Cancel(c.Request.Context(), orderID, callerID, role); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id": orderID,
		"status":   models.OrderStatusCancelled,
	})
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status. The route is
// admin-gated; a target of cancelled also restores stock.
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	orderID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.orders.UpdateStatus(c.Request.Context(), orderID, req.Status); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id": orderID,
		"status":   req.Status,
	})
}

func pathID(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
