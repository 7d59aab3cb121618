package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopweb/shopweb-api/internal/middleware"
	"github.com/shopweb/shopweb-api/internal/models"
)

// GetCart handles GET /api/v1/cart.
func (h *Handlers) GetCart(c *gin.Context) {
	callerID, _, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	cart, err := h.carts.GetCart(c.Request.Context(), callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// AddCartItem handles POST /api/v1/cart/items.
func (h *Handlers) AddCartItem(c *gin.Context) {
	callerID, _, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	itemID, err := h.carts.AddItem(c.Request.Context(), callerID, req.VariantID, req.Quantity)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"cart_item_id": itemID})
}

// UpdateCartItem handles PUT /api/v1/cart/items/:id.
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	callerID, _, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	itemID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item ID"})
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.carts.UpdateItemQuantity(c.Request.Context(), callerID, itemID, req.Quantity); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart_item_id": itemID, "quantity": req.Quantity})
}

// RemoveCartItem handles DELETE /api/v1/cart/items/:id.
func (h *Handlers) RemoveCartItem(c *gin.Context) {
	callerID, _, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	itemID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item ID"})
		return
	}

	if err := h.carts.RemoveItem(c.Request.Context(), callerID, itemID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart_item_id": itemID, "deleted": true})
}
