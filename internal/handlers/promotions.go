package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopweb/shopweb-api/internal/models"
)

// ApplyPromotion handles POST /api/v1/promotions/apply. It previews the
// discount a code would give on a total, without placing an order.
func (h *Handlers) ApplyPromotion(c *gin.Context) {
	var req models.ApplyPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.promotions.Preview(c.Request.Context(), req.Code, req.TotalAmount)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
