// Package handlers implements the HTTP surface. Handlers bind and
// validate request bodies, resolve the authenticated caller, delegate
// to the service layer, and map errors to status codes.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/shopweb/shopweb-api/internal/apperrors"
	"github.com/shopweb/shopweb-api/internal/models"
)

// OrderService is the order aggregate surface the handlers call.
type OrderService interface {
	Create(ctx context.Context, userID int64, req *models.CreateOrderRequest) (int64, error)
	Cancel(ctx context.Context, orderID, callerID int64, role models.Role) error
	UpdateStatus(ctx context.Context, orderID int64, target models.OrderStatus) error
	GetOrder(ctx context.Context, orderID, callerID int64, role models.Role) (*models.OrderDetail, error)
	ListOrders(ctx context.Context, callerID int64) ([]models.OrderSummary, error)
	ListAllOrders(ctx context.Context) ([]models.OrderSummary, error)
}

// PromotionService previews a discount without placing an order.
type PromotionService interface {
	Preview(ctx context.Context, code string, totalAmount int64) (*models.PromotionResult, error)
}

// CartService manages the caller's staging cart.
type CartService interface {
	GetCart(ctx context.Context, userID int64) (*models.CartView, error)
	AddItem(ctx context.Context, userID, variantID int64, quantity int) (int64, error)
	UpdateItemQuantity(ctx context.Context, userID, cartItemID int64, quantity int) error
	RemoveItem(ctx context.Context, userID, cartItemID int64) error
}

// Pinger reports backing-store health for readiness checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers bundles the HTTP handlers and their dependencies.
type Handlers struct {
	orders     OrderService
	promotions PromotionService
	carts      CartService
	db         Pinger
	cache      Pinger
	logger     zerolog.Logger
}

// New creates the handler set. cache may be nil when caching is off.
func New(orders OrderService, promotions PromotionService, carts CartService, db, cache Pinger, logger zerolog.Logger) *Handlers {
	return &Handlers{
		orders:     orders,
		promotions: promotions,
		carts:      carts,
		db:         db,
		cache:      cache,
		logger:     logger.With().Str("component", "handlers").Logger(),
	}
}

// handleError translates service errors into HTTP responses. Ownership
// failures and missing resources both answer 404. Business-rule
// failures answer 400 with their reason. Everything else is an
// infrastructure error: logged, answered generically.
func (h *Handlers) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
	case apperrors.IsBusiness(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error().Err(err).
			Str("path", c.FullPath()).
			Str("method", c.Request.Method).
			Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
