package service

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/shopweb/shopweb-api/internal/apperrors"
	"github.com/shopweb/shopweb-api/internal/models"
	"github.com/shopweb/shopweb-api/internal/repository"
)

// CartManager is the full cart store surface used by the cart
// endpoints. The order aggregate only ever clears carts and uses the
// narrower CartStore.
type CartManager interface {
	View(ctx context.Context, q repository.Querier, userID int64) (*models.CartView, error)
	AddItem(ctx context.Context, q repository.Querier, userID, variantID int64, quantity int) (int64, error)
	UpdateItemQuantity(ctx context.Context, q repository.Querier, userID, cartItemID int64, quantity int) error
	RemoveItem(ctx context.Context, q repository.Querier, userID, cartItemID int64) error
}

// VariantReader validates that a variant exists before it is staged.
type VariantReader interface {
	GetVariant(ctx context.Context, q repository.Querier, variantID int64) (price int64, stock int, err error)
}

// CartService manages the per-user staging cart.
type CartService struct {
	db       *sql.DB
	carts    CartManager
	variants VariantReader
	logger   zerolog.Logger
}

// NewCartService wires the cart endpoints' service.
func NewCartService(db *sql.DB, carts CartManager, variants VariantReader, logger zerolog.Logger) *CartService {
	return &CartService{
		db:       db,
		carts:    carts,
		variants: variants,
		logger:   logger.With().Str("component", "cart-service").Logger(),
	}
}

// GetCart returns the caller's cart with display fields.
func (s *CartService) GetCart(ctx context.Context, userID int64) (*models.CartView, error) {
	return s.carts.View(ctx, s.db, userID)
}

// AddItem stages a variant in the caller's cart. The variant must
// exist; stock is not reserved until checkout.
func (s *CartService) AddItem(ctx context.Context, userID, variantID int64, quantity int) (int64, error) {
	if quantity <= 0 {
		return 0, apperrors.NewValidationError("quantity", "quantity must be greater than zero")
	}
	if _, _, err := s.variants.GetVariant(ctx, s.db, variantID); err != nil {
		return 0, err
	}
	return s.carts.AddItem(ctx, s.db, userID, variantID, quantity)
}

// UpdateItemQuantity changes the quantity of a staged item.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, cartItemID int64, quantity int) error {
	if quantity <= 0 {
		return apperrors.NewValidationError("quantity", "quantity must be greater than zero")
	}
	return s.carts.UpdateItemQuantity(ctx, s.db, userID, cartItemID, quantity)
}

// RemoveItem deletes a staged item from the caller's cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, cartItemID int64) error {
	return s.carts.RemoveItem(ctx, s.db, userID, cartItemID)
}
