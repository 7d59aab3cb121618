package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopweb/shopweb-api/internal/apperrors"
	"github.com/shopweb/shopweb-api/internal/models"
	"github.com/shopweb/shopweb-api/internal/repository"
)

// PromotionEvaluator validates promotion codes and computes discounted
// totals. It is side-effect free: checkout calls Apply inside its
// transaction, and the preview endpoint calls Preview against the pool,
// both through the same code path.
type PromotionEvaluator struct {
	db         *sql.DB
	promotions PromotionStore
	now        func() time.Time
}

// NewPromotionEvaluator creates an evaluator reading through db for
// previews.
func NewPromotionEvaluator(db *sql.DB, promotions PromotionStore) *PromotionEvaluator {
	return &PromotionEvaluator{
		db:         db,
		promotions: promotions,
		now:        time.Now,
	}
}

// Apply validates code against its time window and minimum order value
// and returns the promotion id with the discounted total. The total is
// clamped at zero for fixed discounts larger than the order.
func (e *PromotionEvaluator) Apply(ctx context.Context, q repository.Querier, code string, totalAmount int64) (*models.PromotionResult, error) {
	if code == "" {
		return nil, apperrors.NewValidationError("code", "promotion code is required")
	}
	if totalAmount <= 0 {
		return nil, apperrors.NewValidationError("total_amount", "total amount must be positive")
	}

	promo, err := e.promotions.GetByCode(ctx, q, code)
	if err != nil {
		return nil, err
	}

	now := e.now()
	if now.Before(promo.StartDate) {
		return nil, apperrors.ErrPromotionNotStarted
	}
	if now.After(promo.EndDate) {
		return nil, apperrors.ErrPromotionExpired
	}

	if totalAmount < promo.MinOrderValue {
		return nil, &apperrors.BelowMinimumError{Minimum: promo.MinOrderValue}
	}

	var discount int64
	switch promo.DiscountType {
	case models.DiscountPercentage:
		discount = totalAmount * promo.DiscountValue / 100
	case models.DiscountFixed:
		discount = promo.DiscountValue
	}

	newTotal := totalAmount - discount
	if newTotal < 0 {
		newTotal = 0
	}

	return &models.PromotionResult{
		PromotionID: promo.ID,
		NewTotal:    newTotal,
	}, nil
}

// Preview evaluates a code outside any transaction, for the discount
// preview endpoint. Idempotent; nothing is committed.
func (e *PromotionEvaluator) Preview(ctx context.Context, code string, totalAmount int64) (*models.PromotionResult, error) {
	return e.Apply(ctx, e.db, code, totalAmount)
}
