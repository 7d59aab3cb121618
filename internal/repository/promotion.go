package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopweb/shopweb-api/internal/apperrors"
	"github.com/shopweb/shopweb-api/internal/models"
)

// PromotionRepository reads promotion codes. Promotions are read-only
// to the order core.
type PromotionRepository struct{}

// NewPromotionRepository creates the promotion reader.
func NewPromotionRepository() *PromotionRepository {
	return &PromotionRepository{}
}

// GetByCode fetches a promotion by exact, case-sensitive code match.
func (r *PromotionRepository) GetByCode(ctx context.Context, q Querier, code string) (*models.Promotion, error) {
	var p models.Promotion
	err := q.QueryRowContext(ctx, `
		SELECT promotion_id, code, COALESCE(description, ''), discount_type,
		       discount_value, start_date, end_date, min_order_value
		FROM promotions
		WHERE code = $1`,
		code,
	).Scan(
		&p.ID,
		&p.Code,
		&p.Description,
		&p.DiscountType,
		&p.DiscountValue,
		&p.StartDate,
		&p.EndDate,
		&p.MinOrderValue,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrPromotionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get promotion by code: %w", err)
	}

	return &p, nil
}
