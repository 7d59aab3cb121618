package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/shopweb/shopweb-api/internal/apperrors"
)

// InventoryRepository is the ledger for variant stock. Stock is
// decremented only inside order-creation transactions and incremented
// only inside cancellation transactions; no other component writes to
// it.
type InventoryRepository struct {
	logger zerolog.Logger
}

// NewInventoryRepository creates the stock ledger.
func NewInventoryRepository(logger zerolog.Logger) *InventoryRepository {
	return &InventoryRepository{logger: logger.With().Str("component", "inventory").Logger()}
}

// Reserve checks stock and price for a variant and decrements the stock
// by quantity, all under a row lock on the caller's transaction. Two
// concurrent reservations against the same variant serialize on the
// lock, so the availability check is atomic with the decrement.
func (r *InventoryRepository) Reserve(ctx context.Context, q Querier, variantID int64, quantity int, expectedUnitPrice int64) error {
	var (
		stock int
		price int64
	)
	err := q.QueryRowContext(ctx,
		`SELECT stock_quantity, price FROM product_variants WHERE variant_id = $1 FOR UPDATE`,
		variantID,
	).Scan(&stock, &price)
	if errors.Is(err, sql.ErrNoRows) {
		return &apperrors.VariantNotFoundError{VariantID: variantID}
	}
	if err != nil {
		return fmt.Errorf("lock variant %d: %w", variantID, err)
	}

	if stock < quantity {
		return &apperrors.InsufficientStockError{
			VariantID: variantID,
			Available: stock,
			Requested: quantity,
		}
	}

	if price != expectedUnitPrice {
		return &apperrors.PriceMismatchError{
			VariantID: variantID,
			Stored:    price,
			Provided:  expectedUnitPrice,
		}
	}

	_, err = q.ExecContext(ctx,
		`UPDATE product_variants SET stock_quantity = stock_quantity - $1 WHERE variant_id = $2`,
		quantity, variantID,
	)
	if err != nil {
		return fmt.Errorf("decrement stock for variant %d: %w", variantID, err)
	}

	r.logger.Debug().
		Int64("variant_id", variantID).
		Int("quantity", quantity).
		Msg("Stock reserved")

	return nil
}

// Restock returns quantity units to a variant's stock under the
// caller's transaction. Used only by order cancellation.
func (r *InventoryRepository) Restock(ctx context.Context, q Querier, variantID int64, quantity int) error {
	var stock int
	err := q.QueryRowContext(ctx,
		`SELECT stock_quantity FROM product_variants WHERE variant_id = $1 FOR UPDATE`,
		variantID,
	).Scan(&stock)
	if errors.Is(err, sql.ErrNoRows) {
		return &apperrors.VariantNotFoundError{VariantID: variantID}
	}
	if err != nil {
		return fmt.Errorf("lock variant %d: %w", variantID, err)
	}

	_, err = q.ExecContext(ctx,
		`UPDATE product_variants SET stock_quantity = stock_quantity + $1 WHERE variant_id = $2`,
		quantity, variantID,
	)
	if err != nil {
		return fmt.Errorf("restock variant %d: %w", variantID, err)
	}

	r.logger.Debug().
		Int64("variant_id", variantID).
		Int("quantity", quantity).
		Msg("Stock restored")

	return nil
}

// GetVariant returns a variant's catalog row. Read-only; used by the
// cart endpoints to validate additions.
func (r *InventoryRepository) GetVariant(ctx context.Context, q Querier, variantID int64) (price int64, stock int, err error) {
	err = q.QueryRowContext(ctx,
		`SELECT price, stock_quantity FROM product_variants WHERE variant_id = $1`,
		variantID,
	).Scan(&price, &stock)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, &apperrors.VariantNotFoundError{VariantID: variantID}
	}
	if err != nil {
		return 0, 0, fmt.Errorf("get variant %d: %w", variantID, err)
	}
	return price, stock, nil
}
