package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/shopweb/shopweb-api/internal/apperrors"
	"github.com/shopweb/shopweb-api/internal/models"
)

// CartRepository manages the per-user staging cart. Checkout reads and
// clears it; the cart endpoints mutate it directly.
type CartRepository struct {
	logger zerolog.Logger
}

// NewCartRepository creates the cart store.
func NewCartRepository(logger zerolog.Logger) *CartRepository {
	return &CartRepository{logger: logger.With().Str("component", "cart").Logger()}
}

// GetOrCreate returns the user's cart id, creating an empty cart when
// none exists.
func (r *CartRepository) GetOrCreate(ctx context.Context, q Querier, userID int64) (int64, error) {
	var cartID int64
	err := q.QueryRowContext(ctx,
		`SELECT cart_id FROM cart WHERE user_id = $1`, userID,
	).Scan(&cartID)
	if err == nil {
		return cartID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("get cart for user %d: %w", userID, err)
	}

	err = q.QueryRowContext(ctx,
		`INSERT INTO cart (user_id) VALUES ($1) RETURNING cart_id`, userID,
	).Scan(&cartID)
	if err != nil {
		return 0, fmt.Errorf("create cart for user %d: %w", userID, err)
	}
	return cartID, nil
}

// View returns the user's cart with variant and product display fields
// joined in. A user with no cart gets an empty view.
func (r *CartRepository) View(ctx context.Context, q Querier, userID int64) (*models.CartView, error) {
	var view models.CartView
	err := q.QueryRowContext(ctx,
		`SELECT cart_id, total_amount FROM cart WHERE user_id = $1`, userID,
	).Scan(&view.CartID, &view.TotalAmount)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.CartView{Items: []models.CartItemDetail{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cart for user %d: %w", userID, err)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT ci.cart_item_id, ci.cart_id, ci.variant_id, ci.quantity,
		       pv.sku, COALESCE(pv.size, ''), pv.price, COALESCE(pv.image_url, ''),
		       p.name
		FROM cart_items ci
		JOIN product_variants pv ON pv.variant_id = ci.variant_id
		JOIN products p ON p.product_id = pv.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.cart_item_id`,
		view.CartID,
	)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	view.Items = make([]models.CartItemDetail, 0)
	for rows.Next() {
		var item models.CartItemDetail
		if err := rows.Scan(
			&item.ID, &item.CartID, &item.VariantID, &item.Quantity,
			&item.SKU, &item.Size, &item.Price, &item.ImageURL,
			&item.ProductName,
		); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		view.Items = append(view.Items, item)
	}
	return &view, rows.Err()
}

// AddItem adds a variant to the user's cart, incrementing the quantity
// when the variant is already staged.
func (r *CartRepository) AddItem(ctx context.Context, q Querier, userID, variantID int64, quantity int) (int64, error) {
	cartID, err := r.GetOrCreate(ctx, q, userID)
	if err != nil {
		return 0, err
	}

	var itemID int64
	err = q.QueryRowContext(ctx, `
		INSERT INTO cart_items (cart_id, variant_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, variant_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING cart_item_id`,
		cartID, variantID, quantity,
	).Scan(&itemID)
	if err != nil {
		return 0, fmt.Errorf("add cart item: %w", err)
	}
	return itemID, nil
}

// UpdateItemQuantity sets the quantity of a cart item owned by the
// user. Items of other users' carts are invisible.
func (r *CartRepository) UpdateItemQuantity(ctx context.Context, q Querier, userID, cartItemID int64, quantity int) error {
	result, err := q.ExecContext(ctx, `
		UPDATE cart_items ci
		SET quantity = $1
		FROM cart c
		WHERE ci.cart_item_id = $2 AND ci.cart_id = c.cart_id AND c.user_id = $3`,
		quantity, cartItemID, userID,
	)
	if err != nil {
		return fmt.Errorf("update cart item %d: %w", cartItemID, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RemoveItem deletes a cart item owned by the user.
func (r *CartRepository) RemoveItem(ctx context.Context, q Querier, userID, cartItemID int64) error {
	result, err := q.ExecContext(ctx, `
		DELETE FROM cart_items ci
		USING cart c
		WHERE ci.cart_item_id = $1 AND ci.cart_id = c.cart_id AND c.user_id = $2`,
		cartItemID, userID,
	)
	if err != nil {
		return fmt.Errorf("remove cart item %d: %w", cartItemID, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Clear removes every item from the user's cart and zeroes its running
// total, under the caller's transaction. It reports whether a cart
// existed; a missing cart is not an error.
func (r *CartRepository) Clear(ctx context.Context, q Querier, userID int64) (bool, error) {
	var cartID int64
	err := q.QueryRowContext(ctx,
		`SELECT cart_id FROM cart WHERE user_id = $1`, userID,
	).Scan(&cartID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get cart for user %d: %w", userID, err)
	}

	if _, err := q.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1`, cartID,
	); err != nil {
		return false, fmt.Errorf("clear cart items: %w", err)
	}

	if _, err := q.ExecContext(ctx,
		`UPDATE cart SET total_amount = 0 WHERE cart_id = $1`, cartID,
	); err != nil {
		return false, fmt.Errorf("reset cart total: %w", err)
	}

	r.logger.Debug().Int64("cart_id", cartID).Int64("user_id", userID).Msg("Cart cleared")
	return true, nil
}
