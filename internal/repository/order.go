package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopweb/shopweb-api/internal/apperrors"
	"github.com/shopweb/shopweb-api/internal/models"
)

// OrderRepository persists orders and their items and serves the
// read-side joins for list and detail views.
type OrderRepository struct {
	logger zerolog.Logger
}

// NewOrderRepository creates the order store.
func NewOrderRepository(logger zerolog.Logger) *OrderRepository {
	return &OrderRepository{logger: logger.With().Str("component", "orders").Logger()}
}

// Insert writes a new order row and returns its id. Runs under the
// caller's transaction during checkout.
func (r *OrderRepository) Insert(ctx context.Context, q Querier, o *models.Order) (int64, error) {
	now := time.Now().UTC()
	var orderID int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, address_id, promotion_id, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING order_id`,
		o.UserID, o.AddressID, o.PromotionID, o.TotalAmount, o.Status, now,
	).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	o.ID = orderID
	o.CreatedAt = now
	o.UpdatedAt = now

	r.logger.Info().
		Int64("order_id", orderID).
		Int64("user_id", o.UserID).
		Int64("total_amount", o.TotalAmount).
		Msg("Order created")

	return orderID, nil
}

// InsertItem writes one order line with its frozen unit price.
func (r *OrderRepository) InsertItem(ctx context.Context, q Querier, item *models.OrderItem) error {
	err := q.QueryRowContext(ctx, `
		INSERT INTO order_items (order_id, variant_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING order_item_id`,
		item.OrderID, item.VariantID, item.Quantity, item.Price,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert order item for order %d: %w", item.OrderID, err)
	}
	return nil
}

// GetForUpdate loads an order row under a row lock, serializing
// concurrent cancellations and status changes of the same order.
func (r *OrderRepository) GetForUpdate(ctx context.Context, q Querier, orderID int64) (*models.Order, error) {
	var o models.Order
	err := q.QueryRowContext(ctx, `
		SELECT order_id, user_id, address_id, promotion_id, total_amount, status, created_at, updated_at
		FROM orders
		WHERE order_id = $1
		FOR UPDATE`,
		orderID,
	).Scan(&o.ID, &o.UserID, &o.AddressID, &o.PromotionID, &o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order %d for update: %w", orderID, err)
	}
	return &o, nil
}

// ItemsByOrder returns the line items of an order.
func (r *OrderRepository) ItemsByOrder(ctx context.Context, q Querier, orderID int64) ([]models.OrderItem, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT order_item_id, order_id, variant_id, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY order_item_id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list items for order %d: %w", orderID, err)
	}
	defer rows.Close()

	items := make([]models.OrderItem, 0)
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.VariantID, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateStatus sets an order's status. Transition validity is the
// service's responsibility; this only writes.
func (r *OrderRepository) UpdateStatus(ctx context.Context, q Querier, orderID int64, status models.OrderStatus) error {
	result, err := q.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE order_id = $3`,
		status, time.Now().UTC(), orderID,
	)
	if err != nil {
		return fmt.Errorf("update status for order %d: %w", orderID, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	r.logger.Info().
		Int64("order_id", orderID).
		Str("status", string(status)).
		Msg("Order status updated")

	return nil
}

const orderSummarySelect = `
	SELECT o.order_id, o.user_id, o.address_id, o.promotion_id, o.total_amount,
	       o.status, o.created_at, o.updated_at,
	       COALESCE(a.recipient_name, ''), COALESCE(a.phone, ''),
	       COALESCE(a.street, ''), COALESCE(a.city, ''), COALESCE(a.country, ''),
	       p.code
	FROM orders o
	LEFT JOIN addresses a ON a.address_id = o.address_id
	LEFT JOIN promotions p ON p.promotion_id = o.promotion_id`

func scanOrderSummary(rows *sql.Rows) (*models.OrderSummary, error) {
	var s models.OrderSummary
	err := rows.Scan(
		&s.ID, &s.UserID, &s.AddressID, &s.PromotionID, &s.TotalAmount,
		&s.Status, &s.CreatedAt, &s.UpdatedAt,
		&s.RecipientName, &s.Phone,
		&s.Street, &s.City, &s.Country,
		&s.PromotionCode,
	)
	if err != nil {
		return nil, fmt.Errorf("scan order summary: %w", err)
	}
	return &s, nil
}

// ListByUser returns a user's orders, newest first, with recipient and
// promotion display fields denormalized.
func (r *OrderRepository) ListByUser(ctx context.Context, q Querier, userID int64) ([]models.OrderSummary, error) {
	rows, err := q.QueryContext(ctx,
		orderSummarySelect+` WHERE o.user_id = $1 ORDER BY o.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders for user %d: %w", userID, err)
	}
	defer rows.Close()

	orders := make([]models.OrderSummary, 0)
	for rows.Next() {
		s, err := scanOrderSummary(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *s)
	}
	return orders, rows.Err()
}

// ListAll returns every order across all users for the admin console,
// newest first, with the owner's email denormalized.
func (r *OrderRepository) ListAll(ctx context.Context, q Querier) ([]models.OrderSummary, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT o.order_id, o.user_id, o.address_id, o.promotion_id, o.total_amount,
		       o.status, o.created_at, o.updated_at,
		       COALESCE(a.recipient_name, ''), COALESCE(a.phone, ''),
		       COALESCE(a.street, ''), COALESCE(a.city, ''), COALESCE(a.country, ''),
		       p.code, u.email
		FROM orders o
		LEFT JOIN addresses a ON a.address_id = o.address_id
		LEFT JOIN promotions p ON p.promotion_id = o.promotion_id
		JOIN users u ON u.user_id = o.user_id
		ORDER BY o.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	defer rows.Close()

	orders := make([]models.OrderSummary, 0)
	for rows.Next() {
		var s models.OrderSummary
		err := rows.Scan(
			&s.ID, &s.UserID, &s.AddressID, &s.PromotionID, &s.TotalAmount,
			&s.Status, &s.CreatedAt, &s.UpdatedAt,
			&s.RecipientName, &s.Phone,
			&s.Street, &s.City, &s.Country,
			&s.PromotionCode, &s.UserEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("scan admin order summary: %w", err)
		}
		orders = append(orders, s)
	}
	return orders, rows.Err()
}

// GetDetail returns a single order with address, promotion, and nested
// item display fields. Ownership scoping is the service's concern.
func (r *OrderRepository) GetDetail(ctx context.Context, q Querier, orderID int64) (*models.OrderDetail, error) {
	rows, err := q.QueryContext(ctx,
		orderSummarySelect+` WHERE o.order_id = $1`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", orderID, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, apperrors.ErrNotFound
	}
	summary, err := scanOrderSummary(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	itemRows, err := q.QueryContext(ctx, `
		SELECT oi.order_item_id, oi.order_id, oi.variant_id, oi.quantity, oi.price,
		       pv.sku, COALESCE(pv.size, ''), COALESCE(pv.image_url, ''),
		       p.name
		FROM order_items oi
		JOIN product_variants pv ON pv.variant_id = oi.variant_id
		JOIN products p ON p.product_id = pv.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.order_item_id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list items for order %d: %w", orderID, err)
	}
	defer itemRows.Close()

	detail := &models.OrderDetail{
		OrderSummary: *summary,
		Items:        make([]models.OrderItemDetail, 0),
	}
	for itemRows.Next() {
		var item models.OrderItemDetail
		err := itemRows.Scan(
			&item.ID, &item.OrderID, &item.VariantID, &item.Quantity, &item.Price,
			&item.SKU, &item.Size, &item.ImageURL,
			&item.ProductName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order item detail: %w", err)
		}
		detail.Items = append(detail.Items, item)
	}
	return detail, itemRows.Err()
}
