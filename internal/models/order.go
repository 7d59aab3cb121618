package models

import "time"

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// statusTransitions defines the allowed order status transitions.
// delivered and cancelled are terminal.
var statusTransitions = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPending: {
		OrderStatusProcessing: true,
		OrderStatusCancelled:  true,
	},
	OrderStatusProcessing: {
		OrderStatusShipped:   true,
		OrderStatusCancelled: true,
	},
	OrderStatusShipped: {
		OrderStatusDelivered: true,
	},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the transition s -> target is allowed.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	return statusTransitions[s][target]
}

// CanCancel reports whether an order in status s may still be cancelled.
func (s OrderStatus) CanCancel() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing
}

// Order is a single orders table row. Orders are never physically
// deleted; cancellation is a status transition.
type Order struct {
	ID          int64       `json:"order_id"`
	UserID      int64       `json:"user_id"`
	AddressID   int64       `json:"address_id"`
	PromotionID *int64      `json:"promotion_id,omitempty"`
	TotalAmount int64       `json:"total_amount"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// OrderItem is one line of an order. Price is the unit price frozen at
// the moment of order creation, independent of later catalog changes.
type OrderItem struct {
	ID        int64 `json:"order_item_id"`
	OrderID   int64 `json:"order_id"`
	VariantID int64 `json:"variant_id"`
	Quantity  int   `json:"quantity"`
	Price     int64 `json:"price"`
}

// OrderSummary is an order row with shipping and promotion display
// fields denormalized for list views. UserEmail is populated only on
// the admin listing.
type OrderSummary struct {
	Order
	RecipientName string  `json:"recipient_name"`
	Phone         string  `json:"phone"`
	Street        string  `json:"street"`
	City          string  `json:"city"`
	Country       string  `json:"country"`
	PromotionCode *string `json:"promotion_code,omitempty"`
	UserEmail     string  `json:"user_email,omitempty"`
}

// OrderItemDetail is an order item joined with product display fields.
type OrderItemDetail struct {
	OrderItem
	SKU         string `json:"sku"`
	Size        string `json:"size,omitempty"`
	ProductName string `json:"product_name"`
	ImageURL    string `json:"image_url,omitempty"`
}

// OrderDetail is a full single-order view with nested items.
type OrderDetail struct {
	OrderSummary
	Items []OrderItemDetail `json:"items"`
}

// CreateOrderRequest is the POST /orders body.
type CreateOrderRequest struct {
	AddressID     int64            `json:"address_id" binding:"required"`
	Items         []OrderItemInput `json:"items" binding:"required"`
	PromotionCode string           `json:"promotion_code"`
}

// OrderItemInput is a single line item submitted at checkout. Price is
// the unit price the client saw; it is verified against the catalog,
// never trusted.
type OrderItemInput struct {
	VariantID int64 `json:"variant_id"`
	Quantity  int   `json:"quantity"`
	Price     int64 `json:"price"`
}

// UpdateOrderStatusRequest is the PUT /orders/:id/status body.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}
