package models

import "time"

// DiscountType distinguishes percentage discounts from fixed-amount ones.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Promotion is a discount code with a validity window and an optional
// minimum order value. Promotions are read-only to the order core and
// are not consumed by use.
type Promotion struct {
	ID            int64        `json:"promotion_id"`
	Code          string       `json:"code"`
	Description   string       `json:"description,omitempty"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue int64        `json:"discount_value"`
	StartDate     time.Time    `json:"start_date"`
	EndDate       time.Time    `json:"end_date"`
	MinOrderValue int64        `json:"min_order_value"`
}

// PromotionResult is the outcome of applying a promotion code to an
// order total.
type PromotionResult struct {
	PromotionID int64 `json:"promotion_id"`
	NewTotal    int64 `json:"new_total"`
}

// ApplyPromotionRequest is the POST /promotions/apply body, used to
// preview a discount without placing an order.
type ApplyPromotionRequest struct {
	Code        string `json:"code" binding:"required"`
	TotalAmount int64  `json:"total_amount" binding:"required"`
}
