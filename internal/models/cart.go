package models

// Cart is a per-user staging area. It is cleared, not deleted, when an
// order is placed.
type Cart struct {
	ID          int64 `json:"cart_id"`
	UserID      int64 `json:"user_id"`
	TotalAmount int64 `json:"total_amount"`
}

// CartItem is one staged line in a cart.
type CartItem struct {
	ID        int64 `json:"cart_item_id"`
	CartID    int64 `json:"cart_id"`
	VariantID int64 `json:"variant_id"`
	Quantity  int   `json:"quantity"`
}

// CartItemDetail is a cart item joined with variant and product display
// fields, as returned by GET /cart.
type CartItemDetail struct {
	CartItem
	SKU         string `json:"sku"`
	Size        string `json:"size,omitempty"`
	Price       int64  `json:"price"`
	ProductName string `json:"product_name"`
	ImageURL    string `json:"image_url,omitempty"`
}

// CartView is the full cart response.
type CartView struct {
	CartID      int64            `json:"cart_id"`
	TotalAmount int64            `json:"total_amount"`
	Items       []CartItemDetail `json:"items"`
}

// AddCartItemRequest is the POST /cart/items body.
type AddCartItemRequest struct {
	VariantID int64 `json:"variant_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

// UpdateCartItemRequest is the PUT /cart/items/:id body.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}
