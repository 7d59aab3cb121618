package models

// Role is the caller's permission level. It is a closed enumeration:
// every authenticated request carries exactly one of these.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Elevated reports whether the role may view or mutate any user's
// orders.
func (r Role) Elevated() bool {
	return r == RoleAdmin
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// Address is a user-owned shipping address. Orders reference addresses
// but do not own them.
type Address struct {
	ID            int64  `json:"address_id"`
	UserID        int64  `json:"user_id"`
	RecipientName string `json:"recipient_name"`
	Phone         string `json:"phone,omitempty"`
	Street        string `json:"street"`
	City          string `json:"city"`
	Country       string `json:"country"`
}

// Variant is a purchasable SKU of a product. Its stock quantity is
// mutated only by the inventory ledger inside order transactions.
type Variant struct {
	ID            int64  `json:"variant_id"`
	ProductID     int64  `json:"product_id"`
	SKU           string `json:"sku"`
	Size          string `json:"size,omitempty"`
	Price         int64  `json:"price"`
	StockQuantity int    `json:"stock_quantity"`
	ImageURL      string `json:"image_url,omitempty"`
}
