package service

import (
	"context"

	"github.com/shopweb/shopweb-api/internal/models"
	"github.com/shopweb/shopweb-api/internal/repository"
)

// TxRunner executes a function inside one database transaction.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(q repository.Querier) error) error
}

// UserStore answers identity questions for checkout.
type UserStore interface {
	Exists(ctx context.Context, q repository.Querier, userID int64) (bool, error)
	AddressBelongsToUser(ctx context.Context, q repository.Querier, addressID, userID int64) (bool, error)
}

// PromotionStore reads promotion codes.
type PromotionStore interface {
	GetByCode(ctx context.Context, q repository.Querier, code string) (*models.Promotion, error)
}

// PromotionApplier validates a code against an order total and computes
// the discounted total.
type PromotionApplier interface {
	Apply(ctx context.Context, q repository.Querier, code string, totalAmount int64) (*models.PromotionResult, error)
}

// InventoryStore is the stock ledger used inside order transactions.
type InventoryStore interface {
	Reserve(ctx context.Context, q repository.Querier, variantID int64, quantity int, expectedUnitPrice int64) error
	Restock(ctx context.Context, q repository.Querier, variantID int64, quantity int) error
}

// CartStore clears the staging cart after a committed checkout.
type CartStore interface {
	Clear(ctx context.Context, q repository.Querier, userID int64) (bool, error)
}

// OrderStore persists orders and serves their read views.
type OrderStore interface {
	Insert(ctx context.Context, q repository.Querier, o *models.Order) (int64, error)
	InsertItem(ctx context.Context, q repository.Querier, item *models.OrderItem) error
	GetForUpdate(ctx context.Context, q repository.Querier, orderID int64) (*models.Order, error)
	ItemsByOrder(ctx context.Context, q repository.Querier, orderID int64) ([]models.OrderItem, error)
	UpdateStatus(ctx context.Context, q repository.Querier, orderID int64, status models.OrderStatus) error
	ListByUser(ctx context.Context, q repository.Querier, userID int64) ([]models.OrderSummary, error)
	ListAll(ctx context.Context, q repository.Querier) ([]models.OrderSummary, error)
	GetDetail(ctx context.Context, q repository.Querier, orderID int64) (*models.OrderDetail, error)
}

// DetailCache caches order detail views.
type DetailCache interface {
	Get(ctx context.Context, orderID int64) (*models.OrderDetail, error)
	Set(ctx context.Context, detail *models.OrderDetail) error
	Delete(ctx context.Context, orderID int64) error
}

// EventPublisher emits order lifecycle events after commit.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
	PublishOrderStatusChanged(ctx context.Context, order *models.Order, previous models.OrderStatus) error
	PublishOrderCancelled(ctx context.Context, order *models.Order) error
}
