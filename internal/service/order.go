package service

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/shopweb/shopweb-api/internal/apperrors"
	"github.com/shopweb/shopweb-api/internal/config"
	"github.com/shopweb/shopweb-api/internal/models"
	"github.com/shopweb/shopweb-api/internal/repository"
)

// OrderService owns the order aggregate: the checkout transaction, the
// status-guarded cancellation, admin status transitions, and the
// role-scoped read views.
type OrderService struct {
	tx         TxRunner
	db         *sql.DB
	users      UserStore
	promotions PromotionApplier
	inventory  InventoryStore
	carts      CartStore
	orders     OrderStore
	cache      DetailCache
	events     EventPublisher
	features   config.FeatureFlags
	logger     zerolog.Logger
}

// NewOrderService wires the order aggregate with its collaborators.
func NewOrderService(
	tx TxRunner,
	db *sql.DB,
	users UserStore,
	promotions PromotionApplier,
	inventory InventoryStore,
	carts CartStore,
	orders OrderStore,
	cache DetailCache,
	events EventPublisher,
	features config.FeatureFlags,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		tx:         tx,
		db:         db,
		users:      users,
		promotions: promotions,
		inventory:  inventory,
		carts:      carts,
		orders:     orders,
		cache:      cache,
		events:     events,
		features:   features,
		logger:     logger.With().Str("component", "order-service").Logger(),
	}
}

// Create places an order for userID as one atomic transaction: address
// ownership, optional promotion, stock reservation per line, item
// inserts with frozen prices, and cart clearing all commit together or
// not at all. On success it returns the new order id; on any failure
// the originating error is returned and nothing is observable.
func (s *OrderService) Create(ctx context.Context, userID int64, req *models.CreateOrderRequest) (int64, error) {
	if err := validateCreateOrder(req); err != nil {
		return 0, err
	}

	var subtotal int64
	for _, item := range req.Items {
		subtotal += item.Price * int64(item.Quantity)
	}

	var created models.Order
	err := s.tx.WithinTx(ctx, func(q repository.Querier) error {
		exists, err := s.users.Exists(ctx, q, userID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NewValidationError("user_id", "user not found")
		}

		owned, err := s.users.AddressBelongsToUser(ctx, q, req.AddressID, userID)
		if err != nil {
			return err
		}
		if !owned {
			return apperrors.ErrAddressInvalid
		}

		total := subtotal
		var promotionID *int64
		if req.PromotionCode != "" {
			result, err := s.promotions.Apply(ctx, q, req.PromotionCode, subtotal)
			if err != nil {
				return err
			}
			total = result.NewTotal
			promotionID = &result.PromotionID
		}

		created = models.Order{
			UserID:      userID,
			AddressID:   req.AddressID,
			PromotionID: promotionID,
			TotalAmount: total,
			Status:      models.OrderStatusPending,
		}
		orderID, err := s.orders.Insert(ctx, q, &created)
		if err != nil {
			return err
		}

		for _, item := range req.Items {
			if err := s.inventory.Reserve(ctx, q, item.VariantID, item.Quantity, item.Price); err != nil {
				return err
			}
			orderItem := models.OrderItem{
				OrderID:   orderID,
				VariantID: item.VariantID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			}
			if err := s.orders.InsertItem(ctx, q, &orderItem); err != nil {
				return err
			}
		}

		cleared, err := s.carts.Clear(ctx, q, userID)
		if err != nil {
			return err
		}
		if !cleared {
			s.logger.Warn().Int64("user_id", userID).Msg("No cart to clear at checkout")
		}

		return nil
	})
	if err != nil {
		orderCreateFailuresTotal.Inc()
		return 0, err
	}

	ordersCreatedTotal.Inc()
	s.publishCreated(ctx, &created)

	return created.ID, nil
}

// Cancel cancels an order and restores its stock in one transaction.
// Non-elevated callers must own the order; otherwise the order is
// reported as not found, whether or not it exists. Only pending and
// processing orders can be cancelled.
func (s *OrderService) Cancel(ctx context.Context, orderID, callerID int64, role models.Role) error {
	var cancelled *models.Order
	err := s.tx.WithinTx(ctx, func(q repository.Querier) error {
		order, err := s.orders.GetForUpdate(ctx, q, orderID)
		if err != nil {
			return err
		}
		if !CanAccessOrder(role, callerID, order.UserID) {
			return apperrors.ErrNotFound
		}
		if !order.Status.CanCancel() {
			return &apperrors.InvalidTransitionError{
				From: string(order.Status),
				To:   string(models.OrderStatusCancelled),
			}
		}

		items, err := s.orders.ItemsByOrder(ctx, q, orderID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := s.inventory.Restock(ctx, q, item.VariantID, item.Quantity); err != nil {
				return err
			}
		}

		if err := s.orders.UpdateStatus(ctx, q, orderID, models.OrderStatusCancelled); err != nil {
			return err
		}

		order.Status = models.OrderStatusCancelled
		cancelled = order
		return nil
	})
	if err != nil {
		return err
	}

	ordersCancelledTotal.Inc()
	s.invalidateDetail(ctx, orderID)
	if s.features.EnableOrderEvents && s.events != nil {
		if err := s.events.PublishOrderCancelled(ctx, cancelled); err != nil {
			s.logger.Error().Err(err).Int64("order_id", orderID).Msg("Failed to publish order cancelled event")
		}
	}

	return nil
}

// UpdateStatus performs an admin transition of an order's status,
// validated against the lifecycle state machine. A transition to
// cancelled goes through Cancel so stock is restored.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, target models.OrderStatus) error {
	if !target.Valid() {
		return apperrors.NewValidationError("status", "invalid order status")
	}

	if target == models.OrderStatusCancelled {
		return s.Cancel(ctx, orderID, 0, models.RoleAdmin)
	}

	var (
		updated  *models.Order
		previous models.OrderStatus
	)
	err := s.tx.WithinTx(ctx, func(q repository.Querier) error {
		order, err := s.orders.GetForUpdate(ctx, q, orderID)
		if err != nil {
			return err
		}
		if !order.Status.CanTransitionTo(target) {
			return &apperrors.InvalidTransitionError{
				From: string(order.Status),
				To:   string(target),
			}
		}

		if err := s.orders.UpdateStatus(ctx, q, orderID, target); err != nil {
			return err
		}

		previous = order.Status
		order.Status = target
		updated = order
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateDetail(ctx, orderID)
	if s.features.EnableOrderEvents && s.events != nil {
		if err := s.events.PublishOrderStatusChanged(ctx, updated, previous); err != nil {
			s.logger.Error().Err(err).Int64("order_id", orderID).Msg("Failed to publish status change event")
		}
	}

	return nil
}

// GetOrder returns the detail view of an order, role-scoped: standard
// callers only see their own orders, reported as not found otherwise.
// The ownership check runs after the fetch so cached copies are scoped
// the same way as database reads.
func (s *OrderService) GetOrder(ctx context.Context, orderID, callerID int64, role models.Role) (*models.OrderDetail, error) {
	if s.features.EnableOrderCaching && s.cache != nil {
		if detail, err := s.cache.Get(ctx, orderID); err == nil && detail != nil {
			if !CanAccessOrder(role, callerID, detail.UserID) {
				return nil, apperrors.ErrNotFound
			}
			return detail, nil
		}
	}

	detail, err := s.orders.GetDetail(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}
	if !CanAccessOrder(role, callerID, detail.UserID) {
		return nil, apperrors.ErrNotFound
	}

	if s.features.EnableOrderCaching && s.cache != nil {
		if err := s.cache.Set(ctx, detail); err != nil {
			s.logger.Error().Err(err).Int64("order_id", orderID).Msg("Failed to cache order detail")
		}
	}

	return detail, nil
}

// ListOrders returns the caller's own orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, callerID int64) ([]models.OrderSummary, error) {
	return s.orders.ListByUser(ctx, s.db, callerID)
}

// ListAllOrders returns every order across users. Admin only; the route
// enforces the role.
func (s *OrderService) ListAllOrders(ctx context.Context) ([]models.OrderSummary, error) {
	return s.orders.ListAll(ctx, s.db)
}

func (s *OrderService) publishCreated(ctx context.Context, order *models.Order) {
	if !s.features.EnableOrderEvents || s.events == nil {
		return
	}
	if err := s.events.PublishOrderCreated(ctx, order); err != nil {
		s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("Failed to publish order created event")
	}
}

func (s *OrderService) invalidateDetail(ctx context.Context, orderID int64) {
	if !s.features.EnableOrderCaching || s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, orderID); err != nil {
		s.logger.Error().Err(err).Int64("order_id", orderID).Msg("Failed to invalidate cached order")
	}
}

// validateCreateOrder rejects malformed checkout requests before any
// transaction opens.
func validateCreateOrder(req *models.CreateOrderRequest) error {
	if req.AddressID <= 0 {
		return apperrors.NewValidationError("address_id", "address ID is required")
	}
	if len(req.Items) == 0 {
		return apperrors.NewValidationError("items", "at least one item is required")
	}
	for _, item := range req.Items {
		if item.VariantID <= 0 {
			return apperrors.NewValidationError("items", "variant ID is required for every item")
		}
		if item.Quantity <= 0 {
			return apperrors.NewValidationError("items", "quantity must be greater than zero")
		}
		if item.Price <= 0 {
			return apperrors.NewValidationError("items", "price must be greater than zero")
		}
	}
	return nil
}
