// Package impl contains the concrete implementations of the use case interfaces.
package impl

import (
	"context"
	"log/slog"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	tracking  service.TrackingNumberGenerator
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for the order service, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	Tracking  service.TrackingNumberGenerator
	Logger    *slog.Logger
}

// NewOrderService creates a new order lifecycle service instance.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		tracking:  params.Tracking,
		logger:    params.Logger,
	}
}

// CreateOrder reserves stock for every line item and persists the order in
// one transaction. Any failed reservation rolls back the whole order.
func (s *orderService) CreateOrder(ctx context.Context, input *usecase.CreateOrderInput) (*entity.Order, error) {
	if err := validateCreateOrderInput(input); err != nil {
		return nil, err
	}

	var order *entity.Order
	err := s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		productRepo := repos.ProductRepo()
		for _, item := range input.Items {
			if err := productRepo.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
				return mapStockError(err)
			}
		}

		items := make([]*entity.OrderItem, 0, len(input.Items))
		for _, item := range input.Items {
			items = append(items, &entity.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			})
		}

		order = &entity.Order{
			UserID:          input.UserID,
			Status:          entity.OrderStatusPending,
			TotalAmount:     input.TotalAmount,
			ShippingAddress: input.ShippingAddress,
			PaymentMethod:   input.PaymentMethod,
			PaymentStatus:   entity.PaymentStatusPending,
			Items:           items,
		}

		return repos.OrderRepo().Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("orderID", order.ID.String()),
		slog.String("userID", order.UserID.String()),
		slog.Float64("totalAmount", order.TotalAmount),
	)

	return order, nil
}

func validateCreateOrderInput(input *usecase.CreateOrderInput) error {
	if input == nil || input.UserID == uuid.Nil {
		return domainerrors.ErrValidationFailed.WrapMessage("user id is required")
	}
	if len(input.Items) == 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("order has no items")
	}
	for _, item := range input.Items {
		if item.ProductID == uuid.Nil || item.Quantity <= 0 {
			return domainerrors.ErrValidationFailed.WrapMessage("order item is invalid")
		}
	}
	if input.TotalAmount <= 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("order total must be positive")
	}

	return nil
}

func mapStockError(err error) error {
	switch {
	case errors.Is(err, repository.ErrInsufficientStock):
		return domainerrors.ErrInsufficientStock
	case errors.Is(err, repository.ErrProductNotFound):
		return domainerrors.ErrProductNotFound
	default:
		return err
	}
}

// GetOrder retrieves a single order, enforcing ownership for non-admins.
func (s *orderService) GetOrder(ctx context.Context, orderID, requesterID uuid.UUID, isAdmin bool) (*entity.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to load order")
	}

	if !isAdmin && order.UserID != requesterID {
		return nil, domainerrors.ErrOrderOwnershipViolation
	}

	return order, nil
}

// GetOrdersByUserID retrieves a user's orders, newest first.
func (s *orderService) GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := s.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user orders")
	}

	return orders, nil
}

// GetAllOrders retrieves every order for the admin panel.
func (s *orderService) GetAllOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load orders")
	}

	return orders, nil
}

// UpdateOrderStatus moves an order to the given fulfilment status. A
// caller-supplied tracking number wins; without one, the first transition
// into shipped generates a number and later updates never reassign it.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus, trackingNumber string) (*entity.Order, error) {
	if !isKnownOrderStatus(status) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown order status")
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to load order")
	}

	if trackingNumber == "" && status == entity.OrderStatusShipped && order.TrackingNumber == "" {
		trackingNumber = s.tracking.Generate()
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status, trackingNumber); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to update order status")
	}

	order.Status = status
	if trackingNumber != "" {
		order.TrackingNumber = trackingNumber
	}

	return order, nil
}

func isKnownOrderStatus(status entity.OrderStatus) bool {
	switch status {
	case entity.OrderStatusPending, entity.OrderStatusConfirmed,
		entity.OrderStatusProcessing, entity.OrderStatusShipped,
		entity.OrderStatusDelivered, entity.OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// UpdatePaymentStatus sets the payment track of an order.
func (s *orderService) UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, status entity.PaymentStatus) error {
	if err := s.orderRepo.UpdatePaymentStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domainerrors.ErrOrderNotFound
		}

		return errors.Wrap(err, "failed to update payment status")
	}

	return nil
}

// CancelOrder cancels an order on behalf of its owner. All guards run
// before any mutation; the fee write and stock restore share a transaction.
func (s *orderService) CancelOrder(ctx context.Context, orderID, requesterID uuid.UUID) (*usecase.CancelOrderOutput, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to load order")
	}

	if order.UserID != requesterID {
		return nil, domainerrors.ErrOrderOwnershipViolation
	}
	if order.Status == entity.OrderStatusCancelled {
		return nil, domainerrors.ErrOrderAlreadyCancelled
	}
	if !order.IsCancellable() {
		return nil, domainerrors.ErrOrderNotCancellable
	}

	fee := entity.CancellationFee(order.TotalAmount)

	err = s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.OrderRepo().MarkCancelled(ctx, orderID, fee); err != nil {
			return err
		}

		productRepo := repos.ProductRepo()
		for _, item := range order.Items {
			if err := productRepo.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = entity.OrderStatusCancelled
	order.CancellationFee = &fee

	s.logger.InfoContext(ctx, "order cancelled",
		slog.String("orderID", orderID.String()),
		slog.Float64("cancellationFee", fee),
	)

	return &usecase.CancelOrderOutput{
		Order:           order,
		CancellationFee: fee,
	}, nil
}

// GetOrderStats aggregates order counts and revenue. A store failure logs
// and degrades to zeroed stats so the dashboard still renders.
func (s *orderService) GetOrderStats(ctx context.Context) (*usecase.OrderStats, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to aggregate order stats",
			slog.String("error", err.Error()),
		)

		return &usecase.OrderStats{}, nil
	}

	stats := &usecase.OrderStats{TotalOrders: len(orders)}
	for _, order := range orders {
		switch order.Status {
		case entity.OrderStatusPending:
			stats.PendingOrders++
		case entity.OrderStatusConfirmed:
			stats.ConfirmedOrders++
		case entity.OrderStatusProcessing:
			stats.ProcessingOrders++
		case entity.OrderStatusShipped:
			stats.ShippedOrders++
		case entity.OrderStatusDelivered:
			stats.DeliveredOrders++
		case entity.OrderStatusCancelled:
			stats.CancelledOrders++
		}

		// Revenue counts only delivered orders; money collected on orders
		// still in flight is not recognized yet.
		if order.Status == entity.OrderStatusDelivered {
			stats.TotalRevenue += order.TotalAmount
		}
	}

	return stats, nil
}
