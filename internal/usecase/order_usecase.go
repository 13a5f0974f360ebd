// Package usecase defines the application's use case interfaces and their
// input/output types. Implementations live in the impl subpackage.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateOrderItemInput is one product line of a new order. Price is the
// unit price frozen by the checkout flow before the order is stored.
type CreateOrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Price     float64
}

// CreateOrderInput carries everything needed to persist a new order.
// TotalAmount is the tax-inclusive total already computed by the caller.
type CreateOrderInput struct {
	UserID          uuid.UUID
	Items           []CreateOrderItemInput
	ShippingAddress entity.ShippingAddress
	PaymentMethod   string
	TotalAmount     float64
}

// CancelOrderOutput reports the outcome of a cancellation: the refreshed
// order and the flat fee that was assessed against its total.
type CancelOrderOutput struct {
	Order           *entity.Order
	CancellationFee float64
}

// OrderStats is the admin dashboard aggregate. When the store cannot be
// read the service returns zeroed stats rather than failing the dashboard.
type OrderStats struct {
	TotalOrders      int     `json:"total_orders"`
	PendingOrders    int     `json:"pending_orders"`
	ConfirmedOrders  int     `json:"confirmed_orders"`
	ProcessingOrders int     `json:"processing_orders"`
	ShippedOrders    int     `json:"shipped_orders"`
	DeliveredOrders  int     `json:"delivered_orders"`
	CancelledOrders  int     `json:"cancelled_orders"`
	TotalRevenue     float64 `json:"total_revenue"`
}

// OrderUsecase defines the order lifecycle operations.
type OrderUsecase interface {
	// CreateOrder persists a new pending order and reserves stock for every
	// line item atomically. Insufficient stock aborts the whole order.
	CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error)

	// GetOrder retrieves a single order. Non-admin requesters may only read
	// their own orders.
	GetOrder(ctx context.Context, orderID, requesterID uuid.UUID, isAdmin bool) (*entity.Order, error)

	// GetOrdersByUserID retrieves a user's orders, newest first.
	GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// GetAllOrders retrieves every order for the admin panel.
	GetAllOrders(ctx context.Context) ([]*entity.Order, error)

	// UpdateOrderStatus moves an order to the given fulfilment status. A
	// non-empty trackingNumber is persisted as given; otherwise the first
	// transition into shipped generates one.
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus, trackingNumber string) (*entity.Order, error)

	// UpdatePaymentStatus sets the payment track of an order.
	UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, status entity.PaymentStatus) error

	// CancelOrder cancels an order on behalf of its owner, assesses the
	// cancellation fee and restores the reserved stock atomically.
	CancelOrder(ctx context.Context, orderID, requesterID uuid.UUID) (*CancelOrderOutput, error)

	// GetOrderStats aggregates order counts and revenue for the dashboard.
	GetOrderStats(ctx context.Context) (*OrderStats, error)
}
