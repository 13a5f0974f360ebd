// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is a domain-specific error returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the standard operations for order persistence.
// Reads preload the order's items (and their products); FindAll additionally
// preloads the owning user for the admin view.
type OrderRepository interface {
	// Create persists a new order together with its line items in one insert.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves a single order with its items and their products.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByUserID retrieves a user's orders, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// FindAll retrieves every order with items and owning users, newest first.
	FindAll(ctx context.Context) ([]*entity.Order, error)

	// UpdateStatus sets the fulfilment status and, when trackingNumber is
	// non-empty, the tracking number. updated_at is bumped either way.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus, trackingNumber string) error

	// UpdatePaymentStatus sets the payment track only.
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error

	// RecordPaymentResult sets fulfilment status, payment status and the
	// gateway transaction id in one write, as done by the payment callback.
	RecordPaymentResult(ctx context.Context, id uuid.UUID, status entity.OrderStatus, paymentStatus entity.PaymentStatus, paymentID string) error

	// MarkCancelled sets status=cancelled and records the assessed fee.
	MarkCancelled(ctx context.Context, id uuid.UUID, cancellationFee float64) error
}
