// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfilment state of an order. Orders progress forward
// through pending → confirmed → processing → shipped → delivered; cancelled
// is reachable from pending, confirmed and processing only.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentStatus tracks the money side of an order, independently of the
// fulfilment status. "refunded" is only reachable through an explicit refund.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// ShippingAddress is the destination captured at checkout. It is a value
// object: immutable once the order has been created.
type ShippingAddress struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// Order is a persisted purchase record. TotalAmount is tax-inclusive PKR.
// TrackingNumber is assigned exactly once, at the first transition into
// shipped; CancellationFee exactly once, at cancellation.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	Status          OrderStatus     `json:"status"`
	TotalAmount     float64         `json:"total_amount"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	PaymentID       string          `json:"payment_id,omitempty"`
	TrackingNumber  string          `json:"tracking_number,omitempty"`
	CancellationFee *float64        `json:"cancellation_fee,omitempty"`
	Items           []*OrderItem    `json:"items"`
	User            *User           `json:"user,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// IsCancellable reports whether the order may still be cancelled by its
// owner. Shipped and delivered orders are past the point of no return.
func (o *Order) IsCancellable() bool {
	switch o.Status {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing:
		return true
	default:
		return false
	}
}

// OrderItem is one product line within an order. Price is the unit price
// frozen at order-creation time; it never changes afterwards, even when the
// referenced product is repriced or deleted.
type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Product   *Product  `json:"product,omitempty"`
}

// Cancellation fee tiers, flat PKR amounts assessed against the order total.
const (
	feeTierLow    = 3000
	feeTierMid    = 5000
	feeTierHigh   = 8000
	feeTierTop    = 10000
	feeBoundLow   = 50000
	feeBoundMid   = 80000
	feeBoundHigh  = 150000
)

// CancellationFee maps an order's tax-inclusive total to the flat fee
// charged when the order is cancelled. Boundaries are inclusive on the
// upper tier: a 50000 order pays 5000, a 49999 order pays 3000.
func CancellationFee(totalAmount float64) float64 {
	switch {
	case totalAmount < feeBoundLow:
		return feeTierLow
	case totalAmount < feeBoundMid:
		return feeTierMid
	case totalAmount < feeBoundHigh:
		return feeTierHigh
	default:
		return feeTierTop
	}
}
