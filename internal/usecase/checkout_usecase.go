package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CheckoutItemInput is one cart line submitted at checkout. The unit price
// is looked up server-side; clients never supply prices.
type CheckoutItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CheckoutCardInput is the card as entered on the payment form.
// ExpiryDate uses the MM/YY form shown on the card.
type CheckoutCardInput struct {
	Number     string
	ExpiryDate string
	CVV        string
	HolderName string
}

// CheckoutInput is the full checkout submission.
type CheckoutInput struct {
	UserID          uuid.UUID
	Items           []CheckoutItemInput
	ShippingAddress entity.ShippingAddress
	PaymentMethod   string
	Card            CheckoutCardInput
}

// CheckoutOutput reports the created order and the gateway outcome. A
// declined payment is a normal output, not an error: the order exists in
// pending state and the caller is told why the charge failed.
type CheckoutOutput struct {
	Order            *entity.Order
	PaymentSucceeded bool
	TransactionID    string
	PaymentMessage   string
}

// CheckoutUsecase orchestrates validation, order creation, payment and
// post-payment bookkeeping as a single flow.
type CheckoutUsecase interface {
	Checkout(ctx context.Context, input *CheckoutInput) (*CheckoutOutput, error)
}
