package usecase

import (
	"context"

	"github.com/google/uuid"
)

// CallbackResult is the decoded and applied gateway notification.
type CallbackResult struct {
	OrderID   uuid.UUID
	Succeeded bool
	Message   string
}

// PaymentCallbackUsecase applies asynchronous gateway notifications to the
// order they reference. Both the form-POST and query-string callback styles
// are flattened to a field map before reaching this interface.
type PaymentCallbackUsecase interface {
	// HandleCallback verifies the notification's signature, then records the
	// payment outcome on the order. A notification that fails verification
	// mutates nothing.
	HandleCallback(ctx context.Context, fields map[string]string) (*CallbackResult, error)
}
