package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CartUsecase defines the shopping cart operations. A cart holds at most
// one row per product; adding an already-carted product merges quantities.
type CartUsecase interface {
	// GetCart retrieves the user's cart with products attached.
	GetCart(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error)

	// AddToCart inserts a row or bumps the quantity of an existing one.
	AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*entity.CartItem, error)

	// UpdateCartItem replaces the quantity of an existing row.
	UpdateCartItem(ctx context.Context, userID, productID uuid.UUID, quantity int) error

	// RemoveFromCart deletes a single row.
	RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) error

	// ClearCart empties the cart.
	ClearCart(ctx context.Context, userID uuid.UUID) error
}
