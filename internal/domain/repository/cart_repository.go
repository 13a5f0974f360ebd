package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCartItemNotFound is returned when no row exists for a (user, product) pair.
var ErrCartItemNotFound = errors.New("cart item not found")

// CartRepository defines the standard operations for cart persistence.
// The one-row-per-(user, product) invariant is enforced by the usecase
// checking for an existing row before inserting.
type CartRepository interface {
	// FindByUser retrieves a user's cart with products preloaded.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error)

	// FindByUserAndProduct retrieves the single row for a (user, product) pair.
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.CartItem, error)

	// Create inserts a new cart row.
	Create(ctx context.Context, item *entity.CartItem) error

	// UpdateQuantity replaces the quantity of an existing row.
	UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error

	// Delete removes the row for a (user, product) pair.
	Delete(ctx context.Context, userID, productID uuid.UUID) error

	// DeleteByUser empties a user's cart, used after successful checkout.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
