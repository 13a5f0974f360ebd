package entity

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one product in a user's cart. There is at most one row per
// (user, product) pair; adding an already-carted product bumps the quantity
// of the existing row instead of inserting a duplicate.
type CartItem struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
