package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrProductNotFound is returned when a product row does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock is returned when a stock reservation would push
	// stock_quantity below zero. The conditional update leaves the row untouched.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductFilter narrows and orders a product listing. Zero values mean
// "no constraint"; SortBy defaults to created_at descending.
type ProductFilter struct {
	Search    string
	Brand     string
	Category  string
	Condition entity.ProductCondition
	MinPrice  *float64
	MaxPrice  *float64
	SortBy    string
	SortAsc   bool
	Limit     int
}

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// List retrieves products matching the filter.
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)

	// Create persists a new product (admin panel).
	Create(ctx context.Context, product *entity.Product) error

	// Update replaces a product's editable fields (admin panel).
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product (admin panel).
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustStock atomically applies delta to stock_quantity. A negative
	// delta is a reservation and is applied conditionally: the update only
	// succeeds while the remaining stock stays non-negative, otherwise
	// ErrInsufficientStock is returned and nothing changes.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) error
}
