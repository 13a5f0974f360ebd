package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
)

// ProductInput carries the editable fields of a product listing.
type ProductInput struct {
	Name           string
	Description    string
	Price          float64
	OriginalPrice  *float64
	Brand          string
	Model          string
	Storage        string
	Color          string
	Condition      entity.ProductCondition
	Images         []string
	Specifications map[string]string
	StockQuantity  int
	Category       string
}

// ProductUsecase defines catalog reads plus the admin-panel CRUD.
type ProductUsecase interface {
	// GetProduct retrieves a single product.
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// ListProducts retrieves products matching the filter.
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error)

	// CreateProduct adds a new listing (admin).
	CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error)

	// UpdateProduct replaces a listing's editable fields (admin).
	UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error)

	// DeleteProduct removes a listing (admin).
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
