package impl

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type productService struct {
	productRepo repository.ProductRepository
}

// ProductServiceParams holds dependencies for the product service, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
}

// NewProductService creates a new catalog service instance.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo: params.ProductRepo,
	}
}

// GetProduct retrieves a single product.
func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to load product")
	}

	return product, nil
}

// ListProducts retrieves products matching the filter.
func (s *productService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// CreateProduct adds a new listing.
func (s *productService) CreateProduct(ctx context.Context, input *usecase.ProductInput) (*entity.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := productFromInput(input)
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// UpdateProduct replaces a listing's editable fields.
func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, input *usecase.ProductInput) (*entity.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := productFromInput(input)
	product.ID = id
	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, err
	}

	return s.GetProduct(ctx, id)
}

// DeleteProduct removes a listing.
func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return err
	}

	return nil
}

func validateProductInput(input *usecase.ProductInput) error {
	if input == nil {
		return domainerrors.ErrValidationFailed.WrapMessage("product payload is required")
	}
	if input.Name == "" || input.Brand == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("product name and brand are required")
	}
	if input.Price <= 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("product price must be positive")
	}
	if input.StockQuantity < 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("stock quantity cannot be negative")
	}

	switch input.Condition {
	case entity.ConditionNew, entity.ConditionUsed, entity.ConditionRefurbished:
	default:
		return domainerrors.ErrValidationFailed.WrapMessage("unknown product condition")
	}

	return nil
}

func productFromInput(input *usecase.ProductInput) *entity.Product {
	return &entity.Product{
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		OriginalPrice:  input.OriginalPrice,
		Brand:          input.Brand,
		Model:          input.Model,
		Storage:        input.Storage,
		Color:          input.Color,
		Condition:      input.Condition,
		Images:         input.Images,
		Specifications: input.Specifications,
		StockQuantity:  input.StockQuantity,
		Category:       input.Category,
	}
}
